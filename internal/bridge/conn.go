package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rcliao/tabspace/internal/logx"
)

var (
	// ErrClosed is returned by calls on a connection whose read loop has ended.
	ErrClosed = errors.New("bridge: connection closed")
	// ErrBusy rejects a call that arrived while the call queue was full.
	ErrBusy = errors.New("bridge: call queue full")
)

const defaultCallQueue = 64

// ConnOption configures a Conn.
type ConnOption func(*Conn)

// WithMaxIncoming bounds the size of frames read from the peer.
func WithMaxIncoming(n int) ConnOption {
	return func(c *Conn) {
		if n > 0 {
			c.maxIn = n
		}
	}
}

// WithCallQueue sets how many inbound calls may wait for the consumer of
// Calls. Calls arriving while the queue is full are answered with CodeBusy.
func WithCallQueue(n int) ConnOption {
	return func(c *Conn) {
		if n > 0 {
			c.queue = n
		}
	}
}

// Conn is a symmetric call/reply channel over one reader and one writer.
// Run must be running for Call to receive replies.
type Conn struct {
	r     io.Reader
	w     io.Writer
	wmu   sync.Mutex
	maxIn int
	queue int

	seq     atomic.Uint64
	mu      sync.Mutex
	pending map[string]chan *Message
	closed  bool

	calls chan *Message
	done  chan struct{}
}

// NewConn creates a Conn reading frames from r and writing frames to w.
func NewConn(r io.Reader, w io.Writer, opts ...ConnOption) *Conn {
	c := &Conn{
		r:       r,
		w:       w,
		maxIn:   DefaultMaxIncoming,
		queue:   defaultCallQueue,
		pending: map[string]chan *Message{},
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.calls = make(chan *Message, c.queue)
	return c
}

// Calls delivers inbound calls and notifications. It is closed when Run
// returns.
func (c *Conn) Calls() <-chan *Message { return c.calls }

// Done is closed when Run returns.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Run reads frames until the peer closes the stream, a frame is malformed
// or ctx is done. A clean end of stream returns nil.
func (c *Conn) Run(ctx context.Context) error {
	defer c.shutdown()

	log := logx.Ctx(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg Message
		if err := ReadFrame(c.r, c.maxIn, &msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := msg.Validate(); err != nil {
			log.Warn("bridge dropped invalid message", "err", err)
			if msg.Type == TypeCall && msg.ID != "" {
				c.Reply(msg.ID, nil, badRequest(err))
			}
			continue
		}

		switch msg.Type {
		case TypeReply:
			c.mu.Lock()
			ch, ok := c.pending[msg.ID]
			delete(c.pending, msg.ID)
			c.mu.Unlock()
			if !ok {
				log.Debug("bridge reply without caller", "id", msg.ID)
				continue
			}
			ch <- &msg
		case TypeCall:
			// Never block here: the consumer may itself be waiting in Call
			// for a reply that only this loop can deliver.
			select {
			case c.calls <- &msg:
			default:
				log.Warn("bridge call queue full", "method", msg.Method, "id", msg.ID)
				if msg.ID != "" {
					c.Reply(msg.ID, nil, ErrBusy)
				}
			}
		}
	}
}

func (c *Conn) shutdown() {
	c.mu.Lock()
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()
	close(c.calls)
	close(c.done)
}

// Call sends a call and waits for its reply. A failed reply is returned as
// a *RemoteError; any result it carries is still decoded into result.
func (c *Conn) Call(ctx context.Context, method string, params, result any) error {
	raw, err := marshalRaw(params)
	if err != nil {
		return err
	}
	id := fmt.Sprintf("cmd-%d", c.seq.Add(1))
	ch := make(chan *Message, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()

	if err := c.write(&Message{Type: TypeCall, ID: id, Method: method, Params: raw}); err != nil {
		c.forget(id)
		return err
	}

	select {
	case reply, ok := <-ch:
		if !ok {
			return ErrClosed
		}
		if result != nil && len(reply.Result) > 0 {
			if err := json.Unmarshal(reply.Result, result); err != nil && reply.OK {
				return fmt.Errorf("%s: decode result: %w", method, err)
			}
		}
		if !reply.OK {
			return &RemoteError{Method: method, Code: reply.Code, Message: reply.Error}
		}
		return nil
	case <-ctx.Done():
		c.forget(id)
		return ctx.Err()
	}
}

// Notify sends a call that expects no reply.
func (c *Conn) Notify(method string, params any) error {
	raw, err := marshalRaw(params)
	if err != nil {
		return err
	}
	return c.write(&Message{Type: TypeCall, Method: method, Params: raw})
}

// Reply answers a call. A non-nil err marks the reply failed; result is sent
// either way when not nil.
func (c *Conn) Reply(id string, result any, err error) error {
	raw, merr := marshalRaw(result)
	if merr != nil {
		err = errors.Join(err, merr)
	}
	msg := &Message{Type: TypeReply, ID: id, OK: err == nil, Result: raw}
	if err != nil {
		msg.Error = err.Error()
		msg.Code = errorCode(err)
	}
	return c.write(msg)
}

func (c *Conn) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Conn) write(msg *Message) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return WriteFrame(c.w, msg)
}

func marshalRaw(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}
	return data, nil
}
