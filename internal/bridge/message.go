package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/dnd"
	"github.com/rcliao/tabspace/internal/store"
)

// MessageType tells calls from replies.
type MessageType string

const (
	TypeCall  MessageType = "call"
	TypeReply MessageType = "reply"
)

// Message is the envelope of every frame. A call without an id is a
// notification and gets no reply.
type Message struct {
	Type   MessageType     `json:"type"`
	ID     string          `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	OK     bool            `json:"ok,omitempty"`
	Error  string          `json:"error,omitempty"`
	Code   string          `json:"code,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Validate checks the envelope shape.
func (m *Message) Validate() error {
	switch m.Type {
	case TypeCall:
		if m.Method == "" {
			return fmt.Errorf("call missing required field: method")
		}
	case TypeReply:
		if m.ID == "" {
			return fmt.Errorf("reply missing required field: id")
		}
		if !m.OK && m.Error == "" {
			return fmt.Errorf("reply has ok=false but no error message")
		}
	default:
		return fmt.Errorf("invalid message type: %q", m.Type)
	}
	return nil
}

// Error codes carried in replies.
const (
	CodeNotFound      = "not_found"
	CodeUnavailable   = "unavailable"
	CodeBadRequest    = "bad_request"
	CodeUnknownMethod = "unknown_method"
	CodeLastWorkspace = "last_workspace"
	CodeResolution    = "resolution"
	CodeStale         = "stale"
	CodeStoreWrite    = "store"
	CodeBrowserCall   = "browser"
	CodeBusy          = "busy"
	CodeInternal      = "internal"
)

// RemoteError is a failed reply from the peer.
type RemoteError struct {
	Method  string
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Method, e.Message, e.Code)
}

// Is maps reply codes back onto local sentinels.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case browser.ErrNotFound:
		return e.Code == CodeNotFound
	case browser.ErrUnavailable:
		return e.Code == CodeUnavailable
	case dnd.ErrResolution:
		return e.Code == CodeResolution
	case dnd.ErrStale:
		return e.Code == CodeStale
	case dnd.ErrStoreWrite:
		return e.Code == CodeStoreWrite
	case dnd.ErrBrowserCall:
		return e.Code == CodeBrowserCall
	case ErrBusy:
		return e.Code == CodeBusy
	}
	return false
}

var (
	errBadRequest    = errors.New("bad request")
	errUnknownMethod = errors.New("unknown method")
)

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

// errorCode picks the reply code for a local error. Drag errors keep their
// kind so the extension can tell a stale drop from a failed write.
func errorCode(err error) string {
	var derr *dnd.DragError
	switch {
	case errors.As(err, &derr):
		switch derr.Kind {
		case dnd.KindResolution:
			return CodeResolution
		case dnd.KindStale:
			return CodeStale
		case dnd.KindStore:
			return CodeStoreWrite
		default:
			return CodeBrowserCall
		}
	case errors.Is(err, browser.ErrNotFound), errors.Is(err, store.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, browser.ErrUnavailable):
		return CodeUnavailable
	case errors.Is(err, store.ErrLastWorkspace):
		return CodeLastWorkspace
	case errors.Is(err, errBadRequest):
		return CodeBadRequest
	case errors.Is(err, errUnknownMethod):
		return CodeUnknownMethod
	case errors.Is(err, ErrBusy):
		return CodeBusy
	}
	return CodeInternal
}

// decodeParams unmarshals call params; absent params decode as zero.
func decodeParams(m *Message, v any) error {
	if len(m.Params) == 0 || string(m.Params) == "null" {
		return nil
	}
	if err := json.Unmarshal(m.Params, v); err != nil {
		return badRequest(err)
	}
	return nil
}
