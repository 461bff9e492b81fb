// Package bridge carries calls between the tabspace host and the browser
// extension over the native-messaging channel: a 32-bit native-endian
// length prefix followed by a UTF-8 JSON message.
package bridge

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxHostMessage is the largest message the browser accepts from a host.
const MaxHostMessage = 1 << 20

// DefaultMaxIncoming bounds messages read from the extension.
const DefaultMaxIncoming = 4 << 20

// ErrMessageTooLarge is returned for frames over the size limit.
var ErrMessageTooLarge = errors.New("bridge: message too large")

// WriteFrame marshals v and writes it as one frame.
func WriteFrame(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	if len(payload) > MaxHostMessage {
		return fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(payload))
	}
	frame := make([]byte, 4+len(payload))
	binary.NativeEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[4:], payload)
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// ReadFrame reads one frame into v. It returns io.EOF when the stream ends
// cleanly between frames.
func ReadFrame(r io.Reader, max int, v any) error {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("read length: %w", err)
	}
	n := binary.NativeEndian.Uint32(header[:])
	if max > 0 && int64(n) > int64(max) {
		return fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, n)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("read message: %w", err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}
