package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"pkt.systems/pslog"
)

func newCaptureLogger(capture *logCapture) pslog.Logger {
	return pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
}

func TestWithDragAddsFields(t *testing.T) {
	capture := &logCapture{}
	ctx := pslog.ContextWithLogger(context.Background(), newCaptureLogger(capture))

	log := WithTransition(WithDrag(ctx, "window-1", "group-g1"), "file_tab")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if entry["origin"] != "window-1" {
		t.Fatalf("expected origin field, got %+v", entry)
	}
	if entry["target"] != "group-g1" {
		t.Fatalf("expected target field, got %+v", entry)
	}
	if entry["transition"] != "file_tab" {
		t.Fatalf("expected transition field, got %+v", entry)
	}
}

func TestWithDragSkipsEmpty(t *testing.T) {
	capture := &logCapture{}
	ctx := pslog.ContextWithLogger(context.Background(), newCaptureLogger(capture))

	WithWorkspace(WithDrag(ctx, "", ""), "").Info("hello")

	entry := capture.firstEntry(t)
	for _, key := range []string{"origin", "target", "workspace"} {
		if _, ok := entry[key]; ok {
			t.Fatalf("did not expect %s field, got %+v", key, entry)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	capture := &logCapture{}
	log := New(capture, "error")
	log.Info("dropped")
	log.Error("kept")

	lines := bytes.Count(bytes.TrimSpace(capture.buf.Bytes()), []byte("\n")) + 1
	if lines != 1 {
		t.Fatalf("expected only the error entry, got %q", capture.buf.String())
	}
	if !bytes.Contains(capture.buf.Bytes(), []byte("kept")) {
		t.Fatalf("expected the error entry, got %q", capture.buf.String())
	}
}

func TestNewWarnLevel(t *testing.T) {
	capture := &logCapture{}
	log := New(capture, "warn")
	log.Info("dropped")
	log.Warn("kept")

	if bytes.Contains(capture.buf.Bytes(), []byte("dropped")) {
		t.Fatalf("info entry should be filtered, got %q", capture.buf.String())
	}
	if !bytes.Contains(capture.buf.Bytes(), []byte("kept")) {
		t.Fatalf("expected the warn entry, got %q", capture.buf.String())
	}
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
