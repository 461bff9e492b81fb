// Package logx holds logging helpers shared by the engine and the transports.
package logx

import (
	"context"
	"io"
	"strings"

	"pkt.systems/pslog"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithDrag annotates the logger with the drag's origin and target.
func WithDrag(ctx context.Context, origin, target string) pslog.Logger {
	log := pslog.Ctx(ctx)
	if origin != "" {
		log = log.With("origin", origin)
	}
	if target != "" {
		log = log.With("target", target)
	}
	return log
}

// WithTransition annotates the logger with a classified transition.
func WithTransition(log pslog.Logger, transition string) pslog.Logger {
	if transition != "" {
		log = log.With("transition", transition)
	}
	return log
}

// WithWorkspace annotates the logger with a workspace id when available.
func WithWorkspace(log pslog.Logger, workspaceID string) pslog.Logger {
	if workspaceID != "" {
		log = log.With("workspace", workspaceID)
	}
	return log
}

// New builds a structured logger at the named level. Unknown levels log at
// info.
func New(w io.Writer, level string) pslog.Logger {
	opts := pslog.Options{Mode: pslog.ModeStructured, NoColor: true, MinLevel: pslog.InfoLevel}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "warn", "warning":
		opts.MinLevel = pslog.WarnLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return pslog.NewWithOptions(w, opts)
}
