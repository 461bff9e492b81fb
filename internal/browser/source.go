// Package browser defines the live window source: the browser-owned list of
// windows and tabs, and the calls that mutate it.
package browser

import (
	"context"
	"errors"

	"github.com/rcliao/tabspace/internal/model"
)

var (
	// ErrNotFound is returned when a window or tab no longer exists.
	ErrNotFound = errors.New("browser: not found")
	// ErrUnavailable is returned when no browser is connected.
	ErrUnavailable = errors.New("browser: unavailable")
)

// MoveOptions positions a moved tab. WindowID 0 keeps the tab in its current
// window; Index -1 appends.
type MoveOptions struct {
	WindowID int `json:"windowId,omitempty"`
	Index    int `json:"index"`
}

// CreateTabOptions describes a tab to open.
type CreateTabOptions struct {
	WindowID int    `json:"windowId"`
	URL      string `json:"url"`
	Active   bool   `json:"active"`
}

// Source is the live window source. Implementations return ErrNotFound for
// windows or tabs that have been closed.
type Source interface {
	ListWindows(ctx context.Context) ([]model.Window, error)
	GetWindow(ctx context.Context, windowID int) (model.Window, error)
	FocusedWindow(ctx context.Context) (model.Window, error)

	MoveTab(ctx context.Context, tabID int, opts MoveOptions) (model.Tab, error)
	CreateTab(ctx context.Context, opts CreateTabOptions) (model.Tab, error)
	RemoveTab(ctx context.Context, tabID int) error

	// CreateWindow opens a window. A non-empty url opens it with one tab.
	CreateWindow(ctx context.Context, url string) (model.Window, error)
	RemoveWindow(ctx context.Context, windowID int) error
	UpdateWindow(ctx context.Context, windowID int, state model.WindowState) (model.Window, error)
}

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks github.com/rcliao/tabspace/internal/browser Source
