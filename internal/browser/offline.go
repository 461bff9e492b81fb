package browser

import (
	"context"

	"github.com/rcliao/tabspace/internal/model"
)

// Offline is a Source with no browser behind it. Every call fails with
// ErrUnavailable, so only persisted-data operations can succeed.
type Offline struct{}

func (Offline) ListWindows(context.Context) ([]model.Window, error) { return nil, ErrUnavailable }

func (Offline) GetWindow(context.Context, int) (model.Window, error) {
	return model.Window{}, ErrUnavailable
}

func (Offline) FocusedWindow(context.Context) (model.Window, error) {
	return model.Window{}, ErrUnavailable
}

func (Offline) MoveTab(context.Context, int, MoveOptions) (model.Tab, error) {
	return model.Tab{}, ErrUnavailable
}

func (Offline) CreateTab(context.Context, CreateTabOptions) (model.Tab, error) {
	return model.Tab{}, ErrUnavailable
}

func (Offline) RemoveTab(context.Context, int) error { return ErrUnavailable }

func (Offline) CreateWindow(context.Context, string) (model.Window, error) {
	return model.Window{}, ErrUnavailable
}

func (Offline) RemoveWindow(context.Context, int) error { return ErrUnavailable }

func (Offline) UpdateWindow(context.Context, int, model.WindowState) (model.Window, error) {
	return model.Window{}, ErrUnavailable
}
