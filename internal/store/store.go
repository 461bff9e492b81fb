// Package store provides the workspace repository interface and its SQLite
// and in-memory implementations.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/tabspace/internal/model"
)

var (
	// ErrNotFound is returned when a workspace, group or tab does not exist.
	ErrNotFound = errors.New("not found")
	// ErrLastWorkspace is returned when deleting the only remaining workspace.
	ErrLastWorkspace = errors.New("cannot delete the last workspace")
)

// Setting keys.
const (
	SettingActiveWorkspace      = "active_workspace"
	SettingSnapshotCloseWindows = "snapshot_close_windows"
)

// Repository is the persisted workspace store.
//
// SaveWorkspace is a full overwrite keyed by workspace id: the stored groups
// and tabs are replaced wholesale. There is no concurrency check, so the last
// write wins.
type Repository interface {
	// LoadWorkspaces returns every workspace in creation order.
	LoadWorkspaces(ctx context.Context) ([]model.Workspace, error)

	// GetWorkspace returns a single workspace or ErrNotFound.
	GetWorkspace(ctx context.Context, id string) (*model.Workspace, error)

	// SaveWorkspace inserts or fully replaces a workspace.
	SaveWorkspace(ctx context.Context, ws model.Workspace) error

	// DeleteWorkspace removes a workspace and everything in it.
	DeleteWorkspace(ctx context.Context, id string) error

	// Setting reads a string setting; missing keys return "" and no error.
	Setting(ctx context.Context, key string) (string, error)

	// SetSetting writes a string setting.
	SetSetting(ctx context.Context, key, value string) error

	// Close closes the store.
	Close() error
}
