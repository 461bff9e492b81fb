package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/tabspace/internal/model"
)

// BackupVersion is written into exported backups.
const BackupVersion = "1.0"

// Backup is the export envelope shared with the extension's backup files.
type Backup struct {
	Workspaces []model.Workspace `json:"workspaces" yaml:"workspaces"`
	ExportDate string            `json:"exportDate" yaml:"exportDate"`
	Version    string            `json:"version" yaml:"version"`
}

// ExportAll returns every workspace wrapped in a backup envelope.
func ExportAll(ctx context.Context, repo Repository, version string, now time.Time) (*Backup, error) {
	workspaces, err := repo.LoadWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	if workspaces == nil {
		workspaces = []model.Workspace{}
	}
	return &Backup{
		Workspaces: workspaces,
		ExportDate: now.UTC().Format(time.RFC3339),
		Version:    version,
	}, nil
}

// Validate checks the envelope and the shape of every workspace.
func (b *Backup) Validate() error {
	if b.Version == "" || b.ExportDate == "" {
		return fmt.Errorf("invalid backup: version and exportDate are required")
	}
	for i, ws := range b.Workspaces {
		if ws.ID == "" || ws.Name == "" || ws.Groups == nil {
			return fmt.Errorf("invalid backup: workspace %d needs id, name and groups", i)
		}
	}
	return nil
}

// Import appends the backup's workspaces to the store. Workspace and group
// ids are re-keyed so imported data never collides with existing data, and
// names are marked as imported. Returns the number of workspaces imported.
func Import(ctx context.Context, repo Repository, b *Backup, now time.Time) (int, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}

	stamp := now.UnixMilli()
	imported := 0
	for i, ws := range b.Workspaces {
		ws = ws.Clone()
		ws.ID = fmt.Sprintf("imported-%d-%d-%s", stamp, i, ws.ID)
		ws.Name = ws.Name + " (imported)"
		if ws.CreatedAt.IsZero() {
			ws.CreatedAt = now.UTC()
		}
		for gi := range ws.Groups {
			g := &ws.Groups[gi]
			g.ID = fmt.Sprintf("imported-%d-%d-%d-%s", stamp, i, gi, g.ID)
			if g.Tabs == nil {
				g.Tabs = []model.PersistedTab{}
			}
		}
		if err := repo.SaveWorkspace(ctx, ws); err != nil {
			return imported, fmt.Errorf("import workspace %s: %w", b.Workspaces[i].ID, err)
		}
		imported++
	}
	return imported, nil
}
