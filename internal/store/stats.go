package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath          string           `json:"db_path"`
	DBSizeBytes     int64            `json:"db_size_bytes"`
	TotalWorkspaces int              `json:"total_workspaces"`
	TotalGroups     int              `json:"total_groups"`
	TotalTabs       int              `json:"total_tabs"`
	ActiveWorkspace string           `json:"active_workspace,omitempty"`
	Workspaces      []WorkspaceStats `json:"workspaces"`
}

// WorkspaceStats holds per-workspace counts.
type WorkspaceStats struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Groups int    `json:"groups"`
	Tabs   int    `json:"tabs"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Workspaces: []WorkspaceStats{}}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workspaces`).Scan(&st.TotalWorkspaces)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tab_groups`).Scan(&st.TotalGroups)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM group_tabs`).Scan(&st.TotalTabs)
	st.ActiveWorkspace, _ = s.Setting(ctx, SettingActiveWorkspace)

	rows, err := s.db.QueryContext(ctx, `
		SELECT w.id, w.name,
		       (SELECT COUNT(*) FROM tab_groups g WHERE g.workspace_id = w.id),
		       (SELECT COUNT(*) FROM group_tabs t WHERE t.workspace_id = w.id)
		FROM workspaces w ORDER BY w.created_at, w.rowid`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ws WorkspaceStats
		rows.Scan(&ws.ID, &ws.Name, &ws.Groups, &ws.Tabs)
		st.Workspaces = append(st.Workspaces, ws)
	}

	return st, nil
}
