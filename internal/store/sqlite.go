package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rcliao/tabspace/internal/model"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workspaces (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_workspaces_created ON workspaces(created_at);

	CREATE TABLE IF NOT EXISTS tab_groups (
		workspace_id TEXT NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		id           TEXT NOT NULL,
		seq          INTEGER NOT NULL,
		name         TEXT NOT NULL,
		created_at   TEXT,
		PRIMARY KEY (workspace_id, id)
	);

	CREATE TABLE IF NOT EXISTS group_tabs (
		workspace_id TEXT NOT NULL,
		group_id     TEXT NOT NULL,
		seq          INTEGER NOT NULL,
		id           TEXT NOT NULL,
		original_id  INTEGER,
		title        TEXT NOT NULL DEFAULT '',
		url          TEXT NOT NULL,
		fav_icon_url TEXT,
		window_id    INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (workspace_id, group_id) REFERENCES tab_groups(workspace_id, id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_group_tabs_group ON group_tabs(workspace_id, group_id, seq);
	CREATE INDEX IF NOT EXISTS idx_group_tabs_url ON group_tabs(url);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) LoadWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM workspaces ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}

	var workspaces []model.Workspace
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		workspaces = append(workspaces, ws)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range workspaces {
		if err := s.loadGroups(ctx, &workspaces[i]); err != nil {
			return nil, err
		}
	}
	return workspaces, nil
}

func (s *SQLiteStore) GetWorkspace(ctx context.Context, id string) (*model.Workspace, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM workspaces WHERE id = ?`, id)
	ws, err := scanWorkspace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("workspace %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadGroups(ctx, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (s *SQLiteStore) loadGroups(ctx context.Context, ws *model.Workspace) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM tab_groups WHERE workspace_id = ? ORDER BY seq`, ws.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	ws.Groups = []model.Group{}
	index := map[string]int{}
	for rows.Next() {
		var g model.Group
		var createdAt sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &createdAt); err != nil {
			return err
		}
		if createdAt.Valid {
			g.CreatedAt, _ = time.Parse(timeLayout, createdAt.String)
		}
		g.Tabs = []model.PersistedTab{}
		index[g.ID] = len(ws.Groups)
		ws.Groups = append(ws.Groups, g)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tabRows, err := s.db.QueryContext(ctx,
		`SELECT group_id, id, original_id, title, url, fav_icon_url, window_id
		 FROM group_tabs WHERE workspace_id = ? ORDER BY group_id, seq`, ws.ID)
	if err != nil {
		return err
	}
	defer tabRows.Close()

	for tabRows.Next() {
		var groupID string
		t, err := scanTab(tabRows, &groupID)
		if err != nil {
			return err
		}
		if i, ok := index[groupID]; ok {
			ws.Groups[i].Tabs = append(ws.Groups[i].Tabs, t)
		}
	}
	return tabRows.Err()
}

func (s *SQLiteStore) SaveWorkspace(ctx context.Context, ws model.Workspace) error {
	if ws.ID == "" {
		return fmt.Errorf("save workspace: empty id")
	}
	if ws.CreatedAt.IsZero() {
		ws.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workspaces (id, name, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		ws.ID, ws.Name, ws.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("upsert workspace: %w", err)
	}

	// Full overwrite: tabs cascade with their groups.
	if _, err := tx.ExecContext(ctx, `DELETE FROM tab_groups WHERE workspace_id = ?`, ws.ID); err != nil {
		return fmt.Errorf("clear groups: %w", err)
	}

	for gi, g := range ws.Groups {
		var createdAt *string
		if !g.CreatedAt.IsZero() {
			v := g.CreatedAt.UTC().Format(timeLayout)
			createdAt = &v
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tab_groups (workspace_id, id, seq, name, created_at) VALUES (?, ?, ?, ?, ?)`,
			ws.ID, g.ID, gi, g.Name, createdAt)
		if err != nil {
			return fmt.Errorf("insert group %s: %w", g.ID, err)
		}
		for ti, t := range g.Tabs {
			var favicon *string
			if t.FavIconURL != "" {
				favicon = &t.FavIconURL
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO group_tabs (workspace_id, group_id, seq, id, original_id, title, url, fav_icon_url, window_id)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				ws.ID, g.ID, ti, t.ID, t.OriginalID, t.Title, t.URL, favicon, t.WindowID)
			if err != nil {
				return fmt.Errorf("insert tab %s: %w", t.ID, err)
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) DeleteWorkspace(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("workspace %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Setting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkspace(row scanner) (model.Workspace, error) {
	var ws model.Workspace
	var createdAt string
	if err := row.Scan(&ws.ID, &ws.Name, &createdAt); err != nil {
		return ws, err
	}
	ws.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return ws, nil
}

func scanTab(row scanner, groupID *string) (model.PersistedTab, error) {
	var t model.PersistedTab
	var originalID sql.NullInt64
	var favicon sql.NullString

	err := row.Scan(groupID, &t.ID, &originalID, &t.Title, &t.URL, &favicon, &t.WindowID)
	if err != nil {
		return t, err
	}
	if originalID.Valid {
		id := int(originalID.Int64)
		t.OriginalID = &id
	}
	if favicon.Valid {
		t.FavIconURL = favicon.String
	}
	return t, nil
}
