package store

import (
	"context"
	"strings"

	"github.com/rcliao/tabspace/internal/model"
)

const defaultSearchLimit = 20

// likeEscaper makes LIKE treat wildcard characters in a query literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Searcher finds persisted tabs by title or url.
type Searcher interface {
	Search(ctx context.Context, p SearchParams) ([]SearchResult, error)
}

// SearchParams holds parameters for searching persisted tabs.
type SearchParams struct {
	WorkspaceID string
	Query       string
	Limit       int
}

// SearchResult is a persisted tab with its location.
type SearchResult struct {
	model.PersistedTab
	WorkspaceID string `json:"workspaceId"`
	GroupID     string `json:"groupId"`
	GroupName   string `json:"groupName"`
}

// Search finds persisted tabs whose title or url contains the query.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	query := "%" + likeEscaper.Replace(p.Query) + "%"

	sql := `
		SELECT t.workspace_id, g.name, t.group_id, t.id, t.original_id, t.title, t.url, t.fav_icon_url, t.window_id
		FROM group_tabs t
		INNER JOIN tab_groups g ON g.workspace_id = t.workspace_id AND g.id = t.group_id
		INNER JOIN workspaces w ON w.id = t.workspace_id
		WHERE (t.title LIKE ? ESCAPE '\' OR t.url LIKE ? ESCAPE '\')`
	args := []interface{}{query, query}

	if p.WorkspaceID != "" {
		sql += ` AND t.workspace_id = ?`
		args = append(args, p.WorkspaceID)
	}
	sql += ` ORDER BY w.created_at, w.rowid, g.seq, t.seq LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		row := prefixScanner{row: rows, prefix: []interface{}{&r.WorkspaceID, &r.GroupName}}
		tab, err := scanTab(row, &r.GroupID)
		if err != nil {
			return nil, err
		}
		r.PersistedTab = tab
		results = append(results, r)
	}
	return results, rows.Err()
}

// prefixScanner lets scanTab read rows that carry extra leading columns.
type prefixScanner struct {
	row    scanner
	prefix []interface{}
}

func (p prefixScanner) Scan(dest ...interface{}) error {
	return p.row.Scan(append(p.prefix, dest...)...)
}

// Search matches titles and urls case-insensitively, in workspace order.
func (s *MemoryStore) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	q := strings.ToLower(p.Query)

	s.mu.Lock()
	defer s.mu.Unlock()

	results := []SearchResult{}
	for _, id := range s.order {
		if p.WorkspaceID != "" && id != p.WorkspaceID {
			continue
		}
		for _, g := range s.workspaces[id].Groups {
			for _, t := range g.Tabs {
				if !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.URL), q) {
					continue
				}
				results = append(results, SearchResult{PersistedTab: t, WorkspaceID: id, GroupID: g.ID, GroupName: g.Name})
				if len(results) == limit {
					return results, nil
				}
			}
		}
	}
	return results, nil
}

var (
	_ Searcher = (*SQLiteStore)(nil)
	_ Searcher = (*MemoryStore)(nil)
)
