package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/tabspace/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func intPtr(v int) *int { return &v }

func sampleWorkspace() model.Workspace {
	return model.Workspace{
		ID:        "ws1",
		Name:      "Research",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Groups: []model.Group{
			{ID: "g1", Name: "Reading", Tabs: []model.PersistedTab{
				{ID: "t1", OriginalID: intPtr(100), Title: "A", URL: "https://a.com", FavIconURL: "https://a.com/favicon.ico", WindowID: 1},
				{ID: "t2", Title: "B", URL: "https://b.com", WindowID: 1},
			}},
			{ID: "g2", Name: "Later", Tabs: []model.PersistedTab{}},
		},
	}
}

func TestSaveAndGetWorkspace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.SaveWorkspace(ctx, sampleWorkspace()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetWorkspace(ctx, "ws1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Research" {
		t.Errorf("expected name 'Research', got %q", got.Name)
	}
	if !got.CreatedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("created_at not round-tripped: %v", got.CreatedAt)
	}
	if len(got.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got.Groups))
	}
	if got.Groups[0].ID != "g1" || got.Groups[1].ID != "g2" {
		t.Errorf("group order not preserved: %s, %s", got.Groups[0].ID, got.Groups[1].ID)
	}
	tabs := got.Groups[0].Tabs
	if len(tabs) != 2 || tabs[0].ID != "t1" || tabs[1].ID != "t2" {
		t.Fatalf("unexpected tabs: %+v", tabs)
	}
	if tabs[0].OriginalID == nil || *tabs[0].OriginalID != 100 {
		t.Errorf("originalId not round-tripped: %v", tabs[0].OriginalID)
	}
	if tabs[1].OriginalID != nil {
		t.Errorf("expected nil originalId, got %d", *tabs[1].OriginalID)
	}
	if tabs[0].FavIconURL != "https://a.com/favicon.ico" {
		t.Errorf("favicon not round-tripped: %q", tabs[0].FavIconURL)
	}
	if got.Groups[1].Tabs == nil {
		t.Error("empty group should load an empty, non-nil tab list")
	}
}

func TestSaveWorkspaceOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ws := sampleWorkspace()
	s.SaveWorkspace(ctx, ws)

	ws.Name = "Renamed"
	ws.Groups = ws.Groups[1:]
	ws.Groups[0].Tabs = append(ws.Groups[0].Tabs, model.PersistedTab{ID: "t9", URL: "https://z.com"})
	if err := s.SaveWorkspace(ctx, ws); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _ := s.GetWorkspace(ctx, "ws1")
	if got.Name != "Renamed" {
		t.Errorf("expected 'Renamed', got %q", got.Name)
	}
	if len(got.Groups) != 1 || got.Groups[0].ID != "g2" {
		t.Fatalf("expected only g2 after overwrite, got %+v", got.Groups)
	}
	if len(got.Groups[0].Tabs) != 1 || got.Groups[0].Tabs[0].URL != "https://z.com" {
		t.Errorf("unexpected tabs after overwrite: %+v", got.Groups[0].Tabs)
	}

	var orphaned int
	s.db.QueryRow(`SELECT COUNT(*) FROM group_tabs WHERE group_id = 'g1'`).Scan(&orphaned)
	if orphaned != 0 {
		t.Errorf("expected g1 tabs to cascade, found %d", orphaned)
	}
}

func TestLoadWorkspacesOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.SaveWorkspace(ctx, model.Workspace{ID: "b", Name: "second", CreatedAt: base.Add(time.Hour)})
	s.SaveWorkspace(ctx, model.Workspace{ID: "a", Name: "first", CreatedAt: base})

	all, err := s.LoadWorkspaces(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2, got %d", len(all))
	}
	if all[0].ID != "a" || all[1].ID != "b" {
		t.Errorf("expected creation order a,b got %s,%s", all[0].ID, all[1].ID)
	}
}

func TestGetWorkspaceNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetWorkspace(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteWorkspace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SaveWorkspace(ctx, sampleWorkspace())
	if err := s.DeleteWorkspace(ctx, "ws1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetWorkspace(ctx, "ws1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	var tabs int
	s.db.QueryRow(`SELECT COUNT(*) FROM group_tabs`).Scan(&tabs)
	if tabs != 0 {
		t.Errorf("expected tabs to cascade, found %d", tabs)
	}

	if err := s.DeleteWorkspace(ctx, "ws1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	v, err := s.Setting(ctx, "missing")
	if err != nil || v != "" {
		t.Fatalf("expected empty setting, got %q err=%v", v, err)
	}

	s.SetSetting(ctx, SettingActiveWorkspace, "ws1")
	s.SetSetting(ctx, SettingActiveWorkspace, "ws2")
	v, _ = s.Setting(ctx, SettingActiveWorkspace)
	if v != "ws2" {
		t.Errorf("expected 'ws2', got %q", v)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.SaveWorkspace(ctx, sampleWorkspace())
	s.SetSetting(ctx, SettingActiveWorkspace, "ws1")

	st, err := s.Stats(ctx, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalWorkspaces != 1 || st.TotalGroups != 2 || st.TotalTabs != 2 {
		t.Errorf("unexpected totals: %+v", st)
	}
	if st.ActiveWorkspace != "ws1" {
		t.Errorf("expected active ws1, got %q", st.ActiveWorkspace)
	}
	if len(st.Workspaces) != 1 || st.Workspaces[0].Tabs != 2 {
		t.Errorf("unexpected per-workspace stats: %+v", st.Workspaces)
	}
}
