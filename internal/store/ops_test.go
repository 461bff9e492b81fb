package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rcliao/tabspace/internal/model"
)

func tabURLs(g *model.Group) []string {
	urls := make([]string, len(g.Tabs))
	for i, t := range g.Tabs {
		urls[i] = t.URL
	}
	return urls
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEnsureDefault(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ws, err := EnsureDefault(ctx, s, "")
	if err != nil {
		t.Fatalf("ensure default: %v", err)
	}
	if ws.Name != DefaultWorkspaceName {
		t.Errorf("expected %q, got %q", DefaultWorkspaceName, ws.Name)
	}

	again, err := EnsureDefault(ctx, s, "")
	if err != nil {
		t.Fatalf("ensure default again: %v", err)
	}
	if again.ID != ws.ID {
		t.Errorf("expected existing workspace %s, got %s", ws.ID, again.ID)
	}

	all, _ := s.LoadWorkspaces(ctx)
	if len(all) != 1 {
		t.Errorf("expected exactly 1 workspace, got %d", len(all))
	}
}

func TestActiveWorkspaceFallsBackToFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, _ := CreateWorkspace(ctx, s, "first")
	CreateWorkspace(ctx, s, "second")
	s.SetSetting(ctx, SettingActiveWorkspace, "gone")

	ws, err := ActiveWorkspace(ctx, s)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if ws.ID != first.ID {
		t.Errorf("expected fallback to %s, got %s", first.ID, ws.ID)
	}
}

func TestActiveWorkspaceEmpty(t *testing.T) {
	s := newTestStore(t)
	if _, err := ActiveWorkspace(context.Background(), s); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveWorkspace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := CreateWorkspace(ctx, s, "a")
	b, _ := CreateWorkspace(ctx, s, "b")
	SetActiveWorkspace(ctx, s, a.ID)

	if err := RemoveWorkspace(ctx, s, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	active, _ := s.Setting(ctx, SettingActiveWorkspace)
	if active != b.ID {
		t.Errorf("expected active to move to %s, got %s", b.ID, active)
	}

	if err := RemoveWorkspace(ctx, s, b.ID); !errors.Is(err, ErrLastWorkspace) {
		t.Errorf("expected ErrLastWorkspace, got %v", err)
	}
	if err := RemoveWorkspace(ctx, s, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWorkspaceNameRequired(t *testing.T) {
	s := newTestStore(t)
	if _, err := CreateWorkspace(context.Background(), s, "   "); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestGroupLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ws, _ := CreateWorkspace(ctx, s, "ws")

	g, err := CreateGroup(ctx, s, ws.ID, "Reading")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if err := RenameGroup(ctx, s, ws.ID, g.ID, "Later"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, _ := s.GetWorkspace(ctx, ws.ID)
	if got.Group(g.ID).Name != "Later" {
		t.Errorf("expected 'Later', got %q", got.Group(g.ID).Name)
	}

	if err := DeleteGroup(ctx, s, ws.ID, g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ = s.GetWorkspace(ctx, ws.ID)
	if len(got.Groups) != 0 {
		t.Errorf("expected no groups, got %d", len(got.Groups))
	}
	if err := DeleteGroup(ctx, s, ws.ID, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddTabToGroupDedup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ws, _ := CreateWorkspace(ctx, s, "ws")
	g, _ := CreateGroup(ctx, s, ws.ID, "g")

	added, err := AddTabToGroup(ctx, s, ws.ID, g.ID, model.PersistedTab{URL: "https://a.com", Title: "A"})
	if err != nil || !added {
		t.Fatalf("expected add, got added=%v err=%v", added, err)
	}
	added, err = AddTabToGroup(ctx, s, ws.ID, g.ID, model.PersistedTab{URL: "https://a.com", Title: "dup"})
	if err != nil {
		t.Fatalf("add dup: %v", err)
	}
	if added {
		t.Error("duplicate url should not be added")
	}

	got, _ := s.GetWorkspace(ctx, ws.ID)
	tabs := got.Group(g.ID).Tabs
	if len(tabs) != 1 {
		t.Fatalf("expected 1 tab, got %d", len(tabs))
	}
	if tabs[0].ID == "" {
		t.Error("expected an id to be assigned")
	}
	if tabs[0].Title != "A" {
		t.Errorf("expected original tab kept, got %q", tabs[0].Title)
	}
}

func TestRemoveTabFromGroup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.SaveWorkspace(ctx, sampleWorkspace())

	if err := RemoveTabFromGroup(ctx, s, "ws1", "g1", "t1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ := s.GetWorkspace(ctx, "ws1")
	if ids := tabURLs(got.Group("g1")); !equalStrings(ids, []string{"https://b.com"}) {
		t.Errorf("unexpected tabs: %v", ids)
	}
	if err := RemoveTabFromGroup(ctx, s, "ws1", "g1", "t1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReorderGroupTabs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.SaveWorkspace(ctx, model.Workspace{ID: "ws", Name: "ws", Groups: []model.Group{
		{ID: "g", Name: "g", Tabs: []model.PersistedTab{
			{ID: "a", URL: "a"}, {ID: "b", URL: "b"}, {ID: "c", URL: "c"}, {ID: "d", URL: "d"},
		}},
	}})

	if err := ReorderGroupTabs(ctx, s, "ws", "g", []string{"c", "a", "zzz"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got, _ := s.GetWorkspace(ctx, "ws")
	if urls := tabURLs(got.Group("g")); !equalStrings(urls, []string{"c", "a", "b", "d"}) {
		t.Errorf("expected [c a b d], got %v", urls)
	}
}

func TestMoveTabBetweenGroups(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.SaveWorkspace(ctx, model.Workspace{ID: "ws", Name: "ws", Groups: []model.Group{
		{ID: "g1", Name: "one", Tabs: []model.PersistedTab{{ID: "a", URL: "https://a.com"}, {ID: "b", URL: "https://b.com"}}},
		{ID: "g2", Name: "two", Tabs: []model.PersistedTab{{ID: "x", URL: "https://b.com"}}},
	}})

	moved, err := MoveTabBetweenGroups(ctx, s, "ws", "g1", "g2", "a")
	if err != nil || !moved {
		t.Fatalf("expected move, got moved=%v err=%v", moved, err)
	}
	got, _ := s.GetWorkspace(ctx, "ws")
	if urls := tabURLs(got.Group("g1")); !equalStrings(urls, []string{"https://b.com"}) {
		t.Errorf("unexpected source: %v", urls)
	}
	if urls := tabURLs(got.Group("g2")); !equalStrings(urls, []string{"https://b.com", "https://a.com"}) {
		t.Errorf("unexpected target: %v", urls)
	}

	moved, err = MoveTabBetweenGroups(ctx, s, "ws", "g1", "g2", "b")
	if err != nil {
		t.Fatalf("move dup: %v", err)
	}
	if moved {
		t.Error("duplicate url should not move")
	}
	got, _ = s.GetWorkspace(ctx, "ws")
	if len(got.Group("g1").Tabs) != 1 {
		t.Error("source should keep its tab when the move is a duplicate")
	}
}

func TestMutateUnchangedSkipsWrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(model.Workspace{ID: "ws", Name: "ws", Groups: []model.Group{}})

	err := Mutate(ctx, s, "ws", func(ws *model.Workspace) error {
		ws.Name = "changed"
		return ErrUnchanged
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	got, _ := s.GetWorkspace(ctx, "ws")
	if got.Name != "ws" {
		t.Errorf("expected no write, got name %q", got.Name)
	}
}
