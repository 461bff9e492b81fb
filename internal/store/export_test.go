package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/tabspace/internal/model"
)

func TestExportAll(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.SaveWorkspace(ctx, sampleWorkspace())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b, err := ExportAll(ctx, s, "1.0", now)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if b.Version != "1.0" || b.ExportDate != "2026-03-01T12:00:00Z" {
		t.Errorf("unexpected envelope: %+v", b)
	}
	if len(b.Workspaces) != 1 || len(b.Workspaces[0].Groups) != 2 {
		t.Fatalf("unexpected workspaces: %+v", b.Workspaces)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("exported backup should validate: %v", err)
	}
}

func TestBackupValidate(t *testing.T) {
	tests := []struct {
		name string
		b    Backup
		ok   bool
	}{
		{"valid", Backup{Version: "1", ExportDate: "x", Workspaces: []model.Workspace{{ID: "a", Name: "a", Groups: []model.Group{}}}}, true},
		{"empty list", Backup{Version: "1", ExportDate: "x"}, true},
		{"missing version", Backup{ExportDate: "x"}, false},
		{"missing date", Backup{Version: "1"}, false},
		{"missing groups", Backup{Version: "1", ExportDate: "x", Workspaces: []model.Workspace{{ID: "a", Name: "a"}}}, false},
		{"missing name", Backup{Version: "1", ExportDate: "x", Workspaces: []model.Workspace{{ID: "a", Groups: []model.Group{}}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestImportRekeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.SaveWorkspace(ctx, sampleWorkspace())

	now := time.UnixMilli(1700000000000).UTC()
	b := &Backup{Version: "1.0", ExportDate: "2026-01-01T00:00:00Z", Workspaces: []model.Workspace{sampleWorkspace()}}

	n, err := Import(ctx, s, b, now)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 imported, got %d", n)
	}

	all, _ := s.LoadWorkspaces(ctx)
	if len(all) != 2 {
		t.Fatalf("expected original plus import, got %d", len(all))
	}

	got, err := s.GetWorkspace(ctx, "imported-1700000000000-0-ws1")
	if err != nil {
		t.Fatalf("get imported: %v", err)
	}
	if got.Name != "Research (imported)" {
		t.Errorf("expected imported name, got %q", got.Name)
	}
	if got.Groups[0].ID != "imported-1700000000000-0-0-g1" {
		t.Errorf("unexpected group id %q", got.Groups[0].ID)
	}
	if got.Groups[1].ID != "imported-1700000000000-0-1-g2" {
		t.Errorf("unexpected group id %q", got.Groups[1].ID)
	}
	if len(got.Groups[0].Tabs) != 2 || got.Groups[0].Tabs[0].ID != "t1" {
		t.Errorf("tabs should be kept as-is: %+v", got.Groups[0].Tabs)
	}

	orig, _ := s.GetWorkspace(ctx, "ws1")
	if orig.Name != "Research" {
		t.Errorf("original should be untouched, got %q", orig.Name)
	}
}

func TestImportRejectsInvalid(t *testing.T) {
	s := NewMemoryStore()
	_, err := Import(context.Background(), s, &Backup{Version: "1"}, time.Now())
	if err == nil || !strings.Contains(err.Error(), "invalid backup") {
		t.Errorf("expected invalid backup error, got %v", err)
	}
}
