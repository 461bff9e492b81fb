package model

import "testing"

func TestWorkspaceCloneIsDeep(t *testing.T) {
	orig := 7
	ws := Workspace{
		ID: "ws1",
		Groups: []Group{{
			ID:   "g1",
			Tabs: []PersistedTab{{ID: "t1", URL: "https://a.com", OriginalID: &orig}},
		}},
	}

	cp := ws.Clone()
	cp.Groups[0].Tabs[0].URL = "https://changed.com"
	*cp.Groups[0].Tabs[0].OriginalID = 9
	cp.Groups[0].Name = "renamed"

	if ws.Groups[0].Tabs[0].URL != "https://a.com" {
		t.Errorf("clone shares tab slice: %q", ws.Groups[0].Tabs[0].URL)
	}
	if *ws.Groups[0].Tabs[0].OriginalID != 7 {
		t.Errorf("clone shares originalId pointer")
	}
	if ws.Groups[0].Name != "" {
		t.Errorf("clone shares group slice")
	}
}

func TestGroupLookups(t *testing.T) {
	ws := Workspace{Groups: []Group{
		{ID: "g1", Tabs: []PersistedTab{{ID: "a", URL: "https://a.com"}, {ID: "b", URL: "https://b.com"}}},
		{ID: "g2"},
	}}

	g := ws.Group("g1")
	if g == nil {
		t.Fatal("expected group g1")
	}
	if got := g.IndexOf("b"); got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}
	if got := g.IndexOf("missing"); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	if !g.HasURL("https://a.com") || g.HasURL("https://c.com") {
		t.Error("HasURL mismatch")
	}
	if ws.Group("nope") != nil {
		t.Error("expected nil for unknown group")
	}
	if ws.TabCount() != 2 {
		t.Errorf("expected 2 tabs, got %d", ws.TabCount())
	}
}

func TestFindTab(t *testing.T) {
	windows := []Window{
		{ID: 1, Tabs: []Tab{{ID: 100, WindowID: 1}}},
		{ID: 2, Tabs: []Tab{{ID: 200, WindowID: 2}}},
	}
	tab, ok := FindTab(windows, 200)
	if !ok || tab.WindowID != 2 {
		t.Fatalf("expected tab 200 in window 2, got %+v ok=%v", tab, ok)
	}
	if _, ok := FindTab(windows, 2); ok {
		t.Error("window id must not match as a tab id")
	}
}
