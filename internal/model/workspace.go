// Package model defines the core window, workspace and tab data types.
package model

import "time"

// Workspace is a named, persisted container of groups.
type Workspace struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Groups    []Group   `json:"groups" yaml:"groups"`
}

// Group is an ordered collection of tab snapshots nested in a workspace.
type Group struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	CreatedAt time.Time      `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	Tabs      []PersistedTab `json:"tabs" yaml:"tabs"`
}

// PersistedTab is a durable value snapshot of a tab's display data.
// OriginalID is the live tab id at capture time and may no longer exist.
type PersistedTab struct {
	ID         string `json:"id" yaml:"id"`
	OriginalID *int   `json:"originalId,omitempty" yaml:"originalId,omitempty"`
	Title      string `json:"title" yaml:"title"`
	URL        string `json:"url" yaml:"url"`
	FavIconURL string `json:"favIconUrl,omitempty" yaml:"favIconUrl,omitempty"`
	WindowID   int    `json:"windowId" yaml:"windowId"`
}

// Group returns a pointer to the group with the given id, or nil.
func (w *Workspace) Group(id string) *Group {
	for i := range w.Groups {
		if w.Groups[i].ID == id {
			return &w.Groups[i]
		}
	}
	return nil
}

// TabCount returns the number of persisted tabs across all groups.
func (w *Workspace) TabCount() int {
	n := 0
	for _, g := range w.Groups {
		n += len(g.Tabs)
	}
	return n
}

// Clone returns a deep copy of the workspace.
func (w Workspace) Clone() Workspace {
	out := w
	out.Groups = make([]Group, len(w.Groups))
	for i, g := range w.Groups {
		out.Groups[i] = g.Clone()
	}
	return out
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	out := g
	out.Tabs = make([]PersistedTab, len(g.Tabs))
	for i, t := range g.Tabs {
		out.Tabs[i] = t.Clone()
	}
	return out
}

// Clone returns a copy of the tab that shares no pointers with t.
func (t PersistedTab) Clone() PersistedTab {
	out := t
	if t.OriginalID != nil {
		id := *t.OriginalID
		out.OriginalID = &id
	}
	return out
}

// IndexOf returns the position of the tab with the given id, or -1.
func (g *Group) IndexOf(tabID string) int {
	for i, t := range g.Tabs {
		if t.ID == tabID {
			return i
		}
	}
	return -1
}

// HasURL reports whether the group already holds a tab with the given url.
// Url, not id, is the de-duplication key for tabs entering a group.
func (g *Group) HasURL(url string) bool {
	for _, t := range g.Tabs {
		if t.URL == url {
			return true
		}
	}
	return false
}
