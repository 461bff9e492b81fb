package dnd

import (
	"context"
	"sync"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/model"
)

// Mirror is the optimistic copy of the live windows shown while dragging.
// The engine writes to it for display and never reads it back; Refresh
// replaces it with the live source's state.
type Mirror struct {
	mu      sync.Mutex
	windows []model.Window
}

// NewMirror creates a mirror holding copies of windows.
func NewMirror(windows ...model.Window) *Mirror {
	return &Mirror{windows: model.CloneWindows(windows)}
}

// Replace swaps in a new window list.
func (m *Mirror) Replace(windows []model.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = model.CloneWindows(windows)
}

// Windows returns a copy of the mirrored windows.
func (m *Mirror) Windows() []model.Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.CloneWindows(m.windows)
}

// Refresh re-reads the live source. On error the mirror is left as is.
func (m *Mirror) Refresh(ctx context.Context, src browser.Source) error {
	windows, err := src.ListWindows(ctx)
	if err != nil {
		return err
	}
	m.Replace(windows)
	return nil
}

// ReorderTab splices the active tab out of its window and reinserts it at the
// over tab's index. Both tabs must be in the same window.
func (m *Mirror) ReorderTab(activeTabID, overTabID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for wi := range m.windows {
		w := &m.windows[wi]
		from, to := w.IndexOf(activeTabID), w.IndexOf(overTabID)
		if from < 0 || to < 0 {
			continue
		}
		if from == to {
			return false
		}
		tab := w.Tabs[from]
		tabs := append(w.Tabs[:from:from], w.Tabs[from+1:]...)
		tabs = append(tabs[:to], append([]model.Tab{tab}, tabs[to:]...)...)
		for i := range tabs {
			tabs[i].Index = i
		}
		w.Tabs = tabs
		return true
	}
	return false
}

// MoveTab removes a tab from its window and appends it to another.
func (m *Mirror) MoveTab(tabID, toWindowID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	dst := -1
	for wi := range m.windows {
		if m.windows[wi].ID == toWindowID {
			dst = wi
		}
	}
	if dst < 0 {
		return false
	}
	for wi := range m.windows {
		src := &m.windows[wi]
		i := src.IndexOf(tabID)
		if i < 0 {
			continue
		}
		if wi == dst {
			return false
		}
		tab := src.Tabs[i]
		src.Tabs = append(src.Tabs[:i:i], src.Tabs[i+1:]...)
		for j := range src.Tabs {
			src.Tabs[j].Index = j
		}
		tab.WindowID = toWindowID
		tab.Index = len(m.windows[dst].Tabs)
		m.windows[dst].Tabs = append(m.windows[dst].Tabs, tab)
		return true
	}
	return false
}
