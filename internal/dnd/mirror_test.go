package dnd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/model"
)

func mirrorTabIDs(w model.Window) []int {
	ids := make([]int, len(w.Tabs))
	for i, t := range w.Tabs {
		ids[i] = t.ID
	}
	return ids
}

func TestMirrorReorderTab(t *testing.T) {
	m := NewMirror(model.Window{ID: 1, Tabs: []model.Tab{{ID: 10}, {ID: 11}, {ID: 12}, {ID: 13}}})

	assert.True(t, m.ReorderTab(10, 12))
	w := m.Windows()[0]
	assert.Equal(t, []int{11, 12, 10, 13}, mirrorTabIDs(w))
	for i, tab := range w.Tabs {
		assert.Equal(t, i, tab.Index)
	}

	assert.True(t, m.ReorderTab(13, 11))
	assert.Equal(t, []int{13, 11, 12, 10}, mirrorTabIDs(m.Windows()[0]))

	assert.False(t, m.ReorderTab(10, 10))
	assert.False(t, m.ReorderTab(10, 99))
}

func TestMirrorReorderAcrossWindowsIgnored(t *testing.T) {
	m := NewMirror(
		model.Window{ID: 1, Tabs: []model.Tab{{ID: 10}}},
		model.Window{ID: 2, Tabs: []model.Tab{{ID: 20}}},
	)
	assert.False(t, m.ReorderTab(10, 20))
}

func TestMirrorMoveTab(t *testing.T) {
	m := NewMirror(
		model.Window{ID: 1, Tabs: []model.Tab{{ID: 10, WindowID: 1}, {ID: 11, WindowID: 1}}},
		model.Window{ID: 2, Tabs: []model.Tab{}},
	)

	assert.True(t, m.MoveTab(10, 2))
	windows := m.Windows()
	assert.Equal(t, []int{11}, mirrorTabIDs(windows[0]))
	assert.Equal(t, 0, windows[0].Tabs[0].Index)
	require.Len(t, windows[1].Tabs, 1)
	assert.Equal(t, 2, windows[1].Tabs[0].WindowID)

	assert.False(t, m.MoveTab(10, 2), "already there")
	assert.False(t, m.MoveTab(11, 9), "unknown window")
}

func TestMirrorWindowsIsACopy(t *testing.T) {
	m := NewMirror(model.Window{ID: 1, Tabs: []model.Tab{{ID: 10, URL: "a"}}})
	w := m.Windows()
	w[0].Tabs[0].URL = "mutated"
	assert.Equal(t, "a", m.Windows()[0].Tabs[0].URL)
}

func TestMirrorRefresh(t *testing.T) {
	live := browser.NewFake(model.Window{ID: 5, Tabs: []model.Tab{{ID: 50}}})
	m := NewMirror()

	require.NoError(t, m.Refresh(context.Background(), live))
	windows := m.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, 5, windows[0].ID)

	require.Error(t, m.Refresh(context.Background(), browser.Offline{}))
	assert.Len(t, m.Windows(), 1, "failed refresh keeps the previous state")
}

func TestSession(t *testing.T) {
	var s Session
	_, ok := s.Current()
	assert.False(t, ok)

	s.Start(Item{ElementID: "100", Origin: WindowContainer(1), Title: "A"})
	item, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "A", item.Title)

	s.Clear()
	_, ok = s.Current()
	assert.False(t, ok)
}
