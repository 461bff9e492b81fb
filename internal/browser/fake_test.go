package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/tabspace/internal/model"
)

func tabIDs(w model.Window) []int {
	ids := make([]int, len(w.Tabs))
	for i, t := range w.Tabs {
		ids[i] = t.ID
	}
	return ids
}

func newTwoWindowFake() *Fake {
	return NewFake(
		model.Window{ID: 1, Focused: true, Tabs: []model.Tab{{ID: 10, URL: "a"}, {ID: 11, URL: "b"}, {ID: 12, URL: "c"}}},
		model.Window{ID: 2, Tabs: []model.Tab{{ID: 20, URL: "x"}}},
	)
}

func TestFakeMoveWithinWindow(t *testing.T) {
	ctx := context.Background()
	f := newTwoWindowFake()

	tab, err := f.MoveTab(ctx, 10, MoveOptions{Index: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, tab.Index)

	w, err := f.GetWindow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12, 10}, tabIDs(w))
	for i, tb := range w.Tabs {
		assert.Equal(t, i, tb.Index)
	}
}

func TestFakeMoveAcrossWindows(t *testing.T) {
	ctx := context.Background()
	f := newTwoWindowFake()

	tab, err := f.MoveTab(ctx, 11, MoveOptions{WindowID: 2, Index: -1})
	require.NoError(t, err)
	assert.Equal(t, 2, tab.WindowID)
	assert.Equal(t, 1, tab.Index)

	windows, err := f.ListWindows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 12}, tabIDs(windows[0]))
	assert.Equal(t, []int{20, 11}, tabIDs(windows[1]))
}

func TestFakeMoveMissing(t *testing.T) {
	ctx := context.Background()
	f := newTwoWindowFake()

	_, err := f.MoveTab(ctx, 999, MoveOptions{Index: 0})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.MoveTab(ctx, 10, MoveOptions{WindowID: 99, Index: 0})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFakeCreateAndRemoveTab(t *testing.T) {
	ctx := context.Background()
	f := newTwoWindowFake()

	tab, err := f.CreateTab(ctx, CreateTabOptions{WindowID: 2, URL: "https://new"})
	require.NoError(t, err)
	assert.Equal(t, 21, tab.ID, "ids continue after the highest seeded id")
	assert.Equal(t, 2, tab.WindowID)

	focusedTab, err := f.CreateTab(ctx, CreateTabOptions{URL: "https://focused"})
	require.NoError(t, err)
	assert.Equal(t, 1, focusedTab.WindowID, "window 0 means the focused window")

	require.NoError(t, f.RemoveTab(ctx, 20))
	require.NoError(t, f.RemoveTab(ctx, tab.ID))

	w, err := f.GetWindow(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, w.Tabs, "empty windows stay open")
	assert.True(t, errors.Is(f.RemoveTab(ctx, 20), ErrNotFound))
}

func TestFakeWindows(t *testing.T) {
	ctx := context.Background()
	f := newTwoWindowFake()

	w, err := f.CreateWindow(ctx, "https://restored")
	require.NoError(t, err)
	assert.Equal(t, 3, w.ID)
	require.Len(t, w.Tabs, 1)
	assert.True(t, w.Focused)

	focused, err := f.FocusedWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, focused.ID)

	updated, err := f.UpdateWindow(ctx, 1, model.StateMinimized)
	require.NoError(t, err)
	assert.Equal(t, model.StateMinimized, updated.State)

	_, err = f.UpdateWindow(ctx, 1, "sideways")
	assert.Error(t, err)

	require.NoError(t, f.RemoveWindow(ctx, 3))
	focused, err = f.FocusedWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, focused.ID)

	_, err = f.GetWindow(ctx, 3)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 1, f.Calls("GetWindow"))
	assert.Equal(t, 1, f.Calls("RemoveWindow"))
}

func TestFakeReturnsCopies(t *testing.T) {
	ctx := context.Background()
	f := newTwoWindowFake()

	windows, _ := f.ListWindows(ctx)
	windows[0].Tabs[0].URL = "mutated"

	again, _ := f.ListWindows(ctx)
	assert.Equal(t, "a", again[0].Tabs[0].URL)
	assert.Equal(t, 4, f.TabCount())
}

func TestOffline(t *testing.T) {
	var src Source = Offline{}
	_, err := src.ListWindows(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, src.RemoveTab(context.Background(), 1), ErrUnavailable)
}
