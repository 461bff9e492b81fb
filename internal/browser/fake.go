package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/rcliao/tabspace/internal/model"
)

// Fake is an in-memory Source that allocates ids and re-indexes tabs the way
// a browser does. Windows stay open when their last tab leaves.
type Fake struct {
	mu        sync.Mutex
	windows   []model.Window
	focused   int
	nextWin   int
	nextTab   int
	callCount map[string]int
}

// NewFake creates a Fake holding copies of the given windows. The first
// window marked focused (or the first window) gets focus.
func NewFake(windows ...model.Window) *Fake {
	f := &Fake{nextWin: 1, nextTab: 1, callCount: map[string]int{}}
	for _, w := range windows {
		w = w.Clone()
		if w.State == "" {
			w.State = model.StateNormal
		}
		for i := range w.Tabs {
			if w.Tabs[i].ID >= f.nextTab {
				f.nextTab = w.Tabs[i].ID + 1
			}
		}
		if w.ID >= f.nextWin {
			f.nextWin = w.ID + 1
		}
		if w.Focused && f.focused == 0 {
			f.focused = w.ID
		}
		f.windows = append(f.windows, w)
	}
	if f.focused == 0 && len(f.windows) > 0 {
		f.focused = f.windows[0].ID
	}
	for i := range f.windows {
		f.reindex(i)
	}
	return f
}

// Calls reports how many times the named method was invoked.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount[method]
}

// TabCount returns the number of live tabs across all windows.
func (f *Fake) TabCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, w := range f.windows {
		n += len(w.Tabs)
	}
	return n
}

func (f *Fake) ListWindows(ctx context.Context) ([]model.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount["ListWindows"]++
	return f.snapshot(), nil
}

func (f *Fake) GetWindow(ctx context.Context, windowID int) (model.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount["GetWindow"]++
	wi := f.windowIndex(windowID)
	if wi < 0 {
		return model.Window{}, fmt.Errorf("window %d: %w", windowID, ErrNotFound)
	}
	return f.view(wi), nil
}

func (f *Fake) FocusedWindow(ctx context.Context) (model.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount["FocusedWindow"]++
	wi := f.windowIndex(f.focused)
	if wi < 0 {
		return model.Window{}, fmt.Errorf("focused window: %w", ErrNotFound)
	}
	return f.view(wi), nil
}

func (f *Fake) MoveTab(ctx context.Context, tabID int, opts MoveOptions) (model.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount["MoveTab"]++

	wi, ti := f.tabIndex(tabID)
	if wi < 0 {
		return model.Tab{}, fmt.Errorf("tab %d: %w", tabID, ErrNotFound)
	}
	dst := wi
	if opts.WindowID != 0 {
		dst = f.windowIndex(opts.WindowID)
		if dst < 0 {
			return model.Tab{}, fmt.Errorf("window %d: %w", opts.WindowID, ErrNotFound)
		}
	}

	tab := f.windows[wi].Tabs[ti]
	f.windows[wi].Tabs = append(f.windows[wi].Tabs[:ti], f.windows[wi].Tabs[ti+1:]...)

	tabs := f.windows[dst].Tabs
	idx := opts.Index
	if idx < 0 || idx > len(tabs) {
		idx = len(tabs)
	}
	tabs = append(tabs, model.Tab{})
	copy(tabs[idx+1:], tabs[idx:])
	tabs[idx] = tab
	f.windows[dst].Tabs = tabs

	f.reindex(wi)
	f.reindex(dst)
	return f.windows[dst].Tabs[idx], nil
}

func (f *Fake) CreateTab(ctx context.Context, opts CreateTabOptions) (model.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount["CreateTab"]++

	windowID := opts.WindowID
	if windowID == 0 {
		windowID = f.focused
	}
	wi := f.windowIndex(windowID)
	if wi < 0 {
		return model.Tab{}, fmt.Errorf("window %d: %w", windowID, ErrNotFound)
	}
	tab := model.Tab{ID: f.nextTab, URL: opts.URL}
	f.nextTab++
	f.windows[wi].Tabs = append(f.windows[wi].Tabs, tab)
	f.reindex(wi)
	return f.windows[wi].Tabs[len(f.windows[wi].Tabs)-1], nil
}

func (f *Fake) RemoveTab(ctx context.Context, tabID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount["RemoveTab"]++

	wi, ti := f.tabIndex(tabID)
	if wi < 0 {
		return fmt.Errorf("tab %d: %w", tabID, ErrNotFound)
	}
	f.windows[wi].Tabs = append(f.windows[wi].Tabs[:ti], f.windows[wi].Tabs[ti+1:]...)
	f.reindex(wi)
	return nil
}

func (f *Fake) CreateWindow(ctx context.Context, url string) (model.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount["CreateWindow"]++

	w := model.Window{ID: f.nextWin, State: model.StateNormal, Tabs: []model.Tab{}}
	f.nextWin++
	if url != "" {
		w.Tabs = append(w.Tabs, model.Tab{ID: f.nextTab, URL: url})
		f.nextTab++
	}
	f.windows = append(f.windows, w)
	f.focused = w.ID
	wi := len(f.windows) - 1
	f.reindex(wi)
	return f.view(wi), nil
}

func (f *Fake) RemoveWindow(ctx context.Context, windowID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount["RemoveWindow"]++

	wi := f.windowIndex(windowID)
	if wi < 0 {
		return fmt.Errorf("window %d: %w", windowID, ErrNotFound)
	}
	f.windows = append(f.windows[:wi], f.windows[wi+1:]...)
	if f.focused == windowID {
		f.focused = 0
		if len(f.windows) > 0 {
			f.focused = f.windows[0].ID
		}
	}
	return nil
}

func (f *Fake) UpdateWindow(ctx context.Context, windowID int, state model.WindowState) (model.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount["UpdateWindow"]++

	if !model.ValidWindowStates[state] {
		return model.Window{}, fmt.Errorf("invalid window state %q", state)
	}
	wi := f.windowIndex(windowID)
	if wi < 0 {
		return model.Window{}, fmt.Errorf("window %d: %w", windowID, ErrNotFound)
	}
	f.windows[wi].State = state
	return f.view(wi), nil
}

func (f *Fake) windowIndex(id int) int {
	for i, w := range f.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func (f *Fake) tabIndex(tabID int) (int, int) {
	for wi, w := range f.windows {
		if ti := w.IndexOf(tabID); ti >= 0 {
			return wi, ti
		}
	}
	return -1, -1
}

func (f *Fake) reindex(wi int) {
	w := &f.windows[wi]
	for i := range w.Tabs {
		w.Tabs[i].Index = i
		w.Tabs[i].WindowID = w.ID
	}
}

func (f *Fake) view(wi int) model.Window {
	w := f.windows[wi].Clone()
	w.Focused = w.ID == f.focused
	return w
}

func (f *Fake) snapshot() []model.Window {
	out := make([]model.Window, len(f.windows))
	for i := range f.windows {
		out[i] = f.view(i)
	}
	return out
}
