package dnd

import (
	"context"
	"errors"
	"sync"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/logx"
	"github.com/rcliao/tabspace/internal/model"
	"github.com/rcliao/tabspace/internal/store"
)

// Drop describes where a drag ended. ActiveID and Origin default to the
// session's item. When Target is not tagged it is resolved from OverID.
type Drop struct {
	ActiveID    string    `json:"activeId,omitempty"`
	Origin      Container `json:"origin,omitempty"`
	OverID      string    `json:"overId,omitempty"`
	Target      Container `json:"target,omitempty"`
	WorkspaceID string    `json:"workspaceId,omitempty"`
}

// Outcome reports what a drag end did.
type Outcome struct {
	Transition   Transition `json:"transition"`
	Changed      bool       `json:"changed"`
	Deduplicated bool       `json:"deduplicated,omitempty"`
	Refreshed    bool       `json:"refreshed,omitempty"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator sets the id generator for filed tabs.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// Engine applies drag gestures across the live window source, the persisted
// store and the mirror. Gestures are handled one at a time.
type Engine struct {
	mu      sync.Mutex
	live    browser.Source
	repo    store.Repository
	mirror  *Mirror
	session Session
	newID   func() string

	// speculative is set while the mirror holds a drag-over splice.
	speculative bool
}

// New creates an Engine. mirror may be nil.
func New(live browser.Source, repo store.Repository, mirror *Mirror, opts ...Option) *Engine {
	e := &Engine{live: live, repo: repo, mirror: mirror, newID: store.NewID}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session returns the drag session state.
func (e *Engine) Session() *Session { return &e.session }

// Mirror returns the engine's mirror, or nil.
func (e *Engine) Mirror() *Mirror { return e.mirror }

// DragStart records the dragged item.
func (e *Engine) DragStart(ctx context.Context, item Item) {
	e.session.Start(item)
	logx.WithDrag(ctx, item.Origin.String(), "").Debug("drag started", "element", item.ElementID)
}

// DragOver splices the mirror while a live tab is dragged over another tab
// in its window. It reports whether the mirror changed.
func (e *Engine) DragOver(ctx context.Context, activeID, overID string) bool {
	if e.mirror == nil {
		return false
	}
	item, ok := e.session.Current()
	if !ok || item.Origin.Type != ContainerWindow {
		return false
	}
	active, ok1 := ParseTabID(activeID)
	over, ok2 := ParseTabID(overID)
	if !ok1 || !ok2 || active == over {
		return false
	}
	if !e.mirror.ReorderTab(active, over) {
		return false
	}
	e.mu.Lock()
	e.speculative = true
	e.mu.Unlock()
	return true
}

// DragCancel ends the drag without changing anything.
func (e *Engine) DragCancel(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Clear()
	if e.speculative {
		e.refresh(ctx, &Outcome{})
	}
	logx.Ctx(ctx).Debug("drag cancelled")
}

// DragEnd classifies the drop and applies it. The session is always cleared.
// Drops on nothing or on the dragged element itself change nothing and
// return no error. Failures are returned as *DragError after the mirror has
// been refreshed from the live source.
func (e *Engine) DragEnd(ctx context.Context, drop Drop) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.session.Clear()

	out, err := e.dragEnd(ctx, drop)
	// A drag-over splice is never left standing, whatever the outcome.
	if e.speculative && !out.Refreshed {
		e.refresh(ctx, &out)
	}
	return out, err
}

func (e *Engine) dragEnd(ctx context.Context, drop Drop) (Outcome, error) {
	out := Outcome{Transition: TransitionNone}
	if item, ok := e.session.Current(); ok {
		if drop.ActiveID == "" {
			drop.ActiveID = item.ElementID
		}
		if !drop.Origin.Valid() {
			drop.Origin = item.Origin
		}
	}

	if drop.OverID == "" && drop.Target == (Container{}) {
		return out, nil
	}
	if drop.ActiveID != "" && drop.ActiveID == drop.OverID {
		return out, nil
	}
	if !drop.Origin.Valid() || drop.ActiveID == "" {
		return out, e.fail(ctx, drop, &out, resolutionError(TransitionNone, "origin"))
	}

	if !drop.Target.Valid() {
		target, err := e.resolveTarget(ctx, drop.OverID)
		if err != nil {
			return out, e.fail(ctx, drop, &out, err)
		}
		drop.Target = target
	}

	out.Transition = Classify(drop.Origin, drop.Target)
	var err *DragError
	switch out.Transition {
	case TransitionReorderTab:
		err = e.reorderTab(ctx, drop, &out)
	case TransitionReorderGroupTab:
		err = e.reorderGroupTab(ctx, drop, &out)
	case TransitionCrossGroup:
		err = e.crossGroup(ctx, drop, &out)
	case TransitionFileTab:
		err = e.fileTab(ctx, drop, &out)
	case TransitionMaterializeTab:
		err = e.materializeTab(ctx, drop, &out)
	case TransitionCrossWindow:
		err = e.crossWindow(ctx, drop, &out)
	default:
		err = resolutionError(TransitionNone, "classify")
	}
	if err != nil {
		return out, e.fail(ctx, drop, &out, err)
	}

	if out.Changed && out.Transition.TouchesLive() {
		e.refresh(ctx, &out)
	}
	logx.WithTransition(logx.WithDrag(ctx, drop.Origin.String(), drop.Target.String()), string(out.Transition)).
		Debug("drag applied", "changed", out.Changed, "deduplicated", out.Deduplicated)
	return out, nil
}

// fail logs a drag failure and resynchronizes the mirror. Resolution
// failures never reach a collaborator, so the mirror is left alone.
func (e *Engine) fail(ctx context.Context, drop Drop, out *Outcome, err *DragError) error {
	if err.Transition == "" {
		err.Transition = out.Transition
	}
	logx.WithTransition(logx.WithDrag(ctx, drop.Origin.String(), drop.Target.String()), string(err.Transition)).
		Warn("drag failed", "kind", string(err.Kind), "op", err.Op, "err", err.Err)
	if err.Kind != KindResolution {
		e.refresh(ctx, out)
	}
	return err
}

func (e *Engine) refresh(ctx context.Context, out *Outcome) {
	e.speculative = false
	if e.mirror == nil {
		return
	}
	if err := e.mirror.Refresh(ctx, e.live); err != nil {
		logx.Ctx(ctx).Warn("mirror refresh failed", "err", err)
		return
	}
	out.Refreshed = true
}

func (e *Engine) resolveTarget(ctx context.Context, overID string) (Container, *DragError) {
	if c, ok := ParseSurface(overID); ok {
		return c, nil
	}
	if _, ok := ParseTabID(overID); !ok {
		return Container{}, resolutionError(TransitionNone, "target")
	}
	windows, err := e.live.ListWindows(ctx)
	if err != nil {
		return Container{}, browserError(TransitionNone, "list windows", err)
	}
	c, _ := ResolveTarget(windows, overID)
	return c, nil
}

func (e *Engine) workspaceID(ctx context.Context, drop Drop, t Transition) (string, *DragError) {
	if drop.WorkspaceID != "" {
		return drop.WorkspaceID, nil
	}
	ws, err := store.ActiveWorkspace(ctx, e.repo)
	if errors.Is(err, store.ErrNotFound) {
		return "", resolutionError(t, "workspace")
	}
	if err != nil {
		return "", storeError(t, "load workspace", err)
	}
	return ws.ID, nil
}

// liveTab looks up the dragged live tab in the live source.
func (e *Engine) liveTab(ctx context.Context, t Transition, activeID string) (model.Tab, []model.Window, *DragError) {
	tabID, ok := ParseTabID(activeID)
	if !ok {
		return model.Tab{}, nil, resolutionError(t, "tab id")
	}
	windows, err := e.live.ListWindows(ctx)
	if err != nil {
		return model.Tab{}, nil, browserError(t, "list windows", err)
	}
	tab, found := model.FindTab(windows, tabID)
	if !found {
		return model.Tab{}, nil, &DragError{Kind: KindStale, Transition: t, Op: "find tab", Err: browser.ErrNotFound}
	}
	return tab, windows, nil
}

func (e *Engine) reorderTab(ctx context.Context, drop Drop, out *Outcome) *DragError {
	t := out.Transition
	overTabID, ok := ParseTabID(drop.OverID)
	if !ok {
		// Dropped on its own window's surface.
		return nil
	}
	tab, windows, derr := e.liveTab(ctx, t, drop.ActiveID)
	if derr != nil {
		return derr
	}
	over, found := model.FindTab(windows, overTabID)
	if !found || over.WindowID != tab.WindowID {
		return nil
	}
	if windowID, _ := drop.Origin.WindowID(); tab.WindowID != windowID {
		return nil
	}
	if tab.Index == over.Index {
		return nil
	}

	if _, err := e.live.MoveTab(ctx, tab.ID, browser.MoveOptions{Index: over.Index}); err != nil {
		return browserError(t, "move tab", err)
	}
	out.Changed = true
	if e.mirror != nil {
		e.mirror.ReorderTab(tab.ID, over.ID)
	}
	return nil
}

func (e *Engine) reorderGroupTab(ctx context.Context, drop Drop, out *Outcome) *DragError {
	t := out.Transition
	activeTabID, ok := ParseGroupTabID(drop.ActiveID)
	if !ok {
		return resolutionError(t, "tab id")
	}
	overTabID, ok := ParseGroupTabID(drop.OverID)
	if !ok {
		// Dropped on its own group's surface.
		return nil
	}
	wsID, derr := e.workspaceID(ctx, drop, t)
	if derr != nil {
		return derr
	}

	ws, err := e.repo.GetWorkspace(ctx, wsID)
	if err != nil {
		return storeError(t, "load workspace", err)
	}
	g := ws.Group(drop.Origin.ID)
	if g == nil {
		return storeError(t, "find group", store.ErrNotFound)
	}
	from, to := g.IndexOf(activeTabID), g.IndexOf(overTabID)
	if from < 0 || to < 0 {
		return storeError(t, "find tab", store.ErrNotFound)
	}
	if from == to {
		return nil
	}

	ids := make([]string, 0, len(g.Tabs))
	for _, pt := range g.Tabs {
		if pt.ID != activeTabID {
			ids = append(ids, pt.ID)
		}
	}
	ids = append(ids[:to], append([]string{activeTabID}, ids[to:]...)...)
	if err := store.ReorderGroupTabs(ctx, e.repo, wsID, g.ID, ids); err != nil {
		return storeError(t, "reorder group tabs", err)
	}
	out.Changed = true
	return nil
}

func (e *Engine) crossGroup(ctx context.Context, drop Drop, out *Outcome) *DragError {
	t := out.Transition
	tabID, ok := ParseGroupTabID(drop.ActiveID)
	if !ok {
		return resolutionError(t, "tab id")
	}
	wsID, derr := e.workspaceID(ctx, drop, t)
	if derr != nil {
		return derr
	}
	moved, err := store.MoveTabBetweenGroups(ctx, e.repo, wsID, drop.Origin.ID, drop.Target.ID, tabID)
	if err != nil {
		return storeError(t, "move between groups", err)
	}
	out.Changed = moved
	out.Deduplicated = !moved
	return nil
}

func (e *Engine) fileTab(ctx context.Context, drop Drop, out *Outcome) *DragError {
	t := out.Transition
	tab, _, derr := e.liveTab(ctx, t, drop.ActiveID)
	if derr != nil {
		return derr
	}
	wsID, derr := e.workspaceID(ctx, drop, t)
	if derr != nil {
		return derr
	}

	originalID := tab.ID
	pt := model.PersistedTab{
		ID:         e.newID(),
		OriginalID: &originalID,
		Title:      tab.Title,
		URL:        tab.URL,
		FavIconURL: tab.FavIconURL,
		WindowID:   tab.WindowID,
	}
	added, err := store.AddTabToGroup(ctx, e.repo, wsID, drop.Target.ID, pt)
	if err != nil {
		return storeError(t, "add tab to group", err)
	}
	out.Deduplicated = !added

	// The live tab is closed even when the group already had its url.
	if err := e.live.RemoveTab(ctx, tab.ID); err != nil {
		out.Changed = added
		return browserError(t, "remove tab", err)
	}
	out.Changed = true
	return nil
}

func (e *Engine) materializeTab(ctx context.Context, drop Drop, out *Outcome) *DragError {
	t := out.Transition
	tabID, ok := ParseGroupTabID(drop.ActiveID)
	if !ok {
		return resolutionError(t, "tab id")
	}
	windowID, ok := drop.Target.WindowID()
	if !ok {
		return resolutionError(t, "window id")
	}
	wsID, derr := e.workspaceID(ctx, drop, t)
	if derr != nil {
		return derr
	}

	ws, err := e.repo.GetWorkspace(ctx, wsID)
	if err != nil {
		return storeError(t, "load workspace", err)
	}
	g := ws.Group(drop.Origin.ID)
	if g == nil {
		return storeError(t, "find group", store.ErrNotFound)
	}
	i := g.IndexOf(tabID)
	if i < 0 {
		return storeError(t, "find tab", store.ErrNotFound)
	}
	pt := g.Tabs[i]
	if pt.URL == "" {
		return resolutionError(t, "tab url")
	}

	win, err := e.live.GetWindow(ctx, windowID)
	if errors.Is(err, browser.ErrNotFound) {
		logx.WithWorkspace(logx.Ctx(ctx), wsID).Info("target window gone, using focused window", "window", windowID)
		win, err = e.live.FocusedWindow(ctx)
	}
	if err != nil {
		return browserError(t, "resolve window", err)
	}

	if _, err := e.live.CreateTab(ctx, browser.CreateTabOptions{WindowID: win.ID, URL: pt.URL, Active: false}); err != nil {
		return browserError(t, "create tab", err)
	}
	out.Changed = true

	if err := store.RemoveTabFromGroup(ctx, e.repo, wsID, g.ID, pt.ID); err != nil {
		return storeError(t, "remove tab from group", err)
	}
	return nil
}

func (e *Engine) crossWindow(ctx context.Context, drop Drop, out *Outcome) *DragError {
	t := out.Transition
	tab, _, derr := e.liveTab(ctx, t, drop.ActiveID)
	if derr != nil {
		return derr
	}
	windowID, _ := drop.Target.WindowID()
	if tab.WindowID == windowID {
		return nil
	}

	if _, err := e.live.MoveTab(ctx, tab.ID, browser.MoveOptions{WindowID: windowID, Index: -1}); err != nil {
		return browserError(t, "move tab", err)
	}
	out.Changed = true
	if e.mirror != nil {
		e.mirror.MoveTab(tab.ID, windowID)
	}
	return nil
}
