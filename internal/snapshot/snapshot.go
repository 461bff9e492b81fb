// Package snapshot copies live windows into a new workspace and opens saved
// groups back up as live windows.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/logx"
	"github.com/rcliao/tabspace/internal/model"
	"github.com/rcliao/tabspace/internal/store"
)

// NameLayout formats the name of a captured workspace.
const NameLayout = "2006-01-02 15:04"

// Options configures Capture.
type Options struct {
	// CloseWindows closes every live window, empty ones included, once the
	// workspace is saved.
	CloseWindows bool
	// Now stamps the workspace; zero means time.Now.
	Now time.Time
}

// Result describes a capture.
type Result struct {
	Workspace     model.Workspace `json:"workspace"`
	Tabs          int             `json:"tabs"`
	ClosedWindows []int           `json:"closedWindows,omitempty"`
}

// Capture saves every live window with tabs as a group of a new workspace.
// Tabs without a url are skipped; duplicate urls are kept so the group
// mirrors the window tab for tab. Window close failures are returned after
// the workspace has been saved.
func Capture(ctx context.Context, live browser.Source, repo store.Repository, opts Options) (*Result, error) {
	windows, err := live.ListWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	ws := model.Workspace{
		ID:        store.NewWorkspaceID(),
		Name:      now.Format(NameLayout),
		CreatedAt: now.UTC(),
		Groups:    []model.Group{},
	}
	res := &Result{}
	for _, w := range windows {
		if len(w.Tabs) == 0 {
			continue
		}
		g := model.Group{
			ID:        store.NewID(),
			Name:      fmt.Sprintf("Window %d", w.ID),
			CreatedAt: now.UTC(),
			Tabs:      []model.PersistedTab{},
		}
		for _, t := range w.Tabs {
			if t.URL == "" {
				continue
			}
			originalID := t.ID
			g.Tabs = append(g.Tabs, model.PersistedTab{
				ID:         store.NewID(),
				OriginalID: &originalID,
				Title:      t.Title,
				URL:        t.URL,
				FavIconURL: t.FavIconURL,
				WindowID:   w.ID,
			})
		}
		res.Tabs += len(g.Tabs)
		ws.Groups = append(ws.Groups, g)
	}

	if err := repo.SaveWorkspace(ctx, ws); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	res.Workspace = ws
	log := logx.WithWorkspace(logx.Ctx(ctx), ws.ID)
	log.Info("snapshot saved", "groups", len(ws.Groups), "tabs", res.Tabs)

	if !opts.CloseWindows {
		return res, nil
	}
	var errs []error
	for _, w := range windows {
		if err := live.RemoveWindow(ctx, w.ID); err != nil {
			log.Warn("close window failed", "window", w.ID, "err", err)
			errs = append(errs, fmt.Errorf("close window %d: %w", w.ID, err))
			continue
		}
		res.ClosedWindows = append(res.ClosedWindows, w.ID)
	}
	return res, errors.Join(errs...)
}

// RestoreGroup opens a new window holding the group's tabs in order. The
// group itself is left unchanged. An empty group opens nothing and returns
// a zero window.
func RestoreGroup(ctx context.Context, live browser.Source, repo store.Repository, workspaceID, groupID string) (model.Window, error) {
	ws, err := repo.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return model.Window{}, err
	}
	g := ws.Group(groupID)
	if g == nil {
		return model.Window{}, fmt.Errorf("group %s: %w", groupID, store.ErrNotFound)
	}
	if len(g.Tabs) == 0 {
		return model.Window{}, nil
	}

	win, err := live.CreateWindow(ctx, g.Tabs[0].URL)
	if err != nil {
		return model.Window{}, fmt.Errorf("create window: %w", err)
	}
	for _, t := range g.Tabs[1:] {
		if _, err := live.CreateTab(ctx, browser.CreateTabOptions{WindowID: win.ID, URL: t.URL}); err != nil {
			return win, fmt.Errorf("create tab %s: %w", t.URL, err)
		}
	}

	restored, err := live.GetWindow(ctx, win.ID)
	if err != nil {
		return win, err
	}
	logx.WithWorkspace(logx.Ctx(ctx), workspaceID).Info("group restored", "group", groupID, "window", win.ID, "tabs", len(g.Tabs))
	return restored, nil
}
