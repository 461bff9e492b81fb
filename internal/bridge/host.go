package bridge

import (
	"context"
	"strconv"
	"time"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/dnd"
	"github.com/rcliao/tabspace/internal/logx"
	"github.com/rcliao/tabspace/internal/model"
	"github.com/rcliao/tabspace/internal/snapshot"
	"github.com/rcliao/tabspace/internal/store"
)

// Host methods called by the extension.
const (
	MethodDragStart       = "drag.start"
	MethodDragOver        = "drag.over"
	MethodDragEnd         = "drag.end"
	MethodDragCancel      = "drag.cancel"
	MethodWindowsRefresh  = "windows.refresh"
	MethodWindowsMirror   = "windows.mirror"
	MethodWorkspacesList  = "workspaces.list"
	MethodSnapshotCapture = "snapshot.capture"
	MethodGroupRestore    = "group.restore"
)

// Notifications pushed to the extension.
const (
	NotifyWorkspaceUpdated = "workspace.updated"
	NotifyWindowsUpdated   = "windows.updated"
)

type dragOverParams struct {
	ActiveID string `json:"activeId"`
	OverID   string `json:"overId"`
}

type dragOverResult struct {
	Changed bool `json:"changed"`
}

type snapshotParams struct {
	CloseWindows *bool `json:"closeWindows,omitempty"`
}

type restoreParams struct {
	WorkspaceID string `json:"workspaceId"`
	GroupID     string `json:"groupId"`
}

// WorkspaceList answers workspaces.list.
type WorkspaceList struct {
	Workspaces        []model.Workspace `json:"workspaces"`
	ActiveWorkspaceID string            `json:"activeWorkspaceId"`
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithDefaultWorkspaceName names the workspace created on first load.
func WithDefaultWorkspaceName(name string) HostOption {
	return func(h *Host) { h.defaultName = name }
}

// WithSnapshotCloseDefault sets whether snapshots close their windows when
// neither the call nor the stored setting says.
func WithSnapshotCloseDefault(close bool) HostOption {
	return func(h *Host) { h.closeDefault = close }
}

// WithClock sets the clock used to name snapshots.
func WithClock(now func() time.Time) HostOption {
	return func(h *Host) { h.now = now }
}

// Host serves the extension's calls one at a time.
type Host struct {
	conn         *Conn
	live         browser.Source
	repo         store.Repository
	engine       *dnd.Engine
	mirror       *dnd.Mirror
	defaultName  string
	closeDefault bool
	now          func() time.Time
}

// NewHost creates a Host. The engine's mirror is the one reported to the
// extension.
func NewHost(conn *Conn, live browser.Source, repo store.Repository, engine *dnd.Engine, opts ...HostOption) *Host {
	h := &Host{
		conn:   conn,
		live:   live,
		repo:   repo,
		engine: engine,
		mirror: engine.Mirror(),
		now:    time.Now,
	}
	if h.mirror == nil {
		h.mirror = dnd.NewMirror()
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve handles calls until the connection closes or ctx is done.
func (h *Host) Serve(ctx context.Context) error {
	log := logx.Ctx(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-h.conn.Calls():
			if !ok {
				return nil
			}
			result, err := h.handle(ctx, msg)
			if err != nil {
				log.Debug("host call failed", "method", msg.Method, "err", err)
			}
			if msg.ID == "" {
				continue
			}
			if rerr := h.conn.Reply(msg.ID, result, err); rerr != nil {
				return rerr
			}
			if msg.Method == MethodDragEnd {
				h.pushUpdates(ctx, msg)
			}
		}
	}
}

func (h *Host) handle(ctx context.Context, msg *Message) (any, error) {
	switch msg.Method {
	case MethodDragStart:
		var item dnd.Item
		if err := decodeParams(msg, &item); err != nil {
			return nil, err
		}
		h.engine.DragStart(ctx, item)
		return nil, nil

	case MethodDragOver:
		var p dragOverParams
		if err := decodeParams(msg, &p); err != nil {
			return nil, err
		}
		return dragOverResult{Changed: h.engine.DragOver(ctx, p.ActiveID, p.OverID)}, nil

	case MethodDragEnd:
		var drop dnd.Drop
		if err := decodeParams(msg, &drop); err != nil {
			h.engine.DragCancel(ctx)
			return nil, err
		}
		return h.engine.DragEnd(ctx, drop)

	case MethodDragCancel:
		h.engine.DragCancel(ctx)
		return nil, nil

	case MethodWindowsRefresh:
		if err := h.mirror.Refresh(ctx, h.live); err != nil {
			return nil, err
		}
		return h.mirror.Windows(), nil

	case MethodWindowsMirror:
		return h.mirror.Windows(), nil

	case MethodWorkspacesList:
		return h.listWorkspaces(ctx)

	case MethodSnapshotCapture:
		var p snapshotParams
		if err := decodeParams(msg, &p); err != nil {
			return nil, err
		}
		return h.capture(ctx, p)

	case MethodGroupRestore:
		var p restoreParams
		if err := decodeParams(msg, &p); err != nil {
			return nil, err
		}
		if p.WorkspaceID == "" {
			ws, err := store.ActiveWorkspace(ctx, h.repo)
			if err != nil {
				return nil, err
			}
			p.WorkspaceID = ws.ID
		}
		win, err := snapshot.RestoreGroup(ctx, h.live, h.repo, p.WorkspaceID, p.GroupID)
		if err != nil {
			return nil, err
		}
		h.refreshAndNotify(ctx)
		return win, nil
	}
	return nil, errUnknownMethod
}

func (h *Host) listWorkspaces(ctx context.Context) (*WorkspaceList, error) {
	active, err := store.EnsureDefault(ctx, h.repo, h.defaultName)
	if err != nil {
		return nil, err
	}
	all, err := h.repo.LoadWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	return &WorkspaceList{Workspaces: all, ActiveWorkspaceID: active.ID}, nil
}

func (h *Host) capture(ctx context.Context, p snapshotParams) (*snapshot.Result, error) {
	closeWindows := h.closeDefault
	if p.CloseWindows != nil {
		closeWindows = *p.CloseWindows
	} else if v, err := h.repo.Setting(ctx, store.SettingSnapshotCloseWindows); err == nil && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			closeWindows = b
		}
	}
	res, err := snapshot.Capture(ctx, h.live, h.repo, snapshot.Options{CloseWindows: closeWindows, Now: h.now()})
	if res != nil {
		h.notify(ctx, NotifyWorkspaceUpdated, res.Workspace)
		h.refreshAndNotify(ctx)
	}
	return res, err
}

// pushUpdates sends the workspace the drop touched and the mirror after a
// drag end, whatever its outcome.
func (h *Host) pushUpdates(ctx context.Context, msg *Message) {
	var drop dnd.Drop
	_ = decodeParams(msg, &drop)

	var ws *model.Workspace
	var err error
	if drop.WorkspaceID != "" {
		ws, err = h.repo.GetWorkspace(ctx, drop.WorkspaceID)
	} else {
		ws, err = store.ActiveWorkspace(ctx, h.repo)
	}
	if err == nil {
		h.notify(ctx, NotifyWorkspaceUpdated, ws)
	}
	h.notify(ctx, NotifyWindowsUpdated, h.mirror.Windows())
}

func (h *Host) refreshAndNotify(ctx context.Context) {
	if err := h.mirror.Refresh(ctx, h.live); err != nil {
		logx.Ctx(ctx).Warn("mirror refresh failed", "err", err)
		return
	}
	h.notify(ctx, NotifyWindowsUpdated, h.mirror.Windows())
}

func (h *Host) notify(ctx context.Context, method string, params any) {
	if err := h.conn.Notify(method, params); err != nil {
		logx.Ctx(ctx).Warn("notify failed", "method", method, "err", err)
	}
}
