package bridge

import (
	"context"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/model"
)

// Live window source methods answered by the extension.
const (
	MethodWindowsList    = "windows.list"
	MethodWindowsGet     = "windows.get"
	MethodWindowsFocused = "windows.focused"
	MethodWindowsCreate  = "windows.create"
	MethodWindowsRemove  = "windows.remove"
	MethodWindowsUpdate  = "windows.update"
	MethodTabsMove       = "tabs.move"
	MethodTabsCreate     = "tabs.create"
	MethodTabsRemove     = "tabs.remove"
)

type windowParams struct {
	WindowID int               `json:"windowId"`
	State    model.WindowState `json:"state,omitempty"`
	URL      string            `json:"url,omitempty"`
}

type tabParams struct {
	TabID int                 `json:"tabId"`
	Move  browser.MoveOptions `json:"move"`
}

// RemoteSource is a browser.Source whose calls are answered by the
// extension on the other end of a Conn.
type RemoteSource struct {
	conn *Conn
}

var _ browser.Source = (*RemoteSource)(nil)

// NewRemoteSource wraps conn.
func NewRemoteSource(conn *Conn) *RemoteSource {
	return &RemoteSource{conn: conn}
}

func (s *RemoteSource) ListWindows(ctx context.Context) ([]model.Window, error) {
	var windows []model.Window
	if err := s.conn.Call(ctx, MethodWindowsList, nil, &windows); err != nil {
		return nil, err
	}
	return windows, nil
}

func (s *RemoteSource) GetWindow(ctx context.Context, windowID int) (model.Window, error) {
	var w model.Window
	err := s.conn.Call(ctx, MethodWindowsGet, windowParams{WindowID: windowID}, &w)
	return w, err
}

func (s *RemoteSource) FocusedWindow(ctx context.Context) (model.Window, error) {
	var w model.Window
	err := s.conn.Call(ctx, MethodWindowsFocused, nil, &w)
	return w, err
}

func (s *RemoteSource) MoveTab(ctx context.Context, tabID int, opts browser.MoveOptions) (model.Tab, error) {
	var t model.Tab
	err := s.conn.Call(ctx, MethodTabsMove, tabParams{TabID: tabID, Move: opts}, &t)
	return t, err
}

func (s *RemoteSource) CreateTab(ctx context.Context, opts browser.CreateTabOptions) (model.Tab, error) {
	var t model.Tab
	err := s.conn.Call(ctx, MethodTabsCreate, opts, &t)
	return t, err
}

func (s *RemoteSource) RemoveTab(ctx context.Context, tabID int) error {
	return s.conn.Call(ctx, MethodTabsRemove, tabParams{TabID: tabID}, nil)
}

func (s *RemoteSource) CreateWindow(ctx context.Context, url string) (model.Window, error) {
	var w model.Window
	err := s.conn.Call(ctx, MethodWindowsCreate, windowParams{URL: url}, &w)
	return w, err
}

func (s *RemoteSource) RemoveWindow(ctx context.Context, windowID int) error {
	return s.conn.Call(ctx, MethodWindowsRemove, windowParams{WindowID: windowID}, nil)
}

func (s *RemoteSource) UpdateWindow(ctx context.Context, windowID int, state model.WindowState) (model.Window, error) {
	var w model.Window
	err := s.conn.Call(ctx, MethodWindowsUpdate, windowParams{WindowID: windowID, State: state}, &w)
	return w, err
}

// ServeSource answers live window source calls from src until conn closes
// or ctx is done. Calls for other methods are answered with an
// unknown-method error.
func ServeSource(ctx context.Context, conn *Conn, src browser.Source) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-conn.Calls():
			if !ok {
				return nil
			}
			if msg.ID == "" {
				continue
			}
			result, err := HandleSourceCall(ctx, src, msg)
			if rerr := conn.Reply(msg.ID, result, err); rerr != nil {
				return rerr
			}
		}
	}
}

// HandleSourceCall runs one live window source call against src.
func HandleSourceCall(ctx context.Context, src browser.Source, msg *Message) (any, error) {
	switch msg.Method {
	case MethodWindowsList:
		return src.ListWindows(ctx)
	case MethodWindowsFocused:
		return src.FocusedWindow(ctx)
	case MethodWindowsGet, MethodWindowsCreate, MethodWindowsRemove, MethodWindowsUpdate:
		var p windowParams
		if err := decodeParams(msg, &p); err != nil {
			return nil, err
		}
		switch msg.Method {
		case MethodWindowsGet:
			return src.GetWindow(ctx, p.WindowID)
		case MethodWindowsCreate:
			return src.CreateWindow(ctx, p.URL)
		case MethodWindowsRemove:
			return nil, src.RemoveWindow(ctx, p.WindowID)
		default:
			return src.UpdateWindow(ctx, p.WindowID, p.State)
		}
	case MethodTabsMove, MethodTabsRemove:
		var p tabParams
		if err := decodeParams(msg, &p); err != nil {
			return nil, err
		}
		if msg.Method == MethodTabsRemove {
			return nil, src.RemoveTab(ctx, p.TabID)
		}
		return src.MoveTab(ctx, p.TabID, p.Move)
	case MethodTabsCreate:
		var p browser.CreateTabOptions
		if err := decodeParams(msg, &p); err != nil {
			return nil, err
		}
		return src.CreateTab(ctx, p)
	}
	return nil, errUnknownMethod
}
