package model

// WindowState is the display state of a live browser window.
type WindowState string

const (
	StateNormal     WindowState = "normal"
	StateMinimized  WindowState = "minimized"
	StateMaximized  WindowState = "maximized"
	StateFullscreen WindowState = "fullscreen"
)

// ValidWindowStates are the allowed window states.
var ValidWindowStates = map[WindowState]bool{
	StateNormal:     true,
	StateMinimized:  true,
	StateMaximized:  true,
	StateFullscreen: true,
}

// Window is a live browser window. It is owned by the browser runtime.
type Window struct {
	ID      int         `json:"id"`
	Focused bool        `json:"focused"`
	State   WindowState `json:"state"`
	Tabs    []Tab       `json:"tabs"`
}

// Tab is a live browser tab. ID is unique while the tab exists.
type Tab struct {
	ID         int    `json:"id"`
	WindowID   int    `json:"windowId"`
	Index      int    `json:"index"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	FavIconURL string `json:"favIconUrl,omitempty"`
}

// IndexOf returns the position of the tab with the given id, or -1.
func (w *Window) IndexOf(tabID int) int {
	for i, t := range w.Tabs {
		if t.ID == tabID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the window.
func (w Window) Clone() Window {
	out := w
	out.Tabs = append([]Tab(nil), w.Tabs...)
	if out.Tabs == nil {
		out.Tabs = []Tab{}
	}
	return out
}

// CloneWindows deep-copies a window list.
func CloneWindows(windows []Window) []Window {
	out := make([]Window, len(windows))
	for i, w := range windows {
		out[i] = w.Clone()
	}
	return out
}

// FindTab locates a live tab by id across windows.
func FindTab(windows []Window, tabID int) (Tab, bool) {
	for _, w := range windows {
		for _, t := range w.Tabs {
			if t.ID == tabID {
				return t, true
			}
		}
	}
	return Tab{}, false
}

// FindWindow locates a window by id.
func FindWindow(windows []Window, windowID int) (Window, bool) {
	for _, w := range windows {
		if w.ID == windowID {
			return w, true
		}
	}
	return Window{}, false
}
