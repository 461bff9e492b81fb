package dnd

import "sync"

// Item is the dragged element: its element id, origin container and a copy
// of its display data for the drag preview.
type Item struct {
	ElementID  string    `json:"elementId"`
	Origin     Container `json:"origin"`
	Title      string    `json:"title,omitempty"`
	URL        string    `json:"url,omitempty"`
	FavIconURL string    `json:"favIconUrl,omitempty"`
}

// Session tracks the in-flight drag. It never touches persisted state.
type Session struct {
	mu      sync.Mutex
	current *Item
}

// Start records the dragged item, replacing any previous one.
func (s *Session) Start(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &item
}

// Current returns the dragged item, if a drag is in flight.
func (s *Session) Current() (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Item{}, false
	}
	return *s.current, true
}

// Clear ends the drag.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
