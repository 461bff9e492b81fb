package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rcliao/tabspace/internal/model"
)

// MemoryStore is an in-memory Repository. Every read and write copies, so
// callers never share state with the store.
type MemoryStore struct {
	mu         sync.Mutex
	order      []string
	workspaces map[string]model.Workspace
	settings   map[string]string
}

// NewMemoryStore creates an empty MemoryStore, optionally seeded.
func NewMemoryStore(seed ...model.Workspace) *MemoryStore {
	s := &MemoryStore{
		workspaces: map[string]model.Workspace{},
		settings:   map[string]string{},
	}
	for _, ws := range seed {
		s.order = append(s.order, ws.ID)
		s.workspaces[ws.ID] = ws.Clone()
	}
	return s
}

func (s *MemoryStore) LoadWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Workspace, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.workspaces[id].Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetWorkspace(ctx context.Context, id string) (*model.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return nil, fmt.Errorf("workspace %s: %w", id, ErrNotFound)
	}
	cp := ws.Clone()
	return &cp, nil
}

func (s *MemoryStore) SaveWorkspace(ctx context.Context, ws model.Workspace) error {
	if ws.ID == "" {
		return fmt.Errorf("save workspace: empty id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, exists := s.workspaces[ws.ID]
	switch {
	case exists:
		ws.CreatedAt = prev.CreatedAt
	case ws.CreatedAt.IsZero():
		ws.CreatedAt = time.Now().UTC()
	}
	if !exists {
		s.order = append(s.order, ws.ID)
	}
	s.workspaces[ws.ID] = ws.Clone()
	return nil
}

func (s *MemoryStore) DeleteWorkspace(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workspaces[id]; !ok {
		return fmt.Errorf("workspace %s: %w", id, ErrNotFound)
	}
	delete(s.workspaces, id)
	for i, wid := range s.order {
		if wid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Setting(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings[key], nil
}

func (s *MemoryStore) SetSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

func (s *MemoryStore) Close() error { return nil }
