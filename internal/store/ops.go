package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/rcliao/tabspace/internal/model"
)

// DefaultWorkspaceName names the workspace created on first load.
const DefaultWorkspaceName = "My Workspace"

// ErrUnchanged may be returned by a Mutate callback to skip the write.
var ErrUnchanged = errors.New("unchanged")

// NewID returns a sortable id for groups and persisted tabs.
func NewID() string {
	return ulid.Make().String()
}

// NewWorkspaceID returns a UUID for a new workspace.
func NewWorkspaceID() string {
	return uuid.NewString()
}

// Mutate loads a workspace, applies fn and saves the result in one write.
// If fn returns ErrUnchanged nothing is written and Mutate returns nil.
func Mutate(ctx context.Context, repo Repository, workspaceID string, fn func(ws *model.Workspace) error) error {
	ws, err := repo.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if err := fn(ws); err != nil {
		if errors.Is(err, ErrUnchanged) {
			return nil
		}
		return err
	}
	return repo.SaveWorkspace(ctx, *ws)
}

// ActiveWorkspace returns the active workspace, falling back to the first one
// when no valid selection is stored.
func ActiveWorkspace(ctx context.Context, repo Repository) (*model.Workspace, error) {
	id, err := repo.Setting(ctx, SettingActiveWorkspace)
	if err != nil {
		return nil, err
	}
	if id != "" {
		ws, err := repo.GetWorkspace(ctx, id)
		if err == nil {
			return ws, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	all, err := repo.LoadWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("active workspace: %w", ErrNotFound)
	}
	return &all[0], nil
}

// EnsureDefault creates a default workspace when none exist and returns the
// active workspace.
func EnsureDefault(ctx context.Context, repo Repository, name string) (*model.Workspace, error) {
	all, err := repo.LoadWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		if strings.TrimSpace(name) == "" {
			name = DefaultWorkspaceName
		}
		ws, err := CreateWorkspace(ctx, repo, name)
		if err != nil {
			return nil, err
		}
		if err := repo.SetSetting(ctx, SettingActiveWorkspace, ws.ID); err != nil {
			return nil, err
		}
		return ws, nil
	}
	return ActiveWorkspace(ctx, repo)
}

// SetActiveWorkspace marks an existing workspace as active.
func SetActiveWorkspace(ctx context.Context, repo Repository, id string) error {
	if _, err := repo.GetWorkspace(ctx, id); err != nil {
		return err
	}
	return repo.SetSetting(ctx, SettingActiveWorkspace, id)
}

// CreateWorkspace stores a new empty workspace.
func CreateWorkspace(ctx context.Context, repo Repository, name string) (*model.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("workspace name is required")
	}
	ws := model.Workspace{
		ID:        NewWorkspaceID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Groups:    []model.Group{},
	}
	if err := repo.SaveWorkspace(ctx, ws); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &ws, nil
}

// RenameWorkspace changes a workspace's name.
func RenameWorkspace(ctx context.Context, repo Repository, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("workspace name is required")
	}
	return Mutate(ctx, repo, id, func(ws *model.Workspace) error {
		ws.Name = name
		return nil
	})
}

// RemoveWorkspace deletes a workspace. The last remaining workspace cannot be
// deleted. If the active workspace is removed, the first remaining one
// becomes active.
func RemoveWorkspace(ctx context.Context, repo Repository, id string) error {
	all, err := repo.LoadWorkspaces(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, ws := range all {
		if ws.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("workspace %s: %w", id, ErrNotFound)
	}
	if len(all) == 1 {
		return ErrLastWorkspace
	}

	if err := repo.DeleteWorkspace(ctx, id); err != nil {
		return err
	}

	active, err := repo.Setting(ctx, SettingActiveWorkspace)
	if err != nil {
		return err
	}
	if active == id {
		for _, ws := range all {
			if ws.ID != id {
				return repo.SetSetting(ctx, SettingActiveWorkspace, ws.ID)
			}
		}
	}
	return nil
}

// CreateGroup appends a new empty group to a workspace.
func CreateGroup(ctx context.Context, repo Repository, workspaceID, name string) (*model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}
	g := model.Group{
		ID:        NewID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Tabs:      []model.PersistedTab{},
	}
	err := Mutate(ctx, repo, workspaceID, func(ws *model.Workspace) error {
		ws.Groups = append(ws.Groups, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// RenameGroup changes a group's name.
func RenameGroup(ctx context.Context, repo Repository, workspaceID, groupID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("group name is required")
	}
	return Mutate(ctx, repo, workspaceID, func(ws *model.Workspace) error {
		g := ws.Group(groupID)
		if g == nil {
			return fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		g.Name = name
		return nil
	})
}

// DeleteGroup removes a group and its tabs.
func DeleteGroup(ctx context.Context, repo Repository, workspaceID, groupID string) error {
	return Mutate(ctx, repo, workspaceID, func(ws *model.Workspace) error {
		for i, g := range ws.Groups {
			if g.ID == groupID {
				ws.Groups = append(ws.Groups[:i], ws.Groups[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("group %s: %w", groupID, ErrNotFound)
	})
}

// AddTabToGroup appends tab to a group unless the group already holds a tab
// with the same url. It reports whether the tab was added.
func AddTabToGroup(ctx context.Context, repo Repository, workspaceID, groupID string, tab model.PersistedTab) (bool, error) {
	added := false
	err := Mutate(ctx, repo, workspaceID, func(ws *model.Workspace) error {
		g := ws.Group(groupID)
		if g == nil {
			return fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		if g.HasURL(tab.URL) {
			return ErrUnchanged
		}
		if tab.ID == "" {
			tab.ID = NewID()
		}
		g.Tabs = append(g.Tabs, tab)
		added = true
		return nil
	})
	return added, err
}

// RemoveTabFromGroup deletes a tab from a group.
func RemoveTabFromGroup(ctx context.Context, repo Repository, workspaceID, groupID, tabID string) error {
	return Mutate(ctx, repo, workspaceID, func(ws *model.Workspace) error {
		g := ws.Group(groupID)
		if g == nil {
			return fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		i := g.IndexOf(tabID)
		if i < 0 {
			return fmt.Errorf("tab %s in group %s: %w", tabID, groupID, ErrNotFound)
		}
		g.Tabs = append(g.Tabs[:i], g.Tabs[i+1:]...)
		return nil
	})
}

// ReorderGroupTabs puts the listed tabs first, in the given order; tabs not
// listed keep their relative order after them. Unknown ids are ignored.
func ReorderGroupTabs(ctx context.Context, repo Repository, workspaceID, groupID string, tabIDs []string) error {
	return Mutate(ctx, repo, workspaceID, func(ws *model.Workspace) error {
		g := ws.Group(groupID)
		if g == nil {
			return fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		listed := map[string]bool{}
		reordered := make([]model.PersistedTab, 0, len(g.Tabs))
		for _, id := range tabIDs {
			if listed[id] {
				continue
			}
			if i := g.IndexOf(id); i >= 0 {
				reordered = append(reordered, g.Tabs[i])
				listed[id] = true
			}
		}
		for _, t := range g.Tabs {
			if !listed[t.ID] {
				reordered = append(reordered, t)
			}
		}
		g.Tabs = reordered
		return nil
	})
}

// MoveTabBetweenGroups moves a tab from one group to another in a single
// write. When the target already holds a tab with the same url nothing
// changes and moved is false.
func MoveTabBetweenGroups(ctx context.Context, repo Repository, workspaceID, fromGroupID, toGroupID, tabID string) (moved bool, err error) {
	if fromGroupID == toGroupID {
		return false, nil
	}
	err = Mutate(ctx, repo, workspaceID, func(ws *model.Workspace) error {
		from := ws.Group(fromGroupID)
		if from == nil {
			return fmt.Errorf("group %s: %w", fromGroupID, ErrNotFound)
		}
		to := ws.Group(toGroupID)
		if to == nil {
			return fmt.Errorf("group %s: %w", toGroupID, ErrNotFound)
		}
		i := from.IndexOf(tabID)
		if i < 0 {
			return fmt.Errorf("tab %s in group %s: %w", tabID, fromGroupID, ErrNotFound)
		}
		tab := from.Tabs[i]
		if to.HasURL(tab.URL) {
			return ErrUnchanged
		}
		to.Tabs = append(to.Tabs, tab.Clone())
		from.Tabs = append(from.Tabs[:i], from.Tabs[i+1:]...)
		moved = true
		return nil
	})
	return moved, err
}
