// Package dnd classifies drag gestures between live windows and persisted
// groups and applies the matching mutations.
package dnd

import (
	"strconv"
	"strings"

	"github.com/rcliao/tabspace/internal/model"
)

// ContainerType tags what kind of container holds a tab.
type ContainerType string

const (
	ContainerWindow ContainerType = "window"
	ContainerGroup  ContainerType = "group"
)

const (
	windowPrefix = "window-"
	groupPrefix  = "group-"
	tabInfix     = "-tab-"
)

// Container identifies a drag origin or drop target. The zero value carries
// no tag.
type Container struct {
	Type ContainerType `json:"type"`
	ID   string        `json:"id"`
}

// WindowContainer tags a live window.
func WindowContainer(windowID int) Container {
	return Container{Type: ContainerWindow, ID: strconv.Itoa(windowID)}
}

// GroupContainer tags a persisted group.
func GroupContainer(groupID string) Container {
	return Container{Type: ContainerGroup, ID: groupID}
}

// Valid reports whether the container carries a recognized tag.
func (c Container) Valid() bool {
	switch c.Type {
	case ContainerWindow:
		_, err := strconv.Atoi(c.ID)
		return err == nil
	case ContainerGroup:
		return c.ID != ""
	}
	return false
}

// WindowID returns the numeric window id of a window container.
func (c Container) WindowID() (int, bool) {
	if c.Type != ContainerWindow {
		return 0, false
	}
	id, err := strconv.Atoi(c.ID)
	return id, err == nil
}

// ElementID returns the drop surface id of the container.
func (c Container) ElementID() string {
	switch c.Type {
	case ContainerWindow:
		return windowPrefix + c.ID
	case ContainerGroup:
		return groupPrefix + c.ID
	}
	return ""
}

func (c Container) String() string {
	if s := c.ElementID(); s != "" {
		return s
	}
	return "none"
}

// WindowElementID is the drop surface id of a live window.
func WindowElementID(windowID int) string {
	return windowPrefix + strconv.Itoa(windowID)
}

// GroupElementID is the drop surface id of a group.
func GroupElementID(groupID string) string {
	return groupPrefix + groupID
}

// TabElementID is the draggable id of a live tab: the raw tab id.
func TabElementID(tabID int) string {
	return strconv.Itoa(tabID)
}

// GroupTabElementID is the draggable id of a persisted tab.
func GroupTabElementID(groupID, tabID string) string {
	return groupPrefix + groupID + tabInfix + tabID
}

// ParseGroupTabID returns the tab id of a group tab element id: everything
// after the last "-tab-".
func ParseGroupTabID(elementID string) (string, bool) {
	if !strings.HasPrefix(elementID, groupPrefix) {
		return "", false
	}
	i := strings.LastIndex(elementID, tabInfix)
	if i < 0 {
		return "", false
	}
	id := elementID[i+len(tabInfix):]
	return id, id != ""
}

// ParseTabID returns the live tab id of a window tab element id.
func ParseTabID(elementID string) (int, bool) {
	id, err := strconv.Atoi(elementID)
	return id, err == nil
}

// ParseSurface classifies a non-numeric element id. A group tab element
// resolves to its group.
func ParseSurface(elementID string) (Container, bool) {
	switch {
	case strings.HasPrefix(elementID, windowPrefix):
		id, err := strconv.Atoi(strings.TrimPrefix(elementID, windowPrefix))
		if err != nil {
			return Container{}, false
		}
		return WindowContainer(id), true
	case strings.HasPrefix(elementID, groupPrefix):
		rest := strings.TrimPrefix(elementID, groupPrefix)
		if i := strings.LastIndex(rest, tabInfix); i >= 0 {
			rest = rest[:i]
		}
		if rest == "" {
			return Container{}, false
		}
		return GroupContainer(rest), true
	}
	return Container{}, false
}

// ResolveTarget resolves a drop element id to its container. A numeric id is
// ambiguous: if it names a live tab the drop lands on that tab's window,
// otherwise it is taken as a window id.
func ResolveTarget(windows []model.Window, elementID string) (Container, bool) {
	if n, ok := ParseTabID(elementID); ok {
		if tab, found := model.FindTab(windows, n); found {
			return WindowContainer(tab.WindowID), true
		}
		return WindowContainer(n), true
	}
	return ParseSurface(elementID)
}
