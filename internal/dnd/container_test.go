package dnd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/tabspace/internal/model"
)

func TestElementIDs(t *testing.T) {
	assert.Equal(t, "window-7", WindowElementID(7))
	assert.Equal(t, "group-g1", GroupElementID("g1"))
	assert.Equal(t, "100", TabElementID(100))
	assert.Equal(t, "group-g1-tab-t1", GroupTabElementID("g1", "t1"))
	assert.Equal(t, "window-7", WindowContainer(7).ElementID())
	assert.Equal(t, "group-g1", GroupContainer("g1").String())
	assert.Equal(t, "none", Container{}.String())
}

func TestParseGroupTabID(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"group-g1-tab-t1", "t1", true},
		{"group-my-tab-group-tab-imported-1-2", "imported-1-2", true},
		{"group-g1", "", false},
		{"group-g1-tab-", "", false},
		{"window-1", "", false},
		{"100", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseGroupTabID(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSurface(t *testing.T) {
	tests := []struct {
		in   string
		want Container
		ok   bool
	}{
		{"window-3", WindowContainer(3), true},
		{"group-g1", GroupContainer("g1"), true},
		{"group-g1-tab-t9", GroupContainer("g1"), true},
		{"window-x", Container{}, false},
		{"group-", Container{}, false},
		{"100", Container{}, false},
		{"", Container{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSurface(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTargetNumericAmbiguity(t *testing.T) {
	windows := []model.Window{
		{ID: 1, Tabs: []model.Tab{{ID: 100, WindowID: 1}}},
		{ID: 2, Tabs: []model.Tab{{ID: 2, WindowID: 2}, {ID: 1, WindowID: 2}}},
	}

	c, ok := ResolveTarget(windows, "100")
	assert.True(t, ok)
	assert.Equal(t, WindowContainer(1), c, "a live tab id resolves to its window")

	c, ok = ResolveTarget(windows, "1")
	assert.True(t, ok)
	assert.Equal(t, WindowContainer(2), c, "tab membership wins over a window with the same id")

	c, ok = ResolveTarget(windows, "42")
	assert.True(t, ok)
	assert.Equal(t, WindowContainer(42), c, "unknown numbers are window ids")

	c, ok = ResolveTarget(windows, "group-g1")
	assert.True(t, ok)
	assert.Equal(t, GroupContainer("g1"), c)

	_, ok = ResolveTarget(windows, "nonsense")
	assert.False(t, ok)
}

func TestContainerValid(t *testing.T) {
	assert.True(t, WindowContainer(1).Valid())
	assert.True(t, GroupContainer("g").Valid())
	assert.False(t, Container{}.Valid())
	assert.False(t, Container{Type: ContainerWindow, ID: "abc"}.Valid())
	assert.False(t, Container{Type: ContainerGroup}.Valid())
	assert.False(t, Container{Type: "shelf", ID: "1"}.Valid())

	id, ok := WindowContainer(5).WindowID()
	assert.True(t, ok)
	assert.Equal(t, 5, id)
	_, ok = GroupContainer("5").WindowID()
	assert.False(t, ok)
}
