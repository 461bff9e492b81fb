package dnd

// Transition is the kind of move a drag gesture performs.
type Transition string

const (
	TransitionNone            Transition = "none"
	TransitionReorderTab      Transition = "reorder_tab"
	TransitionReorderGroupTab Transition = "reorder_group_tab"
	TransitionCrossGroup      Transition = "cross_group_move"
	TransitionFileTab         Transition = "file_tab"
	TransitionMaterializeTab  Transition = "materialize_tab"
	TransitionCrossWindow     Transition = "cross_window_move"
)

// Classify maps an origin and target container to a transition. Untagged or
// unrecognized containers classify as TransitionNone.
func Classify(origin, target Container) Transition {
	if !origin.Valid() || !target.Valid() {
		return TransitionNone
	}
	same := origin.ID == target.ID
	switch {
	case origin.Type == ContainerWindow && target.Type == ContainerWindow:
		if same {
			return TransitionReorderTab
		}
		return TransitionCrossWindow
	case origin.Type == ContainerGroup && target.Type == ContainerGroup:
		if same {
			return TransitionReorderGroupTab
		}
		return TransitionCrossGroup
	case origin.Type == ContainerWindow && target.Type == ContainerGroup:
		return TransitionFileTab
	case origin.Type == ContainerGroup && target.Type == ContainerWindow:
		return TransitionMaterializeTab
	}
	return TransitionNone
}

// TouchesLive reports whether the transition calls the live window source.
func (t Transition) TouchesLive() bool {
	switch t {
	case TransitionReorderTab, TransitionCrossWindow, TransitionFileTab, TransitionMaterializeTab:
		return true
	}
	return false
}

// TouchesStore reports whether the transition writes persisted groups.
func (t Transition) TouchesStore() bool {
	switch t {
	case TransitionReorderGroupTab, TransitionCrossGroup, TransitionFileTab, TransitionMaterializeTab:
		return true
	}
	return false
}
