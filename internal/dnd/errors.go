package dnd

import (
	"errors"
	"fmt"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/store"
)

// Kind classifies a drag failure.
type Kind string

const (
	KindResolution Kind = "resolution"
	KindStale      Kind = "stale"
	KindStore      Kind = "store"
	KindBrowser    Kind = "browser"
)

// Sentinels matched by errors.Is against a *DragError of the same kind.
var (
	ErrResolution  = errors.New("dnd: unresolvable drag")
	ErrStale       = errors.New("dnd: stale reference")
	ErrStoreWrite  = errors.New("dnd: store write failed")
	ErrBrowserCall = errors.New("dnd: browser call failed")
)

// DragError is returned by Engine.DragEnd when a drop could not be applied.
type DragError struct {
	Kind       Kind
	Transition Transition
	Op         string
	Err        error
}

func (e *DragError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Kind, e.Transition, e.Op)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DragError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *DragError) Is(target error) bool {
	switch target {
	case ErrResolution:
		return e.Kind == KindResolution
	case ErrStale:
		return e.Kind == KindStale
	case ErrStoreWrite:
		return e.Kind == KindStore
	case ErrBrowserCall:
		return e.Kind == KindBrowser
	}
	return false
}

func resolutionError(t Transition, op string) *DragError {
	return &DragError{Kind: KindResolution, Transition: t, Op: op}
}

// storeError classifies a store failure; missing workspaces, groups and tabs
// are stale references.
func storeError(t Transition, op string, err error) *DragError {
	kind := KindStore
	if errors.Is(err, store.ErrNotFound) {
		kind = KindStale
	}
	return &DragError{Kind: kind, Transition: t, Op: op, Err: err}
}

// browserError classifies a live source failure; closed windows and tabs are
// stale references.
func browserError(t Transition, op string, err error) *DragError {
	kind := KindBrowser
	if errors.Is(err, browser.ErrNotFound) {
		kind = KindStale
	}
	return &DragError{Kind: kind, Transition: t, Op: op, Err: err}
}
