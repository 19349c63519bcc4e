package inspector

import (
	"fmt"

	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/agentic-research/spyglass/internal/world"
)

// Tab selects the detail view.
type Tab int

const (
	TabComponents Tab = iota
	TabRelationships
)

func (t Tab) String() string {
	if t == TabRelationships {
		return "relationships"
	}
	return "components"
}

// ParseTab parses the String form.
func ParseTab(s string) (Tab, error) {
	switch s {
	case "", "components":
		return TabComponents, nil
	case "relationships":
		return TabRelationships, nil
	}
	return 0, fmt.Errorf("unknown tab %q", s)
}

// State is the operator's current selection and list filter. Rebuilds are
// driven by comparing it with the previous frame.
type State struct {
	Selected *world.ObjectID
	Tab      Tab
	Filter   string
	Required []shape.TypeID

	prevSelected *world.ObjectID
	prevTab      Tab
	rebuild      bool
	built        bool
}

// Select makes id the inspected object.
func (s *State) Select(id world.ObjectID) { s.Selected = &id }

// Deselect clears the selection.
func (s *State) Deselect() { s.Selected = nil }

// RequestRebuild forces the next frame to rebuild the detail view.
func (s *State) RequestRebuild() { s.rebuild = true }

// changed reports whether the detail view is out of date and marks it
// current.
func (s *State) changed() bool {
	ch := !s.built || s.rebuild || s.Tab != s.prevTab || !sameID(s.Selected, s.prevSelected)
	s.built = true
	s.rebuild = false
	s.prevTab = s.Tab
	if s.Selected == nil {
		s.prevSelected = nil
	} else {
		id := *s.Selected
		s.prevSelected = &id
	}
	return ch
}

func sameID(a, b *world.ObjectID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
