// Package writeback re-navigates a locator through live data and stores a
// numeric value at its leaf. Every failure is reported as an *Error and
// leaves the data untouched.
package writeback

import (
	"errors"

	"github.com/agentic-research/spyglass/internal/locator"
	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/agentic-research/spyglass/internal/world"
)

// Store is the write-phase view of the object store.
type Store interface {
	Contains(id world.ObjectID) bool
	ComponentMut(id world.ObjectID, t shape.TypeID) (shape.Value, error)
}

var _ Store = (*world.Mutator)(nil)

// Resolve walks loc without writing and returns the leaf it reaches. The
// leaf is not checked for a numeric kind.
func Resolve(s Store, loc locator.Locator) (shape.Value, error) {
	if !s.Contains(loc.Object) {
		return shape.Value{}, newError(ObjectNotFound, loc, -1, "")
	}
	v, err := s.ComponentMut(loc.Object, loc.Component)
	if err != nil {
		if errors.Is(err, world.ErrObjectNotFound) {
			return shape.Value{}, newError(ObjectNotFound, loc, -1, "%v", err)
		}
		return shape.Value{}, newError(ComponentNotFound, loc, -1, "%v", err)
	}
	for i, step := range loc.Steps {
		next, err := descend(v, step)
		if err != nil {
			err.Locator = loc
			err.Step = i
			return shape.Value{}, err
		}
		v = next
	}
	return v, nil
}

func descend(v shape.Value, step locator.Step) (shape.Value, *Error) {
	if step.IsNamed() {
		if v.Kind() != shape.Struct {
			return shape.Value{}, newError(PathResolutionFailed, locator.Locator{}, 0,
				"field %q on %s value of type %s", step.Name, v.Kind(), v.TypeName())
		}
		f, ok := v.FieldByName(step.Name)
		if !ok {
			return shape.Value{}, newError(PathResolutionFailed, locator.Locator{}, 0,
				"no field %q on %s", step.Name, v.TypeName())
		}
		return f, nil
	}
	if !v.Kind().HasFields() {
		return shape.Value{}, newError(PathResolutionFailed, locator.Locator{}, 0,
			"index %d on %s value of type %s", step.Index, v.Kind(), v.TypeName())
	}
	f, ok := v.Field(step.Index)
	if !ok {
		return shape.Value{}, newError(PathResolutionFailed, locator.Locator{}, 0,
			"index %d out of range (%d fields)", step.Index, v.NumField())
	}
	return f, nil
}
