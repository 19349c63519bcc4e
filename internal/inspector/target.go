package inspector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentic-research/spyglass/internal/locator"
	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/agentic-research/spyglass/internal/world"
	"github.com/agentic-research/spyglass/internal/writeback"
)

var (
	ErrUnknownObject    = errors.New("unknown object")
	ErrUnknownComponent = errors.New("unknown component")
	ErrNotNumeric       = errors.New("value is not numeric")
)

// FindObject resolves ref as an object ID ("3v0", "3") or, failing that,
// as the exact Name of a live object. Internal objects are never matched
// by name.
func FindObject(r *world.Reader, ref string) (world.ObjectID, error) {
	if id, err := world.ParseObjectID(ref); err == nil {
		if r.Contains(id) {
			return id, nil
		}
		return world.ObjectID{}, fmt.Errorf("%w: %s", ErrUnknownObject, ref)
	}
	internal := shape.TypeIDFor[world.Internal]()
	for _, id := range r.Objects() {
		if n, ok := r.Name(id); ok && n == ref && !r.Has(id, internal) {
			return id, nil
		}
	}
	return world.ObjectID{}, fmt.Errorf("%w: %q", ErrUnknownObject, ref)
}

// FindComponent resolves a component of id by its label within the object
// ("Stats", "Stats#2") or by full type ID.
func FindComponent(r *world.Reader, id world.ObjectID, name string) (shape.TypeID, error) {
	types := r.Components(id)
	for i, label := range ComponentLabels(types) {
		if label == name || string(types[i]) == name {
			return types[i], nil
		}
	}
	return "", fmt.Errorf("%w: %s has no %q", ErrUnknownComponent, id, name)
}

// ParseTarget resolves a widget-style target "Transform:Translation[1]"
// on object id.
func ParseTarget(r *world.Reader, id world.ObjectID, target string) (locator.Locator, error) {
	comp, path, _ := strings.Cut(target, ":")
	t, err := FindComponent(r, id, comp)
	if err != nil {
		return locator.Locator{}, err
	}
	steps, err := locator.ParseSteps(path)
	if err != nil {
		return locator.Locator{}, err
	}
	return locator.New(id, t, steps...), nil
}

// ReadValue resolves loc in a read phase and returns its numeric leaf.
func ReadValue(r *world.Reader, loc locator.Locator) (float64, error) {
	v, err := writeback.Resolve(readStore{r}, loc)
	if err != nil {
		return 0, err
	}
	x, ok := v.Float()
	if !ok {
		return 0, fmt.Errorf("%s: %w (%s)", loc, ErrNotNumeric, v.TypeName())
	}
	return x, nil
}

// readStore serves resolution from a read phase. Values it hands out are
// read-only.
type readStore struct{ *world.Reader }

func (s readStore) ComponentMut(id world.ObjectID, t shape.TypeID) (shape.Value, error) {
	return s.Component(id, t)
}
