package writeback

import (
	"github.com/agentic-research/spyglass/internal/locator"
)

// Apply resolves loc against s and stores x at the leaf, converted to the
// leaf's numeric kind.
func Apply(s Store, loc locator.Locator, x float64) error {
	_, _, err := apply(s, loc, x)
	return err
}

// apply returns the leaf value before and after the write.
func apply(s Store, loc locator.Locator, x float64) (before, after float64, err error) {
	leaf, err := Resolve(s, loc)
	if err != nil {
		return 0, 0, err
	}
	c, ok := coercerFor(leaf)
	if !ok {
		return 0, 0, newError(UnsupportedLeafKind, loc, -1, "%s leaf of type %s", leaf.Kind(), leaf.TypeName())
	}
	before, _ = leaf.Float()
	if err := c.set(leaf, x); err != nil {
		return 0, 0, newError(UnsupportedLeafKind, loc, -1, "%v", err)
	}
	after, _ = leaf.Float()
	return before, after, nil
}
