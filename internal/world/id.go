package world

import (
	"fmt"
	"strconv"
	"strings"
)

// ObjectID names a slot in the world. The generation is bumped every time
// the slot is freed, so IDs held past a despawn stop resolving.
type ObjectID struct {
	Index      uint32
	Generation uint32
}

// String renders "3v1".
func (id ObjectID) String() string {
	return strconv.FormatUint(uint64(id.Index), 10) + "v" + strconv.FormatUint(uint64(id.Generation), 10)
}

// ParseObjectID parses the String form. A bare index means generation 0.
func ParseObjectID(s string) (ObjectID, error) {
	idx, gen, hasGen := strings.Cut(s, "v")
	i, err := strconv.ParseUint(idx, 10, 32)
	if err != nil {
		return ObjectID{}, fmt.Errorf("parse object id %q: %w", s, err)
	}
	var g uint64
	if hasGen {
		if g, err = strconv.ParseUint(gen, 10, 32); err != nil {
			return ObjectID{}, fmt.Errorf("parse object id %q: %w", s, err)
		}
	}
	return ObjectID{Index: uint32(i), Generation: uint32(g)}, nil
}
