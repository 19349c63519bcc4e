// Package locator addresses one scalar leaf inside one component of one
// object. A Locator is re-resolved on every write and never caches memory.
package locator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/agentic-research/spyglass/internal/world"
)

// ErrSyntax is returned when a path string cannot be parsed.
var ErrSyntax = errors.New("invalid field path")

// Step is one field access: by name, or by position.
type Step struct {
	Name  string
	Index int
	named bool
}

// Named returns a step that selects a struct field by name.
func Named(name string) Step { return Step{Name: name, named: true} }

// Index returns a step that selects a positional field.
func Index(i int) Step { return Step{Index: i} }

// IsNamed reports whether s selects by name.
func (s Step) IsNamed() bool { return s.named }

func (s Step) String() string {
	if s.named {
		return s.Name
	}
	return "[" + strconv.Itoa(s.Index) + "]"
}

// Steps is an ordered field path starting at a component root.
type Steps []Step

// Append returns a new path with s added. The receiver is never aliased.
func (p Steps) Append(s Step) Steps {
	out := make(Steps, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Equal reports whether p and o address the same field.
func (p Steps) Equal(o Steps) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders p as "translation[1]" or "body.mass".
func (p Steps) String() string {
	var b strings.Builder
	for i, s := range p {
		if s.named && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// ParseSteps parses the String form of a path. The empty string is the
// empty path.
func ParseSteps(str string) (Steps, error) {
	var out Steps
	rest := str
	first := true
	for rest != "" {
		switch {
		case rest[0] == '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, fmt.Errorf("%q: unclosed '[': %w", str, ErrSyntax)
			}
			n, err := strconv.Atoi(rest[1:end])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%q: bad index %q: %w", str, rest[1:end], ErrSyntax)
			}
			out = append(out, Index(n))
			rest = rest[end+1:]
		default:
			if !first {
				if rest[0] != '.' {
					return nil, fmt.Errorf("%q: expected '.' or '[' at %q: %w", str, rest, ErrSyntax)
				}
				rest = rest[1:]
			}
			end := strings.IndexAny(rest, ".[]")
			if end < 0 {
				end = len(rest)
			}
			if end == 0 {
				return nil, fmt.Errorf("%q: empty field name: %w", str, ErrSyntax)
			}
			out = append(out, Named(rest[:end]))
			rest = rest[end:]
		}
		first = false
	}
	return out, nil
}

// Locator is the durable handle for one leaf.
type Locator struct {
	Object    world.ObjectID
	Component shape.TypeID
	Steps     Steps
}

// New returns a Locator with a private copy of steps.
func New(obj world.ObjectID, component shape.TypeID, steps ...Step) Locator {
	return Locator{Object: obj, Component: component, Steps: append(Steps(nil), steps...)}
}

// Child returns l extended by s.
func (l Locator) Child(s Step) Locator {
	l.Steps = l.Steps.Append(s)
	return l
}

// Equal reports whether l and o address the same leaf.
func (l Locator) Equal(o Locator) bool {
	return l.Object == o.Object && l.Component == o.Component && l.Steps.Equal(o.Steps)
}

// Key is like String but names the component by its full type ID, so it
// is unique across packages.
func (l Locator) Key() string {
	return l.Object.String() + "/" + string(l.Component) + ":" + l.Steps.String()
}

// String renders "3v0/Transform:translation[1]".
func (l Locator) String() string {
	return l.Object.String() + "/" + l.Component.Short() + ":" + l.Steps.String()
}
