package inspector

import (
	"fmt"
	"strings"

	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/agentic-research/spyglass/internal/world"
	"github.com/dustin/go-humanize"
)

// maxNameWidth is the longest name shown untruncated in the object list.
const maxNameWidth = 20

// Entry summarizes one object for listings and relationship links.
type Entry struct {
	ID         world.ObjectID
	Name       string
	Components int
	Size       uint64
}

// SizeText renders Size for people.
func (e Entry) SizeText() string { return humanize.Bytes(e.Size) }

// Link renders "name (k components)".
func (e Entry) Link() string { return fmt.Sprintf("%s (%d components)", e.Name, e.Components) }

// Line renders the object list row.
func (e Entry) Line() string {
	return fmt.Sprintf("%-*s %d comp | %s", maxNameWidth, Truncate(e.Name, maxNameWidth), e.Components, e.SizeText())
}

// Truncate shortens names longer than width to width-3 runes plus "...".
func Truncate(name string, width int) string {
	r := []rune(name)
	if len(r) <= width || width < 3 {
		return name
	}
	return string(r[:width-3]) + "..."
}

// DisplayName returns the Name component, or "Object 3v0".
func DisplayName(r *world.Reader, id world.ObjectID) string {
	if n, ok := r.Name(id); ok {
		return n
	}
	return "Object " + id.String()
}

func entryFor(r *world.Reader, md *world.Metadata, id world.ObjectID) Entry {
	types := r.Components(id)
	return Entry{
		ID:         id,
		Name:       DisplayName(r, id),
		Components: len(types),
		Size:       md.Size(types),
	}
}

// ListEntities returns the visible objects ordered by index. Objects
// marked Internal are never listed. filter is a case-insensitive substring
// of the display name; every type in required must be present.
func ListEntities(r *world.Reader, md *world.Metadata, filter string, required []shape.TypeID) []Entry {
	internal := shape.TypeIDFor[world.Internal]()
	needle := strings.ToLower(filter)
	var out []Entry
	for _, id := range r.Query(required...) {
		if r.Has(id, internal) {
			continue
		}
		e := entryFor(r, md, id)
		if needle != "" && !strings.Contains(strings.ToLower(e.Name), needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}
