package inspector

import (
	"fmt"
	"strconv"

	"github.com/agentic-research/spyglass/internal/extract"
	"github.com/agentic-research/spyglass/internal/locator"
	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/agentic-research/spyglass/internal/widget"
	"github.com/agentic-research/spyglass/internal/world"
	"github.com/dustin/go-humanize"
)

const (
	MsgNoSelection = "Select an entity to view details"
	MsgStale       = "Selected entity no longer exists"
	MsgNoData      = "<no reflected data>"
	MsgNoParent    = "No parent (root entity)"
	MsgNoChildren  = "No children"
)

// View is the rebuilt detail panel for one object. When Message is set
// nothing else is.
type View struct {
	Message string

	Object world.ObjectID
	Tab    Tab
	Header string

	Cards     []Card
	Relations *Relations
}

// Card shows one component. Label is the component's name within this
// object, see ComponentLabels.
type Card struct {
	Component shape.TypeID
	Label     string
	Title     string
	Rows      []Row
}

// Row is an extracted row plus the widget bound to it, if editable.
type Row struct {
	extract.Row
	Widget widget.ID
}

// Relations is the relationships tab.
type Relations struct {
	Parent   *Entry
	Children []Entry
}

// WidgetID names the widget for a leaf of the component labelled label:
// "Transform:Translation[1]".
func WidgetID(label string, steps locator.Steps) widget.ID {
	return widget.ID(label + ":" + steps.String())
}

// ComponentLabels names the components of one object, in order. A short
// name already taken by an earlier component gets a "#n" suffix counting
// its occurrences: Stats, Stats#2. Labels are unique within the object.
func ComponentLabels(types []shape.TypeID) []string {
	seen := make(map[string]int, len(types))
	taken := make(map[string]bool, len(types))
	out := make([]string, len(types))
	for i, t := range types {
		short := t.Short()
		seen[short]++
		label := short
		for n := seen[short]; taken[label]; n++ {
			label = short + "#" + strconv.Itoa(n)
		}
		taken[label] = true
		out[i] = label
	}
	return out
}

type builder struct {
	r    *world.Reader
	md   *world.Metadata
	ext  *extract.Extractor
	opts widget.Options
}

// build returns the view for st plus the widgets its editable rows need.
func (b *builder) build(st *State) (View, []*widget.DragValue) {
	if st.Selected == nil {
		return View{Message: MsgNoSelection}, nil
	}
	id := *st.Selected
	if !b.r.Contains(id) {
		return View{Message: MsgStale}, nil
	}
	e := entryFor(b.r, b.md, id)
	v := View{
		Object: id,
		Tab:    st.Tab,
		Header: fmt.Sprintf("%s | %d components | %s", e.Name, e.Components, e.SizeText()),
	}
	if st.Tab == TabRelationships {
		v.Relations = b.relations(id)
		return v, nil
	}
	var widgets []*widget.DragValue
	types := b.r.Components(id)
	labels := ComponentLabels(types)
	for i, t := range types {
		card, ws := b.card(id, t, labels[i])
		v.Cards = append(v.Cards, card)
		widgets = append(widgets, ws...)
	}
	return v, widgets
}

func (b *builder) card(id world.ObjectID, t shape.TypeID, label string) (Card, []*widget.DragValue) {
	size := "?"
	if info, ok := b.md.Lookup(t); ok {
		size = humanize.Bytes(uint64(info.Size))
	}
	c := Card{Component: t, Label: label, Title: label + " | " + size}

	val, err := b.r.Component(id, t)
	if err != nil {
		return c, nil
	}
	var widgets []*widget.DragValue
	for _, row := range b.ext.Extract(val, locator.New(id, t)) {
		vr := Row{Row: row}
		if row.Edit != nil {
			vr.Widget = WidgetID(label, row.Edit.Locator.Steps)
			widgets = append(widgets, widget.NewDragValue(vr.Widget, row.Edit.Locator, row.Edit.Value, b.opts))
		}
		c.Rows = append(c.Rows, vr)
	}
	return c, widgets
}

func (b *builder) relations(id world.ObjectID) *Relations {
	rel := &Relations{}
	if p, ok := b.r.Parent(id); ok {
		e := entryFor(b.r, b.md, p)
		rel.Parent = &e
	}
	for _, c := range b.r.Children(id) {
		rel.Children = append(rel.Children, entryFor(b.r, b.md, c))
	}
	return rel
}
