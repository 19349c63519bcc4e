// Package extract flattens a shape.Value into an ordered list of display
// rows. Rows for numeric leaves carry the locator needed to write them back.
package extract

import (
	"strconv"
	"strings"

	"github.com/agentic-research/spyglass/internal/locator"
	"github.com/agentic-research/spyglass/internal/names"
	"github.com/agentic-research/spyglass/internal/shape"
)

// DefaultMaxDepth bounds recursion through nested values. Pointers let Go
// values form cycles.
const DefaultMaxDepth = 32

// Row is one display line.
type Row struct {
	Label  string
	Value  string
	Indent uint8
	Edit   *LeafEdit
}

// Editable reports whether the row carries a write-back locator.
func (r Row) Editable() bool { return r.Edit != nil }

// LeafEdit is attached to rows whose leaf is one of the six numeric kinds.
type LeafEdit struct {
	Value   float64
	Locator locator.Locator
}

// Extractor walks values. A nil Names registry falls back to positional
// labels everywhere.
type Extractor struct {
	Names    *names.Registry
	MaxDepth int
}

func New(reg *names.Registry) *Extractor {
	return &Extractor{Names: reg, MaxDepth: DefaultMaxDepth}
}

// Extract returns the rows for v, whose locators start at base. The output
// depends only on v's shape and contents.
func (e *Extractor) Extract(v shape.Value, base locator.Locator) []Row {
	var rows []Row
	switch v.Kind() {
	case shape.Struct, shape.TupleStruct, shape.Enum:
		rows = e.fields(rows, v, base, 0)
	default:
		text, ok := simpleText(v)
		if !ok {
			text = v.Text()
		}
		rows = append(rows, Row{Label: "value", Value: text, Edit: leafEdit(v, base)})
	}
	return rows
}

func (e *Extractor) maxDepth() int {
	if e.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return e.MaxDepth
}

func (e *Extractor) fields(rows []Row, v shape.Value, loc locator.Locator, depth int) []Row {
	indent := indentFor(depth)
	switch v.Kind() {
	case shape.Struct:
		for i := 0; i < v.NumField(); i++ {
			f, _ := v.Field(i)
			name := v.FieldName(i)
			rows = e.field(rows, name, f, loc.Child(locator.Named(name)), depth)
		}
	case shape.TupleStruct, shape.Tuple:
		for i := 0; i < v.NumField(); i++ {
			f, _ := v.Field(i)
			rows = e.field(rows, e.positional(v, i), f, loc.Child(locator.Index(i)), depth)
		}
	case shape.Enum:
		rows = append(rows, Row{Label: "variant", Value: v.Variant(), Indent: indent})
		for i := 0; i < v.NumField(); i++ {
			f, _ := v.Field(i)
			label := "." + strconv.Itoa(i)
			if v.VariantKind() == shape.StructVariant {
				label = v.FieldName(i)
			}
			text, ok := simpleText(f)
			if !ok {
				text = header(f)
			}
			rows = append(rows, Row{Label: label, Value: text, Indent: indentFor(depth + 1)})
		}
	}
	return rows
}

func (e *Extractor) field(rows []Row, label string, f shape.Value, loc locator.Locator, depth int) []Row {
	indent := indentFor(depth)
	if text, ok := simpleText(f); ok {
		return append(rows, Row{Label: label, Value: text, Indent: indent, Edit: leafEdit(f, loc)})
	}
	rows = append(rows, Row{Label: label, Value: header(f), Indent: indent})
	if depth+1 >= e.maxDepth() {
		return rows
	}
	return e.fields(rows, f, loc, depth+1)
}

func (e *Extractor) positional(v shape.Value, i int) string {
	if v.Kind() == shape.TupleStruct {
		if name, ok := e.Names.Lookup(v.TypeID(), i); ok {
			return name
		}
	}
	return "." + strconv.Itoa(i)
}

// simpleText renders values that fit on one line. Structs, tuple structs,
// enums and tuples with a complex part need their own rows.
func simpleText(v shape.Value) (string, bool) {
	switch v.Kind() {
	case shape.Scalar, shape.Opaque:
		return v.Text(), true
	case shape.Tuple:
		parts := make([]string, 0, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			f, _ := v.Field(i)
			s, ok := simpleText(f)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return "(" + strings.Join(parts, ", ") + ")", true
	case shape.List, shape.Array:
		return "[" + strconv.Itoa(v.Len()) + " items]", true
	case shape.Map:
		return "{" + strconv.Itoa(v.Len()) + " entries}", true
	case shape.Set:
		return "{" + strconv.Itoa(v.Len()) + " items}", true
	}
	return "", false
}

func header(v shape.Value) string { return "[" + v.TypeName() + "]" }

func leafEdit(v shape.Value, loc locator.Locator) *LeafEdit {
	if v.Kind() != shape.Scalar || !v.Scalar().Numeric() {
		return nil
	}
	x, _ := v.Float()
	loc.Steps = append(locator.Steps(nil), loc.Steps...)
	return &LeafEdit{Value: x, Locator: loc}
}

func indentFor(depth int) uint8 {
	if depth > 255 {
		return 255
	}
	return uint8(depth)
}
