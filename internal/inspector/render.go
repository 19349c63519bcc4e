package inspector

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentic-research/spyglass/internal/widget"
	"github.com/agentic-research/spyglass/internal/world"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// WriteView renders v as indented text. Editable rows show their widget's
// current text when panel holds one.
func WriteView(w io.Writer, v View, panel *widget.Panel) error {
	var b strings.Builder
	if v.Message != "" {
		b.WriteString(v.Message + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString(v.Header + "\n")
	switch v.Tab {
	case TabRelationships:
		writeRelations(&b, v.Relations)
	default:
		for _, c := range v.Cards {
			b.WriteString("\n" + c.Title + "\n")
			if len(c.Rows) == 0 {
				b.WriteString("  " + MsgNoData + "\n")
				continue
			}
			for _, r := range c.Rows {
				fmt.Fprintf(&b, "%s%s: %s\n", strings.Repeat("  ", int(r.Indent)+1), r.Label, rowText(r, panel))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRelations(b *strings.Builder, rel *Relations) {
	if rel == nil {
		rel = &Relations{}
	}
	b.WriteString("\nParent\n")
	if rel.Parent == nil {
		b.WriteString("  " + MsgNoParent + "\n")
	} else {
		b.WriteString("  " + rel.Parent.Link() + "\n")
	}
	fmt.Fprintf(b, "\nChildren (%d)\n", len(rel.Children))
	if len(rel.Children) == 0 {
		b.WriteString("  " + MsgNoChildren + "\n")
	}
	for _, c := range rel.Children {
		b.WriteString("  " + c.Link() + "\n")
	}
}

func rowText(r Row, panel *widget.Panel) string {
	if r.Widget != "" && panel != nil {
		if d, ok := panel.Widget(r.Widget); ok {
			return d.Text()
		}
	}
	return r.Value
}

// rowNumber is the widget's current value, or the extracted one when no
// widget is bound.
func rowNumber(r Row, panel *widget.Panel) float64 {
	if r.Widget != "" && panel != nil {
		if d, ok := panel.Widget(r.Widget); ok {
			return d.Value()
		}
	}
	return r.Edit.Value
}

// WriteEntities renders the object list, marking the selected object.
func WriteEntities(w io.Writer, entries []Entry, selected *world.ObjectID) error {
	var b strings.Builder
	for _, e := range entries {
		mark := "  "
		if selected != nil && *selected == e.ID {
			mark = "> "
		}
		fmt.Fprintf(&b, "%s%-6s %s\n", mark, e.ID, e.Line())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Document converts v into generic JSON data.
func Document(v View, panel *widget.Panel) map[string]any {
	if v.Message != "" {
		return map[string]any{"message": v.Message}
	}
	doc := map[string]any{
		"object": v.Object.String(),
		"header": v.Header,
		"tab":    v.Tab.String(),
	}
	if v.Tab == TabRelationships {
		rel := map[string]any{"parent": nil, "children": []any{}}
		if v.Relations != nil {
			if v.Relations.Parent != nil {
				rel["parent"] = entryDoc(*v.Relations.Parent)
			}
			kids := make([]any, 0, len(v.Relations.Children))
			for _, c := range v.Relations.Children {
				kids = append(kids, entryDoc(c))
			}
			rel["children"] = kids
		}
		doc["relations"] = rel
		return doc
	}
	cards := make([]any, 0, len(v.Cards))
	for _, c := range v.Cards {
		rows := make([]any, 0, len(c.Rows))
		for _, r := range c.Rows {
			row := map[string]any{
				"label":    r.Label,
				"value":    rowText(r, panel),
				"indent":   int64(r.Indent),
				"editable": r.Editable(),
			}
			if r.Edit != nil {
				row["path"] = r.Edit.Locator.Steps.String()
				row["number"] = rowNumber(r, panel)
			}
			rows = append(rows, row)
		}
		cards = append(cards, map[string]any{
			"type":  string(c.Component),
			"name":  c.Label,
			"title": c.Title,
			"rows":  rows,
		})
	}
	doc["components"] = cards
	return doc
}

// EntitiesDocument converts an object list into generic JSON data.
func EntitiesDocument(entries []Entry) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryDoc(e))
	}
	return out
}

func entryDoc(e Entry) map[string]any {
	return map[string]any{
		"id":         e.ID.String(),
		"name":       e.Name,
		"components": int64(e.Components),
		"size":       e.SizeText(),
		"bytes":      int64(e.Size),
	}
}

// JSON renders data with two-space indentation and sorted keys.
func JSON(data any) string {
	return oj.JSON(data, &ojg.Options{Indent: 2, Sort: true})
}

// Select evaluates a JSONPath expression against data.
func Select(data any, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}
	return x.Get(data), nil
}
