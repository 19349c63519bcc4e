package inspector

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/agentic-research/spyglass/internal/demo"
	"github.com/agentic-research/spyglass/internal/names"
	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/agentic-research/spyglass/internal/widget"
	"github.com/agentic-research/spyglass/internal/world"
	"github.com/agentic-research/spyglass/internal/writeback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemo(t *testing.T) (*Inspector, demo.Scene) {
	t.Helper()
	w := world.New()
	scene := demo.Build(w)
	reg := names.New()
	demo.RegisterNames(reg)
	in := New(w, Options{Names: reg, Logger: log.New(io.Discard, "", 0)})
	return in, scene
}

func frame(t *testing.T, in *Inspector, events ...widget.Event) FrameReport {
	t.Helper()
	rep, err := in.Frame(context.Background(), events)
	require.NoError(t, err)
	return rep
}

func rowByLabel(c Card, label string) (Row, bool) {
	for _, r := range c.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return Row{}, false
}

func cardByName(v View, short string) (Card, bool) {
	for _, c := range v.Cards {
		if c.Component.Short() == short {
			return c, true
		}
	}
	return Card{}, false
}

func TestFrameNoSelection(t *testing.T) {
	in, _ := newDemo(t)

	rep := frame(t, in)
	assert.True(t, rep.Rebuilt)
	assert.Positive(t, rep.NewTypes)
	assert.Equal(t, MsgNoSelection, in.View().Message)
	assert.Zero(t, in.Panel.Len())

	rep = frame(t, in)
	assert.False(t, rep.Rebuilt)
	assert.Zero(t, rep.NewTypes, "known types are not ingested twice")
	assert.Equal(t, uint64(2), rep.Frame)
}

func TestSelectBuildsCards(t *testing.T) {
	in, scene := newDemo(t)
	in.State.Select(scene.Red)

	rep := frame(t, in)
	require.True(t, rep.Rebuilt)
	v := in.View()
	assert.Empty(t, v.Message)
	assert.Equal(t, scene.Red, v.Object)
	assert.True(t, strings.HasPrefix(v.Header, "Child Red | 4 components | "), v.Header)

	tr, ok := cardByName(v, "Transform")
	require.True(t, ok)
	assert.Equal(t, "Transform | 40 B", tr.Title)

	y, ok := rowByLabel(tr, "y")
	require.True(t, ok)
	assert.Equal(t, widget.ID("Transform:Translation[1]"), y.Widget)
	d, ok := in.Panel.Widget(y.Widget)
	require.True(t, ok)
	assert.Equal(t, "0.00", d.Text())

	sp, ok := cardByName(v, "Sprite")
	require.True(t, ok)
	r, ok := rowByLabel(sp, "r")
	require.True(t, ok)
	assert.True(t, r.Editable())

	name, ok := cardByName(v, "Name")
	require.True(t, ok)
	require.Len(t, name.Rows, 1)
	assert.Equal(t, `"Child Red"`, name.Rows[0].Value)
	assert.False(t, name.Rows[0].Editable())

	assert.False(t, frame(t, in).Rebuilt, "unchanged selection keeps the view")
}

func TestDragWritesBack(t *testing.T) {
	in, scene := newDemo(t)
	in.State.Select(scene.Red)
	frame(t, in)

	var recorded []writeback.Result
	in.AddRecorder(func(_ context.Context, rs []writeback.Result) { recorded = append(recorded, rs...) })

	target := widget.ID("Transform:Translation[1]")
	rep := frame(t, in,
		widget.Event{Kind: widget.DragStart, Target: target},
		widget.Event{Kind: widget.DragMove, Target: target, Distance: 50},
		widget.Event{Kind: widget.DragMove, Target: target, Distance: 100},
		widget.Event{Kind: widget.DragEnd, Target: target},
	)
	require.Len(t, rep.Results, 2)
	assert.NoError(t, rep.Results[1].Err)
	assert.InDelta(t, 10.0, rep.Results[1].After, 1e-6)
	assert.Len(t, recorded, 2)
	assert.False(t, rep.Rebuilt)

	_ = in.World.View(func(r *world.Reader) error {
		tr, ok := world.Get[demo.Transform](r, scene.Red)
		require.True(t, ok)
		assert.InDelta(t, 10.0, float64(tr.Translation[1]), 1e-6)
		assert.Equal(t, float32(50), tr.Translation[0])
		return nil
	})

	d, _ := in.Panel.Widget(target)
	assert.Equal(t, "10.00", d.Text())

	got, err := Select(Document(in.View(), in.Panel), `$.components[?(@.name == 'Transform')].rows[?(@.path == 'Translation[1]')]`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	row := got[0].(map[string]any)
	assert.Equal(t, "10.00", row["value"])
	assert.InDelta(t, 10.0, row["number"], 1e-6)

	in.State.RequestRebuild()
	require.True(t, frame(t, in).Rebuilt)
	tr, _ := cardByName(in.View(), "Transform")
	y, _ := rowByLabel(tr, "y")
	assert.Equal(t, "10", y.Value)
	assert.Empty(t, in.Diagnostics()[0].Message)
}

func TestTypedEditWritesInteger(t *testing.T) {
	in, scene := newDemo(t)
	in.State.Select(scene.Green)
	frame(t, in)

	target := widget.ID("Stats:Health")
	base := time.Unix(1000, 0)
	events := []widget.Event{
		{Kind: widget.Click, Target: target, At: base},
		{Kind: widget.Click, Target: target, At: base.Add(120 * time.Millisecond)},
	}
	for range 6 {
		events = append(events, widget.Event{Kind: widget.KeyInput, Key: widget.KeyBackspace})
	}
	for _, c := range "-7.9" {
		events = append(events, widget.Event{Kind: widget.KeyInput, Key: widget.KeyCharacter, Text: string(c)})
	}
	events = append(events, widget.Event{Kind: widget.KeyInput, Key: widget.KeyEnter})

	rep := frame(t, in, events...)
	require.Len(t, rep.Results, 1)
	require.NoError(t, rep.Results[0].Err)
	assert.Equal(t, widget.ID(""), in.Panel.Focus())

	_ = in.World.View(func(r *world.Reader) error {
		st, _ := world.Get[demo.Stats](r, scene.Green)
		assert.Equal(t, int32(-7), st.Health)
		return nil
	})
}

func TestStaleSelection(t *testing.T) {
	in, scene := newDemo(t)
	in.State.Select(scene.Red)
	frame(t, in)
	require.NotZero(t, in.Panel.Len())

	require.NoError(t, in.World.Update(func(m *world.Mutator) error {
		return m.Despawn(scene.Red)
	}))

	rep := frame(t, in)
	assert.True(t, rep.Rebuilt)
	assert.Equal(t, MsgStale, in.View().Message)
	assert.Zero(t, in.Panel.Len())
	assert.False(t, frame(t, in).Rebuilt)

	// The slot is reused with a new generation; the old handle stays stale.
	var fresh world.ObjectID
	require.NoError(t, in.World.Update(func(m *world.Mutator) error {
		fresh = m.Spawn(world.Name("Newcomer"))
		return nil
	}))
	assert.Equal(t, scene.Red.Index, fresh.Index)
	in.State.RequestRebuild()
	frame(t, in)
	assert.Equal(t, MsgStale, in.View().Message)
}

func TestQueuedEditForRemovedComponent(t *testing.T) {
	in, scene := newDemo(t)
	in.State.Select(scene.Red)
	frame(t, in)

	target := widget.ID("Spin:Speed")
	require.False(t, in.Panel.Dispatch(widget.Event{Kind: widget.DragStart, Target: target}))
	require.True(t, in.Panel.Dispatch(widget.Event{Kind: widget.DragMove, Target: target, Distance: 10}))

	require.NoError(t, in.World.Update(func(m *world.Mutator) error {
		return m.Remove(scene.Red, shape.TypeIDFor[demo.Spin]())
	}))

	rep := frame(t, in)
	require.Len(t, rep.Results, 1)
	assert.ErrorIs(t, rep.Results[0].Err, writeback.ErrComponentNotFound)
	require.Len(t, in.Engine.Diagnostics.Failures(), 1)
}

func TestRelationshipsTab(t *testing.T) {
	in, scene := newDemo(t)
	in.State.Select(scene.Parent)
	in.State.Tab = TabRelationships
	frame(t, in)

	v := in.View()
	require.NotNil(t, v.Relations)
	assert.Nil(t, v.Relations.Parent)
	require.Len(t, v.Relations.Children, 2)
	assert.Equal(t, "Child Red (4 components)", v.Relations.Children[0].Link())
	assert.Zero(t, in.Panel.Len())

	var buf bytes.Buffer
	require.NoError(t, WriteView(&buf, v, in.Panel))
	out := buf.String()
	assert.Contains(t, out, MsgNoParent)
	assert.Contains(t, out, "Children (2)")
	assert.Contains(t, out, "  Child Blue (3 components)")

	in.State.Select(scene.Red)
	assert.True(t, frame(t, in).Rebuilt)
	rel := in.View().Relations
	require.NotNil(t, rel.Parent)
	assert.Equal(t, "Parent Ducky", rel.Parent.Name)
	assert.Empty(t, rel.Children)

	buf.Reset()
	require.NoError(t, WriteView(&buf, in.View(), in.Panel))
	assert.Contains(t, buf.String(), MsgNoChildren)
}

func TestEntities(t *testing.T) {
	in, scene := newDemo(t)
	frame(t, in)

	es := in.Entities()
	require.Len(t, es, 6, "internal objects are hidden")
	assert.Equal(t, scene.Camera, es[0].ID)
	assert.Equal(t, "Object "+scene.Yellow.String(), es[5].Name)

	in.State.Filter = "CHILD"
	frame(t, in)
	require.Len(t, in.Entities(), 2)
	assert.Equal(t, "Child Blue", in.Entities()[1].Name)

	in.State.Filter = ""
	in.State.Required = []shape.TypeID{shape.TypeIDFor[demo.Stats]()}
	frame(t, in)
	require.Len(t, in.Entities(), 1)
	assert.Equal(t, scene.Green, in.Entities()[0].ID)

	var buf bytes.Buffer
	sel := scene.Green
	require.NoError(t, WriteEntities(&buf, in.Entities(), &sel))
	assert.True(t, strings.HasPrefix(buf.String(), "> 4v0"), buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 20))
	assert.Equal(t, "exactly twenty chars", Truncate("exactly twenty chars", 20))
	assert.Equal(t, "a name that is wa...", Truncate("a name that is way too long", 20))
	assert.Equal(t, "ünïcödé ñämé thät...", Truncate("ünïcödé ñämé thät ïs löng", 20))

	e := Entry{Name: "a name that is way too long", Components: 3, Size: 2048}
	assert.Equal(t, "a name that is wa... 3 comp | 2.0 kB", e.Line())
}

func TestDocument(t *testing.T) {
	in, scene := newDemo(t)
	in.State.Select(scene.Red)
	frame(t, in)

	doc := Document(in.View(), in.Panel)
	assert.Equal(t, scene.Red.String(), doc["object"])

	got, err := Select(doc, `$.components[?(@.name == 'Transform')].rows[?(@.path == 'Translation[0]')].number`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 50.0, got[0], 1e-9)

	js := JSON(doc)
	assert.Contains(t, js, "Child Red | 4 components |")
	assert.Contains(t, js, "\n  ")

	_, err = Select(doc, "$[")
	assert.Error(t, err)

	assert.Equal(t, map[string]any{"message": MsgNoSelection}, Document(View{Message: MsgNoSelection}, nil))

	list := EntitiesDocument([]Entry{{ID: scene.Green, Name: "Standalone Green", Components: 4, Size: 10}})
	got, err = Select(list, "$[*].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Standalone Green"}, got)
}

func TestWriteViewShowsWidgetText(t *testing.T) {
	in, scene := newDemo(t)
	in.State.Select(scene.Green)
	frame(t, in)

	var buf bytes.Buffer
	require.NoError(t, WriteView(&buf, in.View(), in.Panel))
	out := buf.String()
	assert.Contains(t, out, "Stats | ")
	assert.Contains(t, out, "  Health: 100.00\n")
	assert.Contains(t, out, `Tags: [2 items]`)
	assert.Contains(t, out, `Inventory: {1 entries}`)
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("relationships")
	require.NoError(t, err)
	assert.Equal(t, TabRelationships, tab)
	tab, err = ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabComponents, tab)
	_, err = ParseTab("graph")
	assert.Error(t, err)
}

// Stats shares its short name with demo.Stats.
type Stats struct {
	Health int32
}

func TestSameShortNameComponents(t *testing.T) {
	in, _ := newDemo(t)
	twin := in.World.Spawn(world.Name("Twin"), Stats{Health: 1}, demo.Stats{Health: 100})
	in.State.Select(twin)
	frame(t, in)

	v := in.View()
	require.Len(t, v.Cards, 3)
	assert.Equal(t, []string{"Name", "Stats", "Stats#2"}, []string{v.Cards[0].Label, v.Cards[1].Label, v.Cards[2].Label})
	assert.True(t, strings.HasPrefix(v.Cards[2].Title, "Stats#2 | "), v.Cards[2].Title)

	local, ok := in.Panel.Widget("Stats:Health")
	require.True(t, ok)
	assert.Equal(t, "1.00", local.Text())
	assert.Equal(t, shape.TypeIDFor[Stats](), local.Locator.Component)

	other, ok := in.Panel.Widget("Stats#2:Health")
	require.True(t, ok)
	assert.Equal(t, "100.00", other.Text())
	assert.Equal(t, shape.TypeIDFor[demo.Stats](), other.Locator.Component)

	h, _ := rowByLabel(v.Cards[1], "Health")
	assert.Equal(t, widget.ID("Stats:Health"), h.Widget)
	h, _ = rowByLabel(v.Cards[2], "Health")
	assert.Equal(t, widget.ID("Stats#2:Health"), h.Widget)

	target := widget.ID("Stats#2:Health")
	rep := frame(t, in,
		widget.Event{Kind: widget.DragStart, Target: target},
		widget.Event{Kind: widget.DragMove, Target: target, Distance: 50},
	)
	require.Len(t, rep.Results, 1)
	require.NoError(t, rep.Results[0].Err)

	_ = in.World.View(func(r *world.Reader) error {
		mine, _ := world.Get[Stats](r, twin)
		theirs, _ := world.Get[demo.Stats](r, twin)
		assert.Equal(t, int32(1), mine.Health)
		assert.Equal(t, int32(105), theirs.Health)

		loc, err := ParseTarget(r, twin, "Stats#2:Health")
		require.NoError(t, err)
		assert.Equal(t, shape.TypeIDFor[demo.Stats](), loc.Component)
		loc, err = ParseTarget(r, twin, "Stats:Health")
		require.NoError(t, err)
		assert.Equal(t, shape.TypeIDFor[Stats](), loc.Component)
		loc, err = ParseTarget(r, twin, string(shape.TypeIDFor[demo.Stats]())+":Health")
		require.NoError(t, err)
		assert.Equal(t, shape.TypeIDFor[demo.Stats](), loc.Component)
		_, err = ParseTarget(r, twin, "Stats#3:Health")
		assert.ErrorIs(t, err, ErrUnknownComponent)
		return nil
	})
	assert.Len(t, in.Diagnostics(), 1)
}

func TestComponentLabels(t *testing.T) {
	assert.Equal(t,
		[]string{"Stats", "Name", "Stats#2", "Stats#3"},
		ComponentLabels([]shape.TypeID{"a/x.Stats", "a/world.Name", "b/y.Stats", "c/z.Stats"}))
	assert.Empty(t, ComponentLabels(nil))
}
