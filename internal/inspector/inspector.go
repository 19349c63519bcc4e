// Package inspector runs the inspection cycle over a world: it routes input
// to edit widgets, refreshes cached listings, writes queued edits back in an
// exclusive phase, and rebuilds the detail view for the selected object.
package inspector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/agentic-research/spyglass/internal/extract"
	"github.com/agentic-research/spyglass/internal/names"
	"github.com/agentic-research/spyglass/internal/widget"
	"github.com/agentic-research/spyglass/internal/world"
	"github.com/agentic-research/spyglass/internal/writeback"
)

// Recorder receives every non-empty batch of write-back results after the
// write phase has released the world.
type Recorder func(ctx context.Context, results []writeback.Result)

// Options configure an Inspector. Zero values select defaults.
type Options struct {
	Names    *names.Registry
	MaxDepth int
	Widget   widget.Options
	Logger   *log.Logger
}

// Inspector owns the per-session state of one inspected world.
type Inspector struct {
	World     *world.World
	Metadata  *world.Metadata
	Extractor *extract.Extractor
	Queue     *writeback.Queue
	Engine    *writeback.Engine
	Panel     *widget.Panel
	State     State

	// FrameObserver, when set, is told how long each frame took.
	FrameObserver func(ctx context.Context, d time.Duration)

	logger    *log.Logger
	widgetOpt widget.Options
	recorders []Recorder
	entities  []Entry
	view      View
	frames    uint64
}

// New returns an inspector over w.
func New(w *world.World, opts Options) *Inspector {
	if opts.Names == nil {
		opts.Names = names.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Widget.Speed == 0 && opts.Widget.Precision == 0 {
		opts.Widget = widget.DefaultOptions()
	}
	ext := extract.New(opts.Names)
	if opts.MaxDepth > 0 {
		ext.MaxDepth = opts.MaxDepth
	}
	q := &writeback.Queue{}
	eng := writeback.NewEngine()
	eng.Logger = opts.Logger
	panel := widget.NewPanel(q)
	panel.Logger = opts.Logger
	return &Inspector{
		World:     w,
		Metadata:  world.NewMetadata(),
		Extractor: ext,
		Queue:     q,
		Engine:    eng,
		Panel:     panel,
		logger:    opts.Logger,
		widgetOpt: opts.Widget,
	}
}

// AddRecorder registers fn for write-back results.
func (in *Inspector) AddRecorder(fn Recorder) { in.recorders = append(in.recorders, fn) }

// FrameReport describes what one frame did.
type FrameReport struct {
	Frame    uint64
	NewTypes int
	Results  []writeback.Result
	Rebuilt  bool
}

// Frame runs one cycle: input, refresh, write-back, rebuild. Phases never
// overlap; only the write-back phase mutates the world.
func (in *Inspector) Frame(ctx context.Context, events []widget.Event) (FrameReport, error) {
	start := time.Now()
	in.frames++
	rep := FrameReport{Frame: in.frames}

	for _, ev := range events {
		in.Panel.Dispatch(ev)
	}

	if err := in.World.View(func(r *world.Reader) error {
		rep.NewTypes = in.Metadata.Refresh(r)
		in.entities = ListEntities(r, in.Metadata, in.State.Filter, in.State.Required)
		return nil
	}); err != nil {
		return rep, fmt.Errorf("refresh phase: %w", err)
	}

	if in.Queue.Len() > 0 {
		if err := in.World.Update(func(m *world.Mutator) error {
			rep.Results = in.Engine.ApplyPending(m, in.Queue)
			return nil
		}); err != nil {
			return rep, fmt.Errorf("write-back phase: %w", err)
		}
		for _, rec := range in.recorders {
			rec(ctx, rep.Results)
		}
	}

	if err := in.World.View(func(r *world.Reader) error {
		stale := in.State.Selected != nil && !r.Contains(*in.State.Selected) && in.view.Message != MsgStale
		if !in.State.changed() && !stale {
			return nil
		}
		b := builder{r: r, md: in.Metadata, ext: in.Extractor, opts: in.widgetOpt}
		view, widgets := b.build(&in.State)
		in.view = view
		in.Panel.Reset()
		for _, d := range widgets {
			in.Panel.Add(d)
		}
		rep.Rebuilt = true
		return nil
	}); err != nil {
		return rep, fmt.Errorf("rebuild phase: %w", err)
	}

	if in.FrameObserver != nil {
		in.FrameObserver(ctx, time.Since(start))
	}
	return rep, nil
}

// View returns the detail view built by the last rebuild.
func (in *Inspector) View() View { return in.view }

// Entities returns the object list from the last refresh.
func (in *Inspector) Entities() []Entry { return in.entities }

// Diagnostics returns the last write status per locator.
func (in *Inspector) Diagnostics() []writeback.Status { return in.Engine.Diagnostics.Snapshot() }
