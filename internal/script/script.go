// Package script replays recorded input against an inspector. A script
// selects an object, feeds frames of widget events through the normal
// frame cycle, then checks the values left in the world.
package script

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/agentic-research/spyglass/api"
	"github.com/agentic-research/spyglass/internal/inspector"
	"github.com/agentic-research/spyglass/internal/widget"
	"github.com/agentic-research/spyglass/internal/world"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// DefaultTolerance is used by expectations that do not set one.
const DefaultTolerance = 1e-6

// Load decodes a script file.
func Load(path string) (*api.Script, error) {
	var s api.Script
	if err := hclsimple.DecodeFile(path, nil, &s); err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return &s, nil
}

// Parse decodes src as if read from filename.
func Parse(filename string, src []byte) (*api.Script, error) {
	var s api.Script
	if err := hclsimple.Decode(filename, src, nil, &s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", filename, err)
	}
	return &s, nil
}

// Outcome is the result of one expectation.
type Outcome struct {
	Target string
	Want   float64
	Got    float64
	Err    error
}

// OK reports whether the expectation held.
func (o Outcome) OK() bool { return o.Err == nil }

// Report collects everything a replay did.
type Report struct {
	Frames   []inspector.FrameReport
	Outcomes []Outcome
}

// Failed reports whether any write-back or expectation failed.
func (r Report) Failed() bool {
	for _, f := range r.Frames {
		for _, res := range f.Results {
			if res.Err != nil {
				return true
			}
		}
	}
	for _, o := range r.Outcomes {
		if !o.OK() {
			return true
		}
	}
	return false
}

// Events converts a frame's events. Times are offsets from base.
func Events(f api.Frame, base time.Time) ([]widget.Event, error) {
	out := make([]widget.Event, 0, len(f.Events))
	for i, e := range f.Events {
		kind, ok := widget.ParseEventKind(e.Kind)
		if !ok {
			return nil, fmt.Errorf("event %d: unknown kind %q", i, e.Kind)
		}
		ev := widget.Event{
			Kind:     kind,
			Target:   widget.ID(e.Target),
			At:       base.Add(time.Duration(e.AtMs) * time.Millisecond),
			Distance: e.Distance,
			Text:     e.Text,
			Released: e.Released,
		}
		if kind == widget.KeyInput {
			ev.Key = widget.ParseKey(e.Key)
			if ev.Key == widget.KeyOther && e.Key != "" {
				return nil, fmt.Errorf("event %d: unknown key %q", i, e.Key)
			}
			if ev.Key == widget.KeyOther && e.Text != "" {
				ev.Key = widget.KeyCharacter
			}
		}
		out = append(out, ev)
	}
	return out, nil
}

// Run replays s against in. The selection, if any, is applied and built
// in a frame of its own before the scripted frames run.
func Run(ctx context.Context, in *inspector.Inspector, s *api.Script, base time.Time) (Report, error) {
	var rep Report
	if s.Select != "" {
		var id world.ObjectID
		if err := in.World.View(func(r *world.Reader) error {
			var err error
			id, err = inspector.FindObject(r, s.Select)
			return err
		}); err != nil {
			return rep, fmt.Errorf("select: %w", err)
		}
		in.State.Select(id)
	}
	tab, err := inspector.ParseTab(s.Tab)
	if err != nil {
		return rep, err
	}
	in.State.Tab = tab

	fr, err := in.Frame(ctx, nil)
	if err != nil {
		return rep, err
	}
	rep.Frames = append(rep.Frames, fr)

	for i, f := range s.Frames {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		events, err := Events(f, base)
		if err != nil {
			return rep, fmt.Errorf("frame %d: %w", i, err)
		}
		fr, err := in.Frame(ctx, events)
		if err != nil {
			return rep, fmt.Errorf("frame %d: %w", i, err)
		}
		rep.Frames = append(rep.Frames, fr)
	}

	if len(s.Expects) == 0 {
		return rep, nil
	}
	if in.State.Selected == nil {
		return rep, fmt.Errorf("expectations need a selected object")
	}
	id := *in.State.Selected
	err = in.World.View(func(r *world.Reader) error {
		for _, e := range s.Expects {
			rep.Outcomes = append(rep.Outcomes, check(r, id, e))
		}
		return nil
	})
	return rep, err
}

func check(r *world.Reader, id world.ObjectID, e api.Expect) Outcome {
	o := Outcome{Target: e.Target, Want: e.Value}
	loc, err := inspector.ParseTarget(r, id, e.Target)
	if err != nil {
		o.Err = err
		return o
	}
	got, err := inspector.ReadValue(r, loc)
	if err != nil {
		o.Err = err
		return o
	}
	o.Got = got
	tol := e.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if math.Abs(got-e.Value) > tol {
		o.Err = fmt.Errorf("%s: got %g, want %g", e.Target, got, e.Value)
	}
	return o
}
