// Package widget turns pointer and keyboard input into numeric edits. A
// DragValue is dragged horizontally to scrub its value, or double-clicked to
// type a new one.
package widget

import (
	"strconv"
	"strings"
	"time"

	"github.com/agentic-research/spyglass/internal/locator"
)

const (
	DefaultSpeed              = 0.1
	DefaultPrecision          = 2
	DefaultDoubleClickTimeout = 300 * time.Millisecond
)

// ID identifies a widget inside a Panel.
type ID string

// Options configure a DragValue. Min and Max are optional bounds.
type Options struct {
	Speed       float64
	Precision   int
	Min         *float64
	Max         *float64
	DoubleClick time.Duration
}

// DefaultOptions returns speed 0.1, two decimals and a 300ms double-click.
func DefaultOptions() Options {
	return Options{Speed: DefaultSpeed, Precision: DefaultPrecision, DoubleClick: DefaultDoubleClickTimeout}
}

// EditState is the per-widget interaction state. It is created with the
// widget and discarded with it.
type EditState struct {
	Dragging      bool
	StartValue    float64
	Editing       bool
	Buffer        string
	LastClick     time.Time // zero when there is no pending first click
	OriginalValue float64
}

// DragValue is one editable numeric field.
type DragValue struct {
	ID      ID
	Locator locator.Locator
	Options

	State EditState
	text  string
	value float64
}

// NewDragValue returns a widget showing value.
func NewDragValue(id ID, loc locator.Locator, value float64, opts Options) *DragValue {
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = DefaultDoubleClickTimeout
	}
	if opts.Precision < 0 {
		opts.Precision = 0
	}
	d := &DragValue{ID: id, Locator: loc, Options: opts}
	d.show(value)
	return d
}

// Text is what the widget currently displays.
func (d *DragValue) Text() string { return d.text }

// Value is the last value shown or emitted. It does not change while a
// typed edit is in progress.
func (d *DragValue) Value() float64 { return d.value }

func (d *DragValue) format(v float64) string {
	return strconv.FormatFloat(v, 'f', d.Precision, 64)
}

// displayed parses the shown text, or 0 when it is not a number.
func (d *DragValue) displayed() float64 {
	v, err := strconv.ParseFloat(d.text, 64)
	if err != nil {
		return 0
	}
	return v
}

func (d *DragValue) clamp(v float64) float64 {
	if d.Min != nil && v < *d.Min {
		v = *d.Min
	}
	if d.Max != nil && v > *d.Max {
		v = *d.Max
	}
	return v
}

// show updates the display for an emitted value.
func (d *DragValue) show(v float64) {
	d.value = v
	d.text = d.format(v)
}

// Click records a click at now and reports whether it completed a double
// click that entered editing.
func (d *DragValue) Click(now time.Time) bool {
	double := !d.State.LastClick.IsZero() && now.Sub(d.State.LastClick) < d.DoubleClick
	if !double || d.State.Editing {
		d.State.LastClick = now
		return false
	}
	cur := d.displayed()
	d.State.Editing = true
	d.State.OriginalValue = cur
	d.State.Buffer = d.format(cur)
	d.State.LastClick = time.Time{}
	d.text = d.State.Buffer + "|"
	return true
}

// BeginDrag snapshots the displayed value. It is ignored while editing.
func (d *DragValue) BeginDrag() {
	if d.State.Editing {
		return
	}
	d.State.Dragging = true
	d.State.StartValue = d.displayed()
}

// Drag returns the value for a horizontal distance from drag start.
func (d *DragValue) Drag(distance float64) (float64, bool) {
	if !d.State.Dragging {
		return 0, false
	}
	v := d.clamp(d.State.StartValue + distance*d.Speed)
	d.show(v)
	return v, true
}

// EndDrag leaves dragging without changing the value.
func (d *DragValue) EndDrag() { d.State.Dragging = false }

// KeyResult reports what a key press did.
type KeyResult struct {
	Value float64
	Emit  bool // Value should be written back
	Exit  bool // editing ended and focus must be released
}

// Key handles a key press while editing. Presses outside editing do
// nothing.
func (d *DragValue) Key(k Key, text string) KeyResult {
	if !d.State.Editing {
		return KeyResult{}
	}
	switch k {
	case KeyEnter:
		v, err := strconv.ParseFloat(d.State.Buffer, 64)
		if err != nil {
			d.Cancel()
			return KeyResult{Exit: true}
		}
		v = d.clamp(v)
		d.exit()
		d.show(v)
		return KeyResult{Value: v, Emit: true, Exit: true}
	case KeyEscape:
		d.Cancel()
		return KeyResult{Exit: true}
	case KeyBackspace:
		if n := len(d.State.Buffer); n > 0 {
			d.State.Buffer = d.State.Buffer[:n-1]
		}
		d.text = d.State.Buffer + "|"
	case KeyCharacter:
		if text != "" && validInput(text) {
			d.State.Buffer += text
			d.text = d.State.Buffer + "|"
		}
	}
	return KeyResult{}
}

// Cancel abandons an edit and restores the value shown before it.
func (d *DragValue) Cancel() {
	if !d.State.Editing {
		return
	}
	d.show(d.State.OriginalValue)
	d.exit()
}

func (d *DragValue) exit() {
	d.State.Editing = false
	d.State.Buffer = ""
}

func validInput(s string) bool {
	return strings.Trim(s, "0123456789.-+eE") == ""
}
