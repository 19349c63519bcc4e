package widget

import (
	"log"

	"github.com/agentic-research/spyglass/internal/writeback"
)

// Panel owns the widgets of one view, the exclusive input focus, and the
// queue their changes are pushed to.
type Panel struct {
	Queue  *writeback.Queue
	Logger *log.Logger

	widgets map[ID]*DragValue
	order   []ID
	focus   ID
}

func NewPanel(q *writeback.Queue) *Panel {
	return &Panel{Queue: q, widgets: make(map[ID]*DragValue)}
}

// Add registers d. A widget whose ID is already taken is refused, logged,
// and reported false; the first registration stays bound.
func (p *Panel) Add(d *DragValue) bool {
	if p.widgets == nil {
		p.widgets = make(map[ID]*DragValue)
	}
	if prev, ok := p.widgets[d.ID]; ok {
		p.logf("widget: duplicate id %q for %s, already bound to %s", d.ID, d.Locator, prev.Locator)
		return false
	}
	p.order = append(p.order, d.ID)
	p.widgets[d.ID] = d
	return true
}

// Widget returns the widget registered under id.
func (p *Panel) Widget(id ID) (*DragValue, bool) {
	d, ok := p.widgets[id]
	return d, ok
}

// Widgets returns every widget in registration order.
func (p *Panel) Widgets() []*DragValue {
	out := make([]*DragValue, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.widgets[id])
	}
	return out
}

// Len reports the number of widgets.
func (p *Panel) Len() int { return len(p.order) }

// Focus returns the focused widget, or "" when none is.
func (p *Panel) Focus() ID { return p.focus }

// Reset discards every widget with its state. Edits in progress are
// abandoned without touching the store.
func (p *Panel) Reset() {
	p.widgets = make(map[ID]*DragValue)
	p.order = nil
	p.focus = ""
}

func (p *Panel) setFocus(id ID) {
	if p.focus != "" && p.focus != id {
		if prev, ok := p.widgets[p.focus]; ok {
			prev.Cancel()
		}
	}
	p.focus = id
}

// Dispatch routes ev to its widget and queues any resulting change. It
// reports whether a change was queued.
func (p *Panel) Dispatch(ev Event) bool {
	if ev.Kind == KeyInput {
		return p.key(ev)
	}
	d, ok := p.widgets[ev.Target]
	if !ok {
		p.logf("widget: %s event for unknown widget %q", ev.Kind, ev.Target)
		return false
	}
	switch ev.Kind {
	case Click:
		if d.Click(ev.At) {
			p.setFocus(d.ID)
		}
	case DragStart:
		d.BeginDrag()
	case DragMove:
		if v, ok := d.Drag(ev.Distance); ok {
			p.emit(d, v)
			return true
		}
	case DragEnd:
		d.EndDrag()
	}
	return false
}

func (p *Panel) key(ev Event) bool {
	if ev.Released || p.focus == "" {
		return false
	}
	d, ok := p.widgets[p.focus]
	if !ok {
		p.focus = ""
		return false
	}
	res := d.Key(ev.Key, ev.Text)
	if res.Exit {
		p.focus = ""
	}
	if res.Emit {
		p.emit(d, res.Value)
	}
	return res.Emit
}

func (p *Panel) emit(d *DragValue, v float64) {
	if p.Queue == nil {
		return
	}
	p.Queue.Push(writeback.Change{Widget: string(d.ID), Locator: d.Locator, Value: v})
}

func (p *Panel) logf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}
