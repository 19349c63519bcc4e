package widget

import "time"

// EventKind tags an input event.
type EventKind int

const (
	Click EventKind = iota + 1
	DragStart
	DragMove
	DragEnd
	KeyInput
)

func (k EventKind) String() string {
	switch k {
	case Click:
		return "click"
	case DragStart:
		return "drag_start"
	case DragMove:
		return "drag"
	case DragEnd:
		return "drag_end"
	case KeyInput:
		return "key"
	}
	return "unknown"
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, bool) {
	for k := Click; k <= KeyInput; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Key is a logical key.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyCharacter
)

// ParseKey maps "enter", "escape", "backspace" and "char" to a Key.
func ParseKey(s string) Key {
	switch s {
	case "enter":
		return KeyEnter
	case "escape", "esc":
		return KeyEscape
	case "backspace":
		return KeyBackspace
	case "char", "character":
		return KeyCharacter
	}
	return KeyOther
}

// Event is one pointer or keyboard event aimed at a widget. Key events are
// delivered to the focused widget whatever their Target.
type Event struct {
	Kind   EventKind
	Target ID
	At     time.Time

	// Distance is the horizontal pixel distance since drag start.
	Distance float64

	Key      Key
	Text     string
	Released bool
}
