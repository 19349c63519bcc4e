// Package api defines the HCL file formats read by spyglass: the
// configuration file and input replay scripts.
package api

// Config is the root of a spyglass.hcl configuration file.
type Config struct {
	Widget    *WidgetConfig    `hcl:"widget,block"`
	Traversal *TraversalConfig `hcl:"traversal,block"`
	Journal   *JournalConfig   `hcl:"journal,block"`
	// Names adds positional labels for tuple types, keyed by type ID.
	Names []NameSet `hcl:"names,block"`
}

// WidgetConfig tunes the edit widgets.
type WidgetConfig struct {
	Speed         *float64 `hcl:"speed,optional"`
	Precision     *int     `hcl:"precision,optional"`
	DoubleClickMs *int     `hcl:"double_click_ms,optional"`
	Min           *float64 `hcl:"min,optional"`
	Max           *float64 `hcl:"max,optional"`
}

// TraversalConfig bounds field extraction.
type TraversalConfig struct {
	MaxDepth *int `hcl:"max_depth,optional"`
}

// JournalConfig controls the edit audit journal.
type JournalConfig struct {
	Path    string `hcl:"path,optional"`
	Enabled *bool  `hcl:"enabled,optional"`
}

// NameSet labels the positions of one tuple type.
type NameSet struct {
	Type   string   `hcl:"type,label"`
	Labels []string `hcl:"labels"`
}

// Script is an input replay file: an optional selection followed by frames
// of events, then expectations checked against the world.
type Script struct {
	Select  string   `hcl:"select,optional"`
	Tab     string   `hcl:"tab,optional"`
	Frames  []Frame  `hcl:"frame,block"`
	Expects []Expect `hcl:"expect,block"`
}

// Frame is one update cycle's worth of input.
type Frame struct {
	Events []Event `hcl:"event,block"`
}

// Event is one input event. Kind is click, drag_start, drag, drag_end or key.
type Event struct {
	Kind     string  `hcl:"kind,label"`
	Target   string  `hcl:"target,optional"`
	AtMs     int64   `hcl:"at_ms,optional"`
	Distance float64 `hcl:"distance,optional"`
	Key      string  `hcl:"key,optional"`
	Text     string  `hcl:"text,optional"`
	Released bool    `hcl:"released,optional"`
}

// Expect asserts the value at a widget target ("Transform:Translation[1]")
// once all frames have run.
type Expect struct {
	Target    string  `hcl:"target,label"`
	Value     float64 `hcl:"value"`
	Tolerance float64 `hcl:"tolerance,optional"`
}
