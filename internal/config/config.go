// Package config loads spyglass.hcl configuration files.
package config

import (
	"fmt"
	"time"

	"github.com/agentic-research/spyglass/api"
	"github.com/agentic-research/spyglass/internal/extract"
	"github.com/agentic-research/spyglass/internal/names"
	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/agentic-research/spyglass/internal/widget"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// DefaultJournalPath is used when the journal is enabled without a path.
const DefaultJournalPath = "spyglass-journal.db"

// Config is the resolved configuration.
type Config struct {
	Widget         widget.Options
	MaxDepth       int
	JournalPath    string
	JournalEnabled bool
	Names          map[shape.TypeID][]string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Widget:         widget.DefaultOptions(),
		MaxDepth:       extract.DefaultMaxDepth,
		JournalPath:    DefaultJournalPath,
		JournalEnabled: true,
		Names:          map[shape.TypeID][]string{},
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	var raw api.Config
	if err := hclsimple.DecodeFile(path, nil, &raw); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.merge(raw); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes src as if read from filename. The filename extension
// selects native HCL or JSON syntax.
func Parse(filename string, src []byte) (Config, error) {
	cfg := Default()
	var raw api.Config
	if err := hclsimple.Decode(filename, src, nil, &raw); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", filename, err)
	}
	if err := cfg.merge(raw); err != nil {
		return cfg, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

func (c *Config) merge(raw api.Config) error {
	if w := raw.Widget; w != nil {
		if w.Speed != nil {
			c.Widget.Speed = *w.Speed
		}
		if w.Precision != nil {
			if *w.Precision < 0 {
				return fmt.Errorf("widget precision %d is negative", *w.Precision)
			}
			c.Widget.Precision = *w.Precision
		}
		if w.DoubleClickMs != nil {
			if *w.DoubleClickMs <= 0 {
				return fmt.Errorf("widget double_click_ms %d must be positive", *w.DoubleClickMs)
			}
			c.Widget.DoubleClick = time.Duration(*w.DoubleClickMs) * time.Millisecond
		}
		c.Widget.Min, c.Widget.Max = w.Min, w.Max
		if w.Min != nil && w.Max != nil && *w.Min > *w.Max {
			return fmt.Errorf("widget min %g exceeds max %g", *w.Min, *w.Max)
		}
	}
	if t := raw.Traversal; t != nil && t.MaxDepth != nil {
		if *t.MaxDepth <= 0 {
			return fmt.Errorf("traversal max_depth %d must be positive", *t.MaxDepth)
		}
		c.MaxDepth = *t.MaxDepth
	}
	if j := raw.Journal; j != nil {
		if j.Path != "" {
			c.JournalPath = j.Path
		}
		if j.Enabled != nil {
			c.JournalEnabled = *j.Enabled
		}
	}
	for _, ns := range raw.Names {
		c.Names[shape.TypeID(ns.Type)] = ns.Labels
	}
	return nil
}

// Registry returns the default label registry extended with Names.
func (c Config) Registry() *names.Registry {
	reg := names.New()
	for id, labels := range c.Names {
		reg.Register(id, labels...)
	}
	return reg
}
