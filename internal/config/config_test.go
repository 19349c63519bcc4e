package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/agentic-research/spyglass/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, widget.DefaultOptions(), cfg.Widget)
	assert.Equal(t, 32, cfg.MaxDepth)
	assert.True(t, cfg.JournalEnabled)
	assert.Equal(t, DefaultJournalPath, cfg.JournalPath)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spyglass.hcl")
	src := `
widget {
  speed           = 0.5
  precision       = 3
  double_click_ms = 250
  min             = -10
}

traversal {
  max_depth = 8
}

journal {
  path    = "edits.db"
  enabled = false
}

names "example.com/game.RGB" {
  labels = ["r", "g", "b"]
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Widget.Speed)
	assert.Equal(t, 3, cfg.Widget.Precision)
	assert.Equal(t, 250*time.Millisecond, cfg.Widget.DoubleClick)
	require.NotNil(t, cfg.Widget.Min)
	assert.Equal(t, -10.0, *cfg.Widget.Min)
	assert.Nil(t, cfg.Widget.Max)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, "edits.db", cfg.JournalPath)
	assert.False(t, cfg.JournalEnabled)

	reg := cfg.Registry()
	label, ok := reg.Lookup(shape.TypeID("example.com/game.RGB"), 2)
	assert.True(t, ok)
	assert.Equal(t, "b", label)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":          `widget {`,
		"unknown block":   `render {}`,
		"negative depth":  `traversal { max_depth = 0 }`,
		"inverted bounds": "widget {\n  min = 5\n  max = 1\n}",
		"bad precision":   `widget { precision = -1 }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("test.hcl", []byte(src))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
