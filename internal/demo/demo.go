// Package demo builds a small scene to inspect: a parent sprite with two
// children, a standalone sprite, an unnamed sprite and a camera.
package demo

import (
	"github.com/agentic-research/spyglass/internal/names"
	"github.com/agentic-research/spyglass/internal/vmath"
	"github.com/agentic-research/spyglass/internal/world"
)

// Transform places an object.
type Transform struct {
	Translation vmath.Vec3
	Rotation    vmath.Quat
	Scale       vmath.Vec3
}

// FromXYZ returns an identity-rotation, unit-scale transform at x, y, z.
func FromXYZ(x, y, z float32) Transform {
	return Transform{Translation: vmath.Vec3{x, y, z}, Rotation: vmath.QuatIdentity, Scale: vmath.Vec3One}
}

// Color is linear RGBA.
type Color [4]float32

// Anchor is the sprite pivot.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorBottomLeft
	AnchorTopRight
)

func (a Anchor) VariantName() string {
	switch a {
	case AnchorBottomLeft:
		return "BottomLeft"
	case AnchorTopRight:
		return "TopRight"
	}
	return "Center"
}

// Sprite draws a textured or flat-colored quad.
type Sprite struct {
	Image      string
	Color      Color
	CustomSize *vmath.Vec2
	FlipX      bool
	Anchor     Anchor
}

// Visibility controls drawing.
type Visibility uint8

const (
	Inherited Visibility = iota
	Visible
	Hidden
)

func (v Visibility) VariantName() string {
	switch v {
	case Visible:
		return "Visible"
	case Hidden:
		return "Hidden"
	}
	return "Inherited"
}

// Projection is a camera projection variant.
type Projection interface {
	VariantName() string
}

// Orthographic is the 2D projection.
type Orthographic struct {
	Scale float32
	Near  float32
	Far   float32
}

func (Orthographic) VariantName() string { return "Orthographic" }

// Camera renders the scene.
type Camera struct {
	Order      int32
	Active     bool
	Projection Projection
	Clear      Color
}

// Spin rotates an object every tick.
type Spin struct {
	Speed float64
	Axis  vmath.Vec3
}

// Stats is gameplay state with every editable integer width.
type Stats struct {
	Level     uint32
	Health    int32
	Score     int64
	Gold      uint64
	Tags      []string
	Inventory map[string]int
}

// Scene holds the IDs of the demo objects.
type Scene struct {
	Camera world.ObjectID
	Parent world.ObjectID
	Red    world.ObjectID
	Blue   world.ObjectID
	Green  world.ObjectID
	Yellow world.ObjectID
	Window world.ObjectID
}

func size(w, h float32) *vmath.Vec2 { return &vmath.Vec2{w, h} }

// Build spawns the scene into w.
func Build(w *world.World) Scene {
	var s Scene
	_ = w.Update(func(m *world.Mutator) error {
		s.Camera = m.Spawn(
			world.Name("Camera"),
			Camera{Order: 0, Active: true, Projection: Orthographic{Scale: 1, Near: -1000, Far: 1000}, Clear: Color{0.1, 0.1, 0.1, 1}},
			Transform{Rotation: vmath.QuatIdentity, Scale: vmath.Vec3One},
		)
		s.Parent = m.Spawn(
			world.Name("Parent Ducky"),
			Sprite{Image: "ducky.png", Color: Color{1, 1, 1, 1}},
			FromXYZ(0, 0, 0),
			Visible,
		)
		s.Red = m.Spawn(
			world.Name("Child Red"),
			Sprite{Color: Color{1, 0, 0, 1}, CustomSize: size(30, 30)},
			FromXYZ(50, 0, 0),
			Spin{Speed: 1.5, Axis: vmath.Vec3{0, 0, 1}},
		)
		s.Blue = m.Spawn(
			world.Name("Child Blue"),
			Sprite{Color: Color{0, 0, 1, 1}, CustomSize: size(30, 30), Anchor: AnchorBottomLeft},
			FromXYZ(-50, 0, 0),
		)
		s.Green = m.Spawn(
			world.Name("Standalone Green"),
			Sprite{Color: Color{0, 1, 0, 1}, CustomSize: size(50, 50)},
			FromXYZ(-150, 0, 0),
			Stats{Level: 3, Health: 100, Score: 1200, Gold: 42, Tags: []string{"npc", "merchant"}, Inventory: map[string]int{"apple": 2}},
		)
		s.Yellow = m.Spawn(
			Sprite{Color: Color{1, 1, 0, 1}, CustomSize: size(40, 40)},
			FromXYZ(150, 0, 0),
			Hidden,
		)
		s.Window = m.Spawn(world.Name("Inspector Window"), world.Internal{})
		_ = m.SetParent(s.Red, s.Parent)
		_ = m.SetParent(s.Blue, s.Parent)
		return nil
	})
	return s
}

// RegisterNames adds labels for the demo tuple types.
func RegisterNames(reg *names.Registry) {
	names.RegisterFor[Color](reg, "r", "g", "b", "a")
}
