// Package vmath holds the fixed-arity vector and rotation types used by
// inspectable components. They are plain named arrays so the inspector sees
// them as indexed tuple structs.
package vmath

import "math"

type (
	Vec2 [2]float32
	Vec3 [3]float32
	Vec4 [4]float32

	DVec2 [2]float64
	DVec3 [3]float64
	DVec4 [4]float64

	IVec2 [2]int32
	IVec3 [3]int32
	IVec4 [4]int32

	UVec2 [2]uint32
	UVec3 [3]uint32
	UVec4 [4]uint32

	// Quat is a rotation quaternion stored as x, y, z, w.
	Quat [4]float32
)

var (
	Vec3Zero = Vec3{0, 0, 0}
	Vec3One  = Vec3{1, 1, 1}

	QuatIdentity = Quat{0, 0, 0, 1}
)

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

func (v Vec3) Scale(s float32) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }

func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// QuatFromAxisAngle builds a unit rotation of angle radians around axis.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	l := axis.Length()
	if l == 0 {
		return QuatIdentity
	}
	s := float32(math.Sin(float64(angle)/2)) / l
	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, float32(math.Cos(float64(angle) / 2))}
}
