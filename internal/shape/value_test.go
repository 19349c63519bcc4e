package shape

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point [2]float32

type body struct {
	Pos     point
	Mass    float64
	Count   int32
	Hidden  string `inspect:"-"`
	Alias   uint8  `inspect:"tag"`
	private int
}

type mode struct{}

func (mode) VariantName() string { return "Fixed" }

type orbit struct{ Radius float32 }

func (orbit) VariantName() string { return "Orbit" }

func TestClassify(t *testing.T) {
	var nilPtr *body
	var iface any
	cases := []struct {
		name string
		in   any
		want Kind
	}{
		{"struct", body{}, Struct},
		{"pointer to struct", &body{}, Struct},
		{"named array", point{}, TupleStruct},
		{"small array", [3]int32{}, Tuple},
		{"large array", [8]int32{}, Array},
		{"slice", []int{1}, List},
		{"map", map[string]int{}, Map},
		{"set", map[string]struct{}{}, Set},
		{"scalar", float32(1), Scalar},
		{"nil pointer", nilPtr, Opaque},
		{"func", func() {}, Opaque},
		{"no exported fields", time.Time{}, Opaque},
		{"unit variant", mode{}, Enum},
		{"struct variant", orbit{}, Enum},
		{"nil", iface, Opaque},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Of(tc.in).Kind())
		})
	}
}

func TestScalarKinds(t *testing.T) {
	assert.Equal(t, Float32, Of(float32(0)).Scalar())
	assert.Equal(t, Int64, Of(int64(0)).Scalar())
	assert.Equal(t, Uint8, Of(uint8(0)).Scalar())
	assert.Equal(t, Bool, Of(true).Scalar())
	assert.True(t, Of(uint32(0)).Scalar().Numeric())
	assert.False(t, Of(int16(0)).Scalar().Numeric())
	assert.False(t, Of("x").Scalar().Numeric())
}

func TestStructFields(t *testing.T) {
	v := Of(&body{Mass: 2.5, Alias: 7})
	require.Equal(t, Struct, v.Kind())
	require.Equal(t, 4, v.NumField())

	var names []string
	for i := 0; i < v.NumField(); i++ {
		names = append(names, v.FieldName(i))
	}
	assert.Equal(t, []string{"Pos", "Mass", "Count", "tag"}, names)

	mass, ok := v.FieldByName("Mass")
	require.True(t, ok)
	f, ok := mass.Float()
	require.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = v.FieldByName("Hidden")
	assert.False(t, ok)
}

func TestInterfaceEnum(t *testing.T) {
	type holder struct {
		Shape any
		Mode  Variant
	}
	h := holder{Shape: orbit{Radius: 3}, Mode: mode{}}
	v := Of(&h)

	s, ok := v.FieldByName("Shape")
	require.True(t, ok)
	assert.Equal(t, Enum, s.Kind())
	assert.Equal(t, "Orbit", s.Variant())
	assert.Equal(t, StructVariant, s.VariantKind())
	r, ok := s.Field(0)
	require.True(t, ok)
	assert.True(t, r.IsReadOnly())

	m, _ := v.FieldByName("Mode")
	assert.Equal(t, "Fixed", m.Variant())
	assert.Equal(t, UnitVariant, m.VariantKind())
	assert.Equal(t, 0, m.NumField())

	h.Shape = int32(5)
	s, _ = Of(&h).FieldByName("Shape")
	assert.Equal(t, "int32", s.Variant())
	assert.Equal(t, TupleVariant, s.VariantKind())
	assert.Equal(t, 1, s.NumField())

	h.Shape = nil
	s, _ = Of(&h).FieldByName("Shape")
	assert.Equal(t, "nil", s.Variant())
	assert.Equal(t, UnitVariant, s.VariantKind())
}

func TestText(t *testing.T) {
	assert.Equal(t, "1.5", Of(float32(1.5)).Text())
	assert.Equal(t, "0.1", Of(0.1).Text())
	assert.Equal(t, "-4", Of(int32(-4)).Text())
	assert.Equal(t, "true", Of(true).Text())
	assert.Equal(t, `"hi"`, Of("hi").Text())
	assert.Equal(t, "nil", Of((*body)(nil)).Text())
	assert.Equal(t, "<func()>", Of(func() {}).Text())

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, ts.String(), Of(ts).Text())
}

func TestSetters(t *testing.T) {
	b := &body{}
	v := Of(b)

	mass, _ := v.FieldByName("Mass")
	require.NoError(t, mass.SetFloat(9.5))
	assert.Equal(t, 9.5, b.Mass)

	count, _ := v.FieldByName("Count")
	require.NoError(t, count.SetInt(-3))
	assert.Equal(t, int32(-3), b.Count)
	assert.ErrorIs(t, count.SetFloat(1), ErrKindMismatch)

	pos, _ := v.FieldByName("Pos")
	x, ok := pos.Field(0)
	require.True(t, ok)
	require.NoError(t, x.SetFloat(4))
	assert.Equal(t, float32(4), b.Pos[0])

	assert.ErrorIs(t, mass.ReadOnly().SetFloat(1), ErrNotSettable)

	byValue, _ := Of(*b).FieldByName("Mass")
	assert.ErrorIs(t, byValue.SetFloat(1), ErrNotSettable)
}

func TestTypeID(t *testing.T) {
	id := TypeIDFor[body]()
	assert.Equal(t, TypeID(reflect.TypeFor[body]().PkgPath()+".body"), id)
	assert.Equal(t, "body", id.Short())
	assert.Equal(t, id, TypeIDOf(reflect.TypeFor[*body]()))
	assert.Equal(t, "[]point", Of([]point{}).TypeName())
	assert.Equal(t, "Pair[Vec3]", ShortName("a/b.Pair[c/d.Vec3]"))
	assert.Equal(t, "map[string]Vec3", ShortName("map[string]vmath.Vec3"))
}
