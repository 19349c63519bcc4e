package writeback

import (
	"math"

	"github.com/agentic-research/spyglass/internal/shape"
)

// coercer stores a float64 into one scalar kind.
type coercer struct {
	kind shape.ScalarKind
	set  func(v shape.Value, x float64) error
}

// coercers is tried in order; the first whose kind matches the leaf wins.
var coercers = []coercer{
	{shape.Float32, func(v shape.Value, x float64) error { return v.SetFloat(float64(float32(x))) }},
	{shape.Float64, func(v shape.Value, x float64) error { return v.SetFloat(x) }},
	{shape.Int32, func(v shape.Value, x float64) error { return v.SetInt(saturateInt(x, math.MinInt32, math.MaxInt32)) }},
	{shape.Int64, func(v shape.Value, x float64) error { return v.SetInt(saturateInt(x, math.MinInt64, math.MaxInt64)) }},
	{shape.Uint32, func(v shape.Value, x float64) error { return v.SetUint(saturateUint(x, math.MaxUint32)) }},
	{shape.Uint64, func(v shape.Value, x float64) error { return v.SetUint(saturateUint(x, math.MaxUint64)) }},
}

func coercerFor(v shape.Value) (coercer, bool) {
	if v.Kind() != shape.Scalar {
		return coercer{}, false
	}
	for _, c := range coercers {
		if c.kind == v.Scalar() {
			return c, true
		}
	}
	return coercer{}, false
}

// saturateInt truncates x toward zero and clamps it to [lo, hi]. NaN is 0.
func saturateInt(x float64, lo, hi int64) int64 {
	if math.IsNaN(x) {
		return 0
	}
	t := math.Trunc(x)
	switch {
	case t <= float64(lo):
		return lo
	case t >= float64(hi):
		return hi
	}
	return int64(t)
}

// saturateUint clamps negatives and NaN to 0, truncates, and clamps to hi.
func saturateUint(x float64, hi uint64) uint64 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	t := math.Trunc(x)
	if t >= float64(hi) {
		return hi
	}
	return uint64(t)
}
