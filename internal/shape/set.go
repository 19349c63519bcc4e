package shape

import "fmt"

// CanSet reports whether v can be mutated in place.
func (v Value) CanSet() bool {
	return !v.readOnly && v.rv.IsValid() && v.rv.CanSet()
}

// SetFloat stores x into a Float32 or Float64 scalar.
func (v Value) SetFloat(x float64) error {
	if err := v.checkSet(Float32, Float64); err != nil {
		return err
	}
	v.rv.SetFloat(x)
	return nil
}

// SetInt stores x into an Int32 or Int64 scalar. The caller is responsible
// for keeping x inside the target's range.
func (v Value) SetInt(x int64) error {
	if err := v.checkSet(Int32, Int64); err != nil {
		return err
	}
	v.rv.SetInt(x)
	return nil
}

// SetUint stores x into a Uint32 or Uint64 scalar. The caller is responsible
// for keeping x inside the target's range.
func (v Value) SetUint(x uint64) error {
	if err := v.checkSet(Uint32, Uint64); err != nil {
		return err
	}
	v.rv.SetUint(x)
	return nil
}

func (v Value) checkSet(kinds ...ScalarKind) error {
	if !v.CanSet() {
		return ErrNotSettable
	}
	for _, k := range kinds {
		if v.scalar == k {
			return nil
		}
	}
	return fmt.Errorf("scalar kind %s: %w", v.scalar, ErrKindMismatch)
}
