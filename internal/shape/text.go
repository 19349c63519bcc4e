package shape

import (
	"fmt"
	"reflect"
	"strconv"
)

// Text renders a Scalar or Opaque value as best-effort display text.
// Other shapes render as their short type name in brackets.
func (v Value) Text() string {
	switch v.kind {
	case Scalar:
		return v.scalarText()
	case Opaque:
		return v.opaqueText()
	}
	return "[" + v.TypeName() + "]"
}

func (v Value) scalarText() string {
	rv := v.rv
	switch v.scalar {
	case Bool:
		return strconv.FormatBool(rv.Bool())
	case Int8, Int16, Int32, Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case Uint8, Uint16, Uint32, Uint64, Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case Complex64:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 64)
	case Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 128)
	case String:
		return strconv.Quote(rv.String())
	}
	return "?"
}

func (v Value) opaqueText() string {
	if !v.rv.IsValid() {
		return "<invalid>"
	}
	if v.rv.Kind() == reflect.Pointer && v.rv.IsNil() {
		return "nil"
	}
	if s, ok := v.stringer(); ok {
		return s
	}
	return "<" + v.TypeName() + ">"
}

func (v Value) stringer() (s string, ok bool) {
	if !v.rv.CanInterface() {
		return "", false
	}
	var st fmt.Stringer
	switch {
	case v.typ.Implements(stringerType):
		st = v.rv.Interface().(fmt.Stringer)
	case v.rv.CanAddr() && reflect.PointerTo(v.typ).Implements(stringerType):
		st = v.rv.Addr().Interface().(fmt.Stringer)
	default:
		return "", false
	}
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	return st.String(), true
}

var stringerType = reflect.TypeFor[fmt.Stringer]()
