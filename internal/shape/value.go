package shape

import (
	"errors"
	"reflect"
	"strconv"
)

// Variant is implemented by types that present themselves as a tagged union.
// The payload layout follows the implementing type: a struct is a struct
// variant, an array a tuple variant, anything else a unit variant.
type Variant interface {
	VariantName() string
}

var variantType = reflect.TypeFor[Variant]()

// ErrNotSettable is returned when mutating a read-only or unaddressable value.
var ErrNotSettable = errors.New("value is not settable")

// Value is a shape-tagged view over one piece of Go data.
//
// Values produced from a read phase are read-only. Values produced from a
// write phase can be mutated when the underlying data is addressable.
type Value struct {
	rv       reflect.Value
	typ      reflect.Type
	kind     Kind
	scalar   ScalarKind
	readOnly bool

	// enum only
	variant string
	vkind   VariantKind
	payload reflect.Value
}

// Of wraps a Go value. Only data reached through a pointer is settable.
func Of(v any) Value {
	return FromReflect(reflect.ValueOf(v))
}

// FromReflect classifies rv into a Value.
func FromReflect(rv reflect.Value) Value {
	return classify(rv, false)
}

// ReadOnly returns a copy of v whose descendants refuse mutation.
func (v Value) ReadOnly() Value {
	v.readOnly = true
	return v
}

// IsReadOnly reports whether v was produced for reading only.
func (v Value) IsReadOnly() bool { return v.readOnly }

func classify(rv reflect.Value, readOnly bool) Value {
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Value{rv: rv, typ: rv.Type(), kind: Opaque, readOnly: readOnly}
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Value{kind: Opaque, readOnly: readOnly}
	}

	v := Value{rv: rv, typ: rv.Type(), readOnly: readOnly}

	if rv.Kind() == reflect.Interface {
		return v.fromInterface()
	}
	if name, ok := variantName(rv); ok {
		v.kind = Enum
		v.variant = name
		v.payload = rv
		v.vkind = payloadKind(rv, true)
		return v
	}

	switch rv.Kind() {
	case reflect.Struct:
		if len(fieldsOf(v.typ)) == 0 {
			v.kind = Opaque
		} else {
			v.kind = Struct
		}
	case reflect.Array:
		switch {
		case v.typ.Name() != "":
			v.kind = TupleStruct
		case rv.Len() <= 4:
			v.kind = Tuple
		default:
			v.kind = Array
		}
	case reflect.Slice:
		v.kind = List
	case reflect.Map:
		if isEmptyStruct(v.typ.Elem()) {
			v.kind = Set
		} else {
			v.kind = Map
		}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		v.kind = Opaque
	default:
		v.kind = Scalar
		v.scalar = scalarKindOf(rv.Kind())
	}
	return v
}

func (v Value) fromInterface() Value {
	v.kind = Enum
	if v.rv.IsNil() {
		v.variant = "nil"
		v.vkind = UnitVariant
		return v
	}
	inner := v.rv.Elem()
	for inner.Kind() == reflect.Pointer && !inner.IsNil() {
		inner = inner.Elem()
	}
	v.payload = inner
	if name, ok := variantName(inner); ok {
		v.variant = name
		v.vkind = payloadKind(inner, true)
		return v
	}
	v.variant = shortTypeName(inner.Type())
	v.vkind = payloadKind(inner, false)
	return v
}

// payloadKind decides the variant layout of an enum payload. Declared
// variants without fields are units; wrapped plain values are one-field
// tuples.
func payloadKind(p reflect.Value, declared bool) VariantKind {
	switch p.Kind() {
	case reflect.Struct:
		if len(fieldsOf(p.Type())) > 0 {
			return StructVariant
		}
	case reflect.Array:
		return TupleVariant
	}
	if declared {
		return UnitVariant
	}
	return TupleVariant
}

func variantName(rv reflect.Value) (string, bool) {
	if !rv.CanInterface() {
		return "", false
	}
	t := rv.Type()
	if t.Implements(variantType) {
		return safeVariantName(rv.Interface().(Variant)), true
	}
	if rv.CanAddr() && reflect.PointerTo(t).Implements(variantType) {
		return safeVariantName(rv.Addr().Interface().(Variant)), true
	}
	return "", false
}

func safeVariantName(v Variant) (name string) {
	defer func() {
		if recover() != nil {
			name = "?"
		}
	}()
	return v.VariantName()
}

func isEmptyStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

func scalarKindOf(k reflect.Kind) ScalarKind {
	switch k {
	case reflect.Bool:
		return Bool
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Int:
		if strconv.IntSize == 64 {
			return Int64
		}
		return Int32
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Uint:
		if strconv.IntSize == 64 {
			return Uint64
		}
		return Uint32
	case reflect.Uintptr:
		return Uintptr
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Complex64:
		return Complex64
	case reflect.Complex128:
		return Complex128
	case reflect.String:
		return String
	}
	return NotScalar
}

// Kind returns the structural shape of v.
func (v Value) Kind() Kind { return v.kind }

// Scalar returns the scalar kind, or NotScalar for non-scalar shapes.
func (v Value) Scalar() ScalarKind { return v.scalar }

// Type returns the Go type of v after pointer indirection.
func (v Value) Type() reflect.Type { return v.typ }

// TypeID returns the identifier of v's type.
func (v Value) TypeID() TypeID { return TypeIDOf(v.typ) }

// TypeName returns the short name of v's type.
func (v Value) TypeName() string { return shortTypeName(v.typ) }

// NumField returns the number of addressable children of a Struct,
// TupleStruct or Tuple, or the payload fields of a tuple/struct Enum.
func (v Value) NumField() int {
	switch v.kind {
	case Struct:
		return len(fieldsOf(v.typ))
	case TupleStruct, Tuple:
		return v.rv.Len()
	case Enum:
		switch v.vkind {
		case StructVariant:
			return len(fieldsOf(v.payload.Type()))
		case TupleVariant:
			if v.payload.Kind() == reflect.Array {
				return v.payload.Len()
			}
			return 1
		}
	}
	return 0
}

// FieldName returns the label of field i for Struct values and struct
// variants, and "" for positional fields.
func (v Value) FieldName(i int) string {
	switch {
	case v.kind == Struct:
		if fs := fieldsOf(v.typ); i >= 0 && i < len(fs) {
			return fs[i].name
		}
	case v.kind == Enum && v.vkind == StructVariant:
		if fs := fieldsOf(v.payload.Type()); i >= 0 && i < len(fs) {
			return fs[i].name
		}
	}
	return ""
}

// Field returns child i. It reports false when v has no such child.
func (v Value) Field(i int) (Value, bool) {
	if i < 0 || i >= v.NumField() {
		return Value{}, false
	}
	switch v.kind {
	case Struct:
		return classify(v.rv.Field(fieldsOf(v.typ)[i].index), v.readOnly), true
	case TupleStruct, Tuple:
		return classify(v.rv.Index(i), v.readOnly), true
	case Enum:
		switch {
		case v.vkind == StructVariant:
			return classify(v.payload.Field(fieldsOf(v.payload.Type())[i].index), true), true
		case v.payload.Kind() == reflect.Array:
			return classify(v.payload.Index(i), true), true
		default:
			return classify(v.payload, true), true
		}
	}
	return Value{}, false
}

// FieldByName returns the Struct field labelled name.
func (v Value) FieldByName(name string) (Value, bool) {
	if v.kind != Struct {
		return Value{}, false
	}
	for i, f := range fieldsOf(v.typ) {
		if f.name == name {
			return v.Field(i)
		}
	}
	return Value{}, false
}

// Variant returns the active variant name of an Enum.
func (v Value) Variant() string { return v.variant }

// VariantKind returns the payload layout of an Enum.
func (v Value) VariantKind() VariantKind { return v.vkind }

// Len returns the element count of a List, Array, Map or Set.
func (v Value) Len() int {
	switch v.kind {
	case List, Array, Map, Set, TupleStruct, Tuple:
		return v.rv.Len()
	}
	return 0
}

// Float returns the value of one of the six numeric kinds as a float64.
func (v Value) Float() (float64, bool) {
	if v.kind != Scalar || !v.scalar.Numeric() {
		return 0, false
	}
	switch v.scalar {
	case Float32, Float64:
		return v.rv.Float(), true
	case Int32, Int64:
		return float64(v.rv.Int()), true
	default:
		return float64(v.rv.Uint()), true
	}
}

// Interface returns the underlying Go value when it is exported.
func (v Value) Interface() (any, bool) {
	if !v.rv.IsValid() || !v.rv.CanInterface() {
		return nil, false
	}
	return v.rv.Interface(), true
}

// ErrKindMismatch is returned when a setter does not match the scalar kind.
var ErrKindMismatch = errors.New("scalar kind mismatch")
