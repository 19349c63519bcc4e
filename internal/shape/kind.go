// Package shape exposes arbitrary Go values as a closed set of structural
// shapes (scalar, struct, tuple struct, tuple, enum, collections, opaque) so
// that traversal and write-back can work over any type without per-type code.
package shape

// Kind tags the structural shape of a Value.
type Kind int

const (
	Opaque Kind = iota
	Scalar
	Struct
	TupleStruct
	Tuple
	Enum
	List
	Array
	Map
	Set
)

func (k Kind) String() string {
	switch k {
	case Opaque:
		return "opaque"
	case Scalar:
		return "scalar"
	case Struct:
		return "struct"
	case TupleStruct:
		return "tuple_struct"
	case Tuple:
		return "tuple"
	case Enum:
		return "enum"
	case List:
		return "list"
	case Array:
		return "array"
	case Map:
		return "map"
	case Set:
		return "set"
	default:
		return "unknown"
	}
}

// HasFields reports whether Index steps can address children of this kind.
func (k Kind) HasFields() bool {
	return k == Struct || k == TupleStruct || k == Tuple
}

// ScalarKind identifies the concrete kind of a Scalar value.
type ScalarKind int

const (
	NotScalar ScalarKind = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Uintptr
	Float32
	Float64
	Complex64
	Complex128
	String
)

var scalarNames = [...]string{
	NotScalar:  "none",
	Bool:       "bool",
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Uintptr:    "uintptr",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
	String:     "string",
}

func (s ScalarKind) String() string {
	if s < 0 || int(s) >= len(scalarNames) {
		return "unknown"
	}
	return scalarNames[s]
}

// Numeric reports whether s is one of the six kinds that can be edited:
// 32/64-bit signed and unsigned integers and 32/64-bit floats.
func (s ScalarKind) Numeric() bool {
	switch s {
	case Float32, Float64, Int32, Int64, Uint32, Uint64:
		return true
	}
	return false
}

// VariantKind is the payload layout of an Enum value.
type VariantKind int

const (
	UnitVariant VariantKind = iota
	TupleVariant
	StructVariant
)

func (v VariantKind) String() string {
	switch v {
	case UnitVariant:
		return "unit"
	case TupleVariant:
		return "tuple"
	case StructVariant:
		return "struct"
	default:
		return "unknown"
	}
}
