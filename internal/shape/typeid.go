package shape

import (
	"reflect"
	"strings"
)

// TypeID is a stable identifier for a Go type: the import path and name for
// named types, the type literal otherwise.
type TypeID string

// TypeIDOf returns the identifier of t, ignoring any pointer indirection.
func TypeIDOf(t reflect.Type) TypeID {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return TypeID(t.PkgPath() + "." + t.Name())
	}
	return TypeID(t.String())
}

// TypeIDFor returns the identifier of the type parameter.
func TypeIDFor[T any]() TypeID {
	return TypeIDOf(reflect.TypeFor[T]())
}

// Short returns the short name of the identified type.
func (id TypeID) Short() string {
	return ShortName(string(id))
}

// ShortName strips package qualifiers from every identifier in a type
// string, including generic arguments: "a/b.Pair[c/d.Vec3]" becomes
// "Pair[Vec3]".
func ShortName(full string) string {
	var b strings.Builder
	b.Grow(len(full))
	start := 0
	flush := func(end int) {
		seg := full[start:end]
		if i := strings.LastIndexByte(seg, '.'); i >= 0 {
			seg = seg[i+1:]
		}
		b.WriteString(seg)
	}
	for i := 0; i < len(full); i++ {
		switch full[i] {
		case '[', ']', ',', '*', ' ', '(', ')', '{', '}', ';':
			flush(i)
			b.WriteByte(full[i])
			start = i + 1
		}
	}
	flush(len(full))
	return b.String()
}

func shortTypeName(t reflect.Type) string {
	if t == nil {
		return "?"
	}
	return ShortName(t.String())
}
