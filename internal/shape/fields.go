package shape

import (
	"reflect"
	"strings"
	"sync"
)

// TagKey is the struct tag consulted for field labels. `inspect:"-"` hides
// a field, `inspect:"label"` renames it.
const TagKey = "inspect"

type fieldInfo struct {
	index int
	name  string
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

// fieldsOf returns the visible fields of struct type t in declaration order.
func fieldsOf(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}
	var fs []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup(TagKey); ok {
			tag, _, _ = strings.Cut(tag, ",")
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		fs = append(fs, fieldInfo{index: i, name: name})
	}
	actual, _ := fieldCache.LoadOrStore(t, fs)
	return actual.([]fieldInfo)
}
