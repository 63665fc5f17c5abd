package reflectutil

import (
	"reflect"
)

func DerefValue(v reflect.Value) reflect.Value {
	for (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// IsStructured reports whether v (after dereferencing pointers) is a map,
// slice, array or struct, i.e. a value that needs serialization rather than
// plain formatting.
func IsStructured(v any) bool {
	if v == nil {
		return false
	}
	switch DerefValue(reflect.ValueOf(v)).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	default:
		return false
	}
}
