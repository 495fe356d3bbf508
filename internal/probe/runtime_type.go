package probe

import (
	"reflect"
	"slices"
)

// RuntimeTypeName returns the concrete type name of obj: the TypeName of a
// Typed object, otherwise the name of the (dereferenced) Go type.
func RuntimeTypeName(obj any) string {
	if obj == nil {
		return ""
	}
	if t, ok := obj.(Typed); ok {
		return t.TypeName()
	}
	rt := reflect.TypeOf(obj)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt.Name()
}

// ByRuntimeType reads accessor only when obj's concrete runtime type is one
// of typeNames. It serves accessors that live on an implementation type the
// public contract does not expose, where a generic probe of the public
// surface would be meaningless.
func ByRuntimeType[T any](obj any, typeNames []string, accessor string) (Optional[T], error) {
	if !slices.Contains(typeNames, RuntimeTypeName(obj)) {
		return None[T](), nil
	}
	return Get[T](obj, accessor)
}
