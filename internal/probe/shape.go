package probe

import "reflect"

// As shapes v into T. Besides plain type assertion it converts slices
// element by element, so a []any holding strings becomes a []string, and
// any slice becomes a []any. A nil v is never a T.
func As[T any](v any) (T, bool) {
	var zero T
	if v == nil {
		return zero, false
	}
	if t, ok := v.(T); ok {
		return t, true
	}
	target := reflect.TypeOf((*T)(nil)).Elem()
	out, ok := convert(reflect.ValueOf(v), target)
	if !ok {
		return zero, false
	}
	return out.Interface().(T), true
}

func convert(v reflect.Value, target reflect.Type) (reflect.Value, bool) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Type().AssignableTo(target) {
		out := reflect.New(target).Elem()
		out.Set(v)
		return out, true
	}
	if target.Kind() != reflect.Slice {
		return reflect.Value{}, false
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return reflect.Value{}, false
	}
	out := reflect.MakeSlice(target, v.Len(), v.Len())
	for i := 0; i < v.Len(); i++ {
		elem, ok := convert(v.Index(i), target.Elem())
		if !ok {
			return reflect.Value{}, false
		}
		out.Index(i).Set(elem)
	}
	return out, true
}
