package probe

import (
	"fmt"
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Dynamic is implemented by objects that resolve accessors themselves.
// Lookup returns false when the object has no such accessor.
type Dynamic interface {
	Lookup(accessor string) (any, bool)
}

// Typed is implemented by dynamic objects that carry a runtime type name.
type Typed interface {
	TypeName() string
}

type methodKey struct {
	typ  reflect.Type
	name string
}

// noMethod marks a memoized miss.
const noMethod = -1

const methodCacheSize = 1024

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	methods   = mustMethodCache(methodCacheSize)
)

func mustMethodCache(size int) *lru.Cache[methodKey, int] {
	c, err := lru.New[methodKey, int](size)
	if err != nil {
		panic(fmt.Sprintf("probe: method cache: %v", err))
	}
	return c
}

// Get probes obj for each accessor name in turn and returns the value of
// the first one that exists, converted to T. If none of the names exist, or
// the value cannot be shaped into T, the result is absent.
func Get[T any](obj any, accessors ...string) (Optional[T], error) {
	v, _, err := GetNullable[T](obj, accessors...)
	return v, err
}

// GetNullable is Get that also reports whether one of the accessors exists,
// so a null value can be told apart from a missing accessor. Each accessor
// is invoked at most once.
func GetNullable[T any](obj any, accessors ...string) (Optional[T], bool, error) {
	for _, name := range accessors {
		raw, ok, err := lookup(obj, name)
		if err != nil {
			return None[T](), false, fmt.Errorf("accessor %s: %w", name, err)
		}
		if !ok {
			continue
		}
		if v, ok := As[T](raw); ok {
			return Some(v), true, nil
		}
		return None[T](), true, nil
	}
	return None[T](), false, nil
}

// Has reports whether obj exposes the accessor, without converting its value.
func Has(obj any, accessor string) (bool, error) {
	_, ok, err := lookup(obj, accessor)
	return ok, err
}

func lookup(obj any, name string) (any, bool, error) {
	if obj == nil || name == "" {
		return nil, false, nil
	}
	if d, ok := obj.(Dynamic); ok {
		v, ok := d.Lookup(name)
		return v, ok, nil
	}

	rv := reflect.ValueOf(obj)
	for _, candidate := range []string{name, "Get" + name} {
		idx := methodIndex(rv.Type(), candidate)
		if idx == noMethod {
			continue
		}
		return invoke(rv.Method(idx))
	}
	return nil, false, nil
}

// methodIndex returns the index of an accessor-shaped method, memoized per
// concrete type.
func methodIndex(t reflect.Type, name string) int {
	key := methodKey{typ: t, name: name}
	if idx, ok := methods.Get(key); ok {
		return idx
	}
	idx := noMethod
	if m, ok := t.MethodByName(name); ok && isAccessor(m.Type) {
		idx = m.Index
	}
	methods.Add(key, idx)
	return idx
}

// isAccessor checks a method type including its receiver.
func isAccessor(ft reflect.Type) bool {
	if ft.NumIn() != 1 {
		return false
	}
	switch ft.NumOut() {
	case 1:
		return true
	case 2:
		second := ft.Out(1)
		return second == errorType || second.Kind() == reflect.Bool
	default:
		return false
	}
}

func invoke(m reflect.Value) (any, bool, error) {
	out := m.Call(nil)
	if len(out) == 2 {
		switch second := out[1]; {
		case second.Kind() == reflect.Bool:
			if !second.Bool() {
				return nil, false, nil
			}
		case !second.IsNil():
			return nil, false, second.Interface().(error)
		}
	}
	return valueOf(out[0]), true, nil
}

// valueOf unwraps a reflected result, turning typed nils into untyped nil.
func valueOf(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}
