package routebind

import (
	"reflect"

	"github.com/danpasecinic/routebind/internal/descriptor"
)

// Enum is implemented by enumeration types. A string kind makes the enum
// string-backed; only those are coerced from route values.
type Enum = descriptor.Enum

type TypeNode = descriptor.TypeNode

func Named(t reflect.Type) TypeNode {
	return descriptor.Named(t)
}

func Union(types ...reflect.Type) TypeNode {
	return descriptor.Union(types...)
}

func Intersection(types ...reflect.Type) TypeNode {
	return descriptor.Intersection(types...)
}

func Untyped() TypeNode {
	return descriptor.Untyped()
}

// EnumTryFrom returns the case of E whose backing value is raw.
func EnumTryFrom[E Enum](raw string) (E, bool) {
	var zero E
	v, ok := descriptor.EnumTryFrom(reflect.TypeFor[E](), raw)
	if !ok {
		return zero, false
	}
	return v.Interface().(E), true
}
