package descriptor

import (
	"reflect"

	rt "github.com/danpasecinic/routebind/internal/reflect"
)

type TypeKind int

const (
	KindUntyped TypeKind = iota
	KindNamed
	KindUnion
	KindIntersection
)

func (k TypeKind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	default:
		return "untyped"
	}
}

// TypeNode is the declared type of a parameter. Go signatures only ever
// produce KindNamed; unions and intersections are declared explicitly.
type TypeNode struct {
	Kind  TypeKind
	Types []reflect.Type
}

func Named(t reflect.Type) TypeNode {
	if t == nil {
		return Untyped()
	}
	return TypeNode{Kind: KindNamed, Types: []reflect.Type{t}}
}

func Union(types ...reflect.Type) TypeNode {
	return TypeNode{Kind: KindUnion, Types: types}
}

func Intersection(types ...reflect.Type) TypeNode {
	return TypeNode{Kind: KindIntersection, Types: types}
}

func Untyped() TypeNode {
	return TypeNode{Kind: KindUntyped}
}

// Resolve flattens the node into its named member types in declaration
// order. Members without a name are dropped; an untyped node yields nothing.
func (n TypeNode) Resolve() []reflect.Type {
	if n.Kind == KindUntyped {
		return nil
	}

	var types []reflect.Type
	for _, t := range n.Types {
		if rt.IsNamed(t) {
			types = append(types, t)
		}
	}
	return types
}
