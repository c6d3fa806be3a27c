package descriptor

import (
	"reflect"
	"slices"

	rt "github.com/danpasecinic/routebind/internal/reflect"
)

// Parameter describes one constructor or method parameter.
type Parameter struct {
	name   string
	index  int
	goType reflect.Type
	node   TypeNode
	types  []reflect.Type
}

func NewParameter(name string, index int, goType reflect.Type, node TypeNode) *Parameter {
	return &Parameter{
		name:   name,
		index:  index,
		goType: goType,
		node:   node,
		types:  node.Resolve(),
	}
}

func (p *Parameter) Name() string {
	return p.name
}

func (p *Parameter) Index() int {
	return p.index
}

// GoType is the type the argument must be assignable to at call time.
func (p *Parameter) GoType() reflect.Type {
	return p.goType
}

func (p *Parameter) Node() TypeNode {
	return p.node
}

func (p *Parameter) Types() []reflect.Type {
	return slices.Clone(p.types)
}

func (p *Parameter) TypeNames() []string {
	names := make([]string, len(p.types))
	for i, t := range p.types {
		names[i] = rt.KeyOf(t)
	}
	return names
}

func (p *Parameter) StringBackedEnums() []reflect.Type {
	var enums []reflect.Type
	for _, t := range p.types {
		if IsStringBackedEnum(t) {
			enums = append(enums, t)
		}
	}
	return enums
}

func (p *Parameter) IsStringBackedEnum() bool {
	return slices.ContainsFunc(p.types, IsStringBackedEnum)
}

func (p *Parameter) TypesMatching(capability reflect.Type) []reflect.Type {
	var matching []reflect.Type
	for _, t := range p.types {
		if rt.Satisfies(t, capability) {
			matching = append(matching, t)
		}
	}
	return matching
}

func (p *Parameter) Matches(capability reflect.Type) bool {
	return slices.ContainsFunc(p.types, func(t reflect.Type) bool {
		return rt.Satisfies(t, capability)
	})
}

// Service returns the declared type when the parameter declares exactly one
// struct, pointer to struct or interface type.
func (p *Parameter) Service() (reflect.Type, bool) {
	if len(p.types) != 1 {
		return nil, false
	}

	t := p.types[0]
	switch {
	case t.Kind() == reflect.Interface, t.Kind() == reflect.Struct:
		return t, true
	case t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct:
		return t, true
	default:
		return nil, false
	}
}
