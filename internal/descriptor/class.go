package descriptor

import (
	"fmt"
	"reflect"
	"sort"

	rt "github.com/danpasecinic/routebind/internal/reflect"
)

// Class describes a bindable type: its optional constructor and the methods
// whose parameter names have been declared.
type Class struct {
	typ     reflect.Type
	ctor    *Method
	methods map[string]*Method
}

func NewClass(t reflect.Type, ctor *Method, methods map[string]*Method) (*Class, error) {
	if t == nil || t.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: %v is not a concrete type", ErrInvalidDefinition, t)
	}
	if methods == nil {
		methods = make(map[string]*Method)
	}
	return &Class{typ: t, ctor: ctor, methods: methods}, nil
}

func (c *Class) Type() reflect.Type {
	return c.typ
}

func (c *Class) Name() string {
	return rt.KeyOf(c.typ)
}

func (c *Class) HasConstructor() bool {
	return c.ctor != nil
}

func (c *Class) Constructor() *Method {
	return c.ctor
}

// Method returns the declared method called name. Undeclared methods are
// described on demand when they take no parameters.
func (c *Class) Method(name string) (*Method, error) {
	if m, ok := c.methods[name]; ok {
		return m, nil
	}
	return NewMethod(c.typ, name, nil, nil)
}

func (c *Class) DeclaredMethods() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewInstance runs the constructor with args, or returns the default value of
// the class when it has none.
func (c *Class) NewInstance(args []reflect.Value) (reflect.Value, error) {
	if c.ctor == nil {
		return c.Default(), nil
	}
	return c.ctor.Invoke(reflect.Value{}, args)
}

// Default is a pointer to a zero value for pointer classes and the zero value
// otherwise.
func (c *Class) Default() reflect.Value {
	if c.typ.Kind() == reflect.Ptr {
		return reflect.New(c.typ.Elem())
	}
	return reflect.New(c.typ).Elem()
}
