package descriptor

import (
	"errors"
	"fmt"
	"reflect"

	rt "github.com/danpasecinic/routebind/internal/reflect"
)

var (
	ErrMethodNotFound       = errors.New("method not found")
	ErrUndeclaredParameters = errors.New("parameter names not declared")
	ErrInvalidDefinition    = errors.New("invalid definition")
)

// Method describes a constructor or an instance method of a class together
// with its named parameters.
type Method struct {
	name        string
	constructor bool
	fn          reflect.Value
	sig         rt.Signature
	params      []*Parameter
	byName      map[string]*Parameter
}

// NewConstructor describes fn as the constructor of class. fn must return
// the class, optionally followed by an error.
func NewConstructor(class reflect.Type, fn any, names []string, nodes map[string]TypeNode) (*Method, error) {
	sig, err := rt.FuncSignature(fn)
	if err != nil {
		return nil, fmt.Errorf("%w: constructor of %s: %v", ErrInvalidDefinition, rt.KeyOf(class), err)
	}
	if sig.Out == nil || !sig.Out.AssignableTo(class) {
		return nil, fmt.Errorf("%w: constructor of %s must return %s", ErrInvalidDefinition, rt.KeyOf(class), class)
	}

	return build("constructor", true, reflect.ValueOf(fn), sig, names, nodes)
}

// NewMethod describes the method called name on class. A nil names slice is
// only accepted for methods without parameters.
func NewMethod(class reflect.Type, name string, names []string, nodes map[string]TypeNode) (*Method, error) {
	m, ok := class.MethodByName(name)
	if !ok || class.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, rt.KeyOf(class), name)
	}

	sig, err := rt.MethodSignature(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %v", ErrInvalidDefinition, rt.KeyOf(class), name, err)
	}
	if names == nil && len(sig.In) > 0 {
		return nil, fmt.Errorf("%w: %s.%s takes %d parameters", ErrUndeclaredParameters, rt.KeyOf(class), name, len(sig.In))
	}

	return build(name, false, m.Func, sig, names, nodes)
}

func build(
	name string,
	constructor bool,
	fn reflect.Value,
	sig rt.Signature,
	names []string,
	nodes map[string]TypeNode,
) (*Method, error) {
	if sig.Variadic {
		return nil, fmt.Errorf("%w: %s is variadic", ErrInvalidDefinition, name)
	}
	if len(names) != len(sig.In) {
		return nil, fmt.Errorf(
			"%w: %s takes %d parameters, %d names given", ErrInvalidDefinition, name, len(sig.In), len(names),
		)
	}

	m := &Method{
		name:        name,
		constructor: constructor,
		fn:          fn,
		sig:         sig,
		params:      make([]*Parameter, 0, len(names)),
		byName:      make(map[string]*Parameter, len(names)),
	}

	for i, paramName := range names {
		if paramName == "" {
			return nil, fmt.Errorf("%w: %s parameter %d has no name", ErrInvalidDefinition, name, i)
		}
		if _, dup := m.byName[paramName]; dup {
			return nil, fmt.Errorf("%w: %s declares %q twice", ErrInvalidDefinition, name, paramName)
		}

		node, ok := nodes[paramName]
		if !ok {
			node = Named(sig.In[i])
		}

		p := NewParameter(paramName, i, sig.In[i], node)
		m.params = append(m.params, p)
		m.byName[paramName] = p
	}

	for paramName := range nodes {
		if _, ok := m.byName[paramName]; !ok {
			return nil, fmt.Errorf("%w: %s has no parameter %q", ErrInvalidDefinition, name, paramName)
		}
	}

	return m, nil
}

func (m *Method) Name() string {
	return m.name
}

func (m *Method) IsConstructor() bool {
	return m.constructor
}

func (m *Method) Parameters() []*Parameter {
	return m.params
}

func (m *Method) Parameter(name string) (*Parameter, bool) {
	p, ok := m.byName[name]
	return p, ok
}

// ParametersMatching returns, in declaration order, the parameters with at
// least one declared type satisfying capability.
func (m *Method) ParametersMatching(capability reflect.Type) []*Parameter {
	var matching []*Parameter
	for _, p := range m.params {
		if p.Matches(capability) {
			matching = append(matching, p)
		}
	}
	return matching
}

func (m *Method) ReturnsError() bool {
	return m.sig.ReturnsError
}

// Invoke calls the method on receiver, or the constructor when receiver is
// the zero Value. The returned error is the one produced by the callee.
func (m *Method) Invoke(receiver reflect.Value, args []reflect.Value) (reflect.Value, error) {
	var out []reflect.Value
	if m.constructor {
		out = m.fn.Call(args)
	} else {
		out = receiver.MethodByName(m.name).Call(args)
	}

	var result reflect.Value
	if m.sig.Out != nil {
		result = out[0]
	}
	if m.sig.ReturnsError {
		if errv := out[len(out)-1]; !errv.IsNil() {
			return result, errv.Interface().(error)
		}
	}
	return result, nil
}
