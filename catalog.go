package routebind

import (
	"errors"
	"reflect"
	"sync"

	"github.com/danpasecinic/routebind/internal/descriptor"
	rt "github.com/danpasecinic/routebind/internal/reflect"
)

// ConstructorMethod names the constructor as a call target. It is lower case
// so it cannot collide with an exported Go method.
const ConstructorMethod = "new"

// DefaultCatalog is used by binders created without WithCatalog.
var DefaultCatalog = NewCatalog()

// Catalog holds the declared shape of bindable types: their constructors
// and the parameter names of their methods. It is safe for concurrent use.
type Catalog struct {
	classes sync.Map
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

type definition struct {
	constructor any
	ctorNames   []string
	methods     map[string][]string
	order       []string
	nodes       map[string]map[string]TypeNode
}

type DefineOption func(*definition)

// Constructor registers fn as the constructor with the given parameter names.
func Constructor(fn any, names ...string) DefineOption {
	return func(d *definition) {
		d.constructor = fn
		d.ctorNames = names
	}
}

// Method declares the parameter names of the method called name.
func Method(name string, names ...string) DefineOption {
	return func(d *definition) {
		if _, ok := d.methods[name]; !ok {
			d.order = append(d.order, name)
		}
		d.methods[name] = names
	}
}

// ParamType overrides the declared type of one parameter. Use
// ConstructorMethod to address constructor parameters.
func ParamType(method, param string, node TypeNode) DefineOption {
	return func(d *definition) {
		if d.nodes[method] == nil {
			d.nodes[method] = make(map[string]TypeNode)
		}
		d.nodes[method][param] = node
	}
}

// Define validates and stores the metadata of T, replacing any earlier
// definition.
func Define[T any](cat *Catalog, opts ...DefineOption) error {
	return cat.define(reflect.TypeFor[T](), opts...)
}

func MustDefine[T any](cat *Catalog, opts ...DefineOption) {
	if err := Define[T](cat, opts...); err != nil {
		panic(err)
	}
}

func (c *Catalog) define(t reflect.Type, opts ...DefineOption) error {
	key := rt.KeyOf(t)

	d := &definition{
		methods: make(map[string][]string),
		nodes:   make(map[string]map[string]TypeNode),
	}
	for _, opt := range opts {
		opt(d)
	}

	var ctor *descriptor.Method
	if d.constructor != nil {
		m, err := descriptor.NewConstructor(t, d.constructor, d.ctorNames, d.nodes[ConstructorMethod])
		if err != nil {
			return errInvalidDefinition(key, err)
		}
		ctor = m
	} else if len(d.nodes[ConstructorMethod]) > 0 {
		return errInvalidDefinition(key, errors.New("parameter types given for a missing constructor"))
	}

	methods := make(map[string]*descriptor.Method, len(d.methods))
	for _, name := range d.order {
		names := d.methods[name]
		if names == nil {
			names = []string{}
		}
		m, err := descriptor.NewMethod(t, name, names, d.nodes[name])
		if err != nil {
			return errInvalidDefinition(key, err)
		}
		methods[name] = m
	}

	for method := range d.nodes {
		if _, ok := methods[method]; !ok && method != ConstructorMethod {
			return errInvalidDefinition(key, errors.New("parameter types given for undeclared method "+method))
		}
	}

	class, err := descriptor.NewClass(t, ctor, methods)
	if err != nil {
		return errInvalidDefinition(key, err)
	}

	c.classes.Store(t, class)
	return nil
}

// Describe returns the class descriptor of t. Types never defined describe
// as classes without constructor whose methods take no parameters.
func (c *Catalog) Describe(t reflect.Type) (*descriptor.Class, error) {
	if cached, ok := c.classes.Load(t); ok {
		return cached.(*descriptor.Class), nil
	}

	class, err := descriptor.NewClass(t, nil, nil)
	if err != nil {
		return nil, errInvalidTarget(err.Error())
	}

	actual, _ := c.classes.LoadOrStore(t, class)
	return actual.(*descriptor.Class), nil
}
