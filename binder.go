package routebind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/spf13/cast"

	"github.com/danpasecinic/routebind/internal/descriptor"
	rt "github.com/danpasecinic/routebind/internal/reflect"
)

// Binder turns the parameters of a matched route into constructor and method
// arguments. It keeps no per-call state, so one Binder may serve any number
// of calls for its route.
type Binder struct {
	route    Route
	injector Injector
	catalog  *Catalog
	logger   *slog.Logger
	onBind   []BindHook
}

func NewBinder(route Route, opts ...Option) *Binder {
	cfg := &binderConfig{
		catalog: DefaultCatalog,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.injector == nil {
		cfg.injector = NewContainer(WithContainerLogger(cfg.logger))
	}

	return &Binder{
		route:    route,
		injector: cfg.injector,
		catalog:  cfg.catalog,
		logger:   cfg.logger,
		onBind:   cfg.onBind,
	}
}

func (b *Binder) Route() Route {
	return b.route
}

func (b *Binder) call(
	ctx context.Context,
	class reflect.Type,
	instance reflect.Value,
	method string,
	overrides []Param,
) (reflect.Value, error) {
	bag, err := b.parameters(overrides)
	if err != nil {
		return reflect.Value{}, err
	}

	cls, err := b.catalog.Describe(class)
	if err != nil {
		return reflect.Value{}, err
	}

	target := cls.Constructor()
	if method != ConstructorMethod {
		target, err = cls.Method(method)
		if errors.Is(err, descriptor.ErrMethodNotFound) {
			return reflect.Value{}, errMethodNotFound(cls.Name(), method, err)
		}
		if err != nil {
			return reflect.Value{}, errInvalidDefinition(cls.Name(), err)
		}
	}

	if !instance.IsValid() {
		instance, err = b.construct(ctx, cls, bag)
		if err != nil {
			return reflect.Value{}, err
		}
	}

	if method == ConstructorMethod {
		return instance, nil
	}

	// Constructor records are already in the bag, so method parameters can
	// scope to them.
	if err := b.coerce(ctx, target, bag); err != nil {
		return reflect.Value{}, err
	}

	args, err := b.arguments(ctx, target, bag)
	if err != nil {
		return reflect.Value{}, err
	}

	out, err := target.Invoke(instance, args)
	if err != nil {
		return out, errInvocationFailed(cls.Name(), method, err)
	}
	return out, nil
}

func (b *Binder) parameters(overrides []Param) (*Parameters, error) {
	bag := NewParameters()
	if b.route != nil {
		if captured := b.route.Parameters(); captured != nil {
			bag = captured.Clone()
		}
	}

	if err := bag.Merge(overrides...); err != nil {
		return nil, newError(ErrCodeArgumentMismatch, "cannot merge override parameters", err)
	}
	return bag, nil
}

func (b *Binder) construct(ctx context.Context, cls *descriptor.Class, bag *Parameters) (reflect.Value, error) {
	if !cls.HasConstructor() {
		b.logger.Debug("default constructed", "class", cls.Name())
		return cls.Default(), nil
	}

	ctor := cls.Constructor()
	if err := b.coerce(ctx, ctor, bag); err != nil {
		return reflect.Value{}, err
	}

	args, err := b.arguments(ctx, ctor, bag)
	if err != nil {
		return reflect.Value{}, err
	}

	instance, err := cls.NewInstance(args)
	if err != nil {
		return reflect.Value{}, errInvocationFailed(cls.Name(), ConstructorMethod, err)
	}
	return instance, nil
}

func (b *Binder) coerce(ctx context.Context, m *descriptor.Method, bag *Parameters) error {
	if m == nil {
		return nil
	}
	if err := b.bindEnums(m, bag); err != nil {
		return err
	}
	return b.bindRoutables(ctx, m, bag)
}

func (b *Binder) bindEnums(m *descriptor.Method, bag *Parameters) error {
	for _, p := range m.Parameters() {
		if !p.IsStringBackedEnum() {
			continue
		}
		if err := b.bindEnum(p, bag); err != nil {
			return err
		}
	}
	return nil
}

// bindEnum coerces the bag value of p into the first string-backed enum type
// p declares.
func (b *Binder) bindEnum(p *descriptor.Parameter, bag *Parameters) (err error) {
	name, ok := parameterName(bag, p.Name())
	if !ok {
		return nil
	}

	value, _ := bag.Get(name)
	enumType := p.StringBackedEnums()[0]
	if value != nil && reflect.TypeOf(value) == enumType {
		return nil
	}

	start := time.Now()
	defer func() {
		b.observe(name, BindEnum, time.Since(start), err)
	}()

	typeName := rt.KeyOf(enumType)
	raw, err := stringify(value)
	if err != nil {
		return errArgumentMismatch(name, typeName, value)
	}

	member, ok := descriptor.EnumTryFrom(enumType, raw)
	if !ok {
		return errEnumCaseNotFound(name, typeName, raw)
	}

	bag.Set(name, member.Interface())
	b.logger.Debug("bound enum", "parameter", name, "type", typeName, "value", raw)
	return nil
}

func (b *Binder) bindRoutables(ctx context.Context, m *descriptor.Method, bag *Parameters) error {
	for _, p := range m.ParametersMatching(routableType) {
		if err := b.bindRoutable(ctx, p, bag); err != nil {
			return err
		}
	}
	return nil
}

// bindRoutable replaces the raw bag value of p with the record it identifies.
// The lookup is scoped to the preceding bag entry when that entry is already
// a record and the route enforces scoping or names a binding field for p.
func (b *Binder) bindRoutable(ctx context.Context, p *descriptor.Parameter, bag *Parameters) (err error) {
	name, ok := parameterName(bag, p.Name())
	if !ok {
		return nil
	}

	value, _ := bag.Get(name)
	if _, bound := value.(Routable); bound {
		return nil
	}

	lookupType := p.TypesMatching(routableType)[0]
	typeName := rt.KeyOf(lookupType)

	kind := BindRoutable
	start := time.Now()
	defer func() {
		b.observe(name, kind, time.Since(start), err)
	}()

	raw, err := stringify(value)
	if err != nil {
		return errArgumentMismatch(name, typeName, value)
	}

	made, err := b.injector.Make(ctx, lookupType)
	if err != nil {
		return errUnresolvableDependency(name, typeName, err)
	}
	instance, ok := made.(Routable)
	if !ok || rt.IsNil(made) {
		return errUnresolvableDependency(name, typeName, fmt.Errorf("injector returned %T", made))
	}

	field := b.bindingField(name)
	soft, trashed := instance.(SoftDeletable)
	trashed = trashed && b.allowsTrashed()

	var model Routable
	parent, hasParent := bag.Before(name)
	scope, parentBound := parent.Value.(Routable)

	if hasParent && parentBound && !rt.IsNil(scope) && (b.enforcesScoped() || field != "") {
		kind = BindScopedRoutable
		model, err = childBinding(ctx, scope, name, raw, field, trashed)
	} else if trashed {
		model, err = soft.ResolveSoftDeletableRouteBinding(ctx, raw, field)
	} else {
		model, err = instance.ResolveRouteBinding(ctx, raw, field)
	}

	if err != nil {
		return errLookupFailed(name, typeName, err)
	}
	if rt.IsNil(model) {
		return errModelNotFound(name, typeName, raw)
	}

	bag.Set(name, model)
	b.logger.Debug(
		"bound routable",
		"parameter", name,
		"type", typeName,
		"scoped", kind == BindScopedRoutable,
		"trashed", trashed,
		"field", field,
	)
	return nil
}

// childBinding asks parent for the child record, through its soft-deletable
// variant when trashed records may bind.
func childBinding(ctx context.Context, parent Routable, child, raw, field string, trashed bool) (Routable, error) {
	if !trashed {
		return parent.ResolveChildRouteBinding(ctx, child, raw, field)
	}

	soft, ok := parent.(SoftDeletable)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrParentNotSoftDeletable, rt.KeyOf(reflect.TypeOf(parent)))
	}
	return soft.ResolveSoftDeletableChildRouteBinding(ctx, child, raw, field)
}

func (b *Binder) arguments(ctx context.Context, m *descriptor.Method, bag *Parameters) ([]reflect.Value, error) {
	params := m.Parameters()
	args := make([]reflect.Value, 0, len(params))

	for _, p := range params {
		arg, err := b.argument(ctx, p, bag)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return args, nil
}

func (b *Binder) argument(ctx context.Context, p *descriptor.Parameter, bag *Parameters) (reflect.Value, error) {
	if name, ok := parameterName(bag, p.Name()); ok {
		value, _ := bag.Get(name)
		return convertArgument(p, value)
	}

	if p.GoType() == contextType {
		return reflect.ValueOf(&ctx).Elem(), nil
	}

	service, ok := p.Service()
	if !ok {
		return reflect.Value{}, errUnresolvableDependency(p.Name(), strings.Join(p.TypeNames(), "|"), nil)
	}

	start := time.Now()
	instance, err := b.injector.Make(ctx, service)
	b.observe(p.Name(), BindService, time.Since(start), err)
	if err != nil {
		return reflect.Value{}, errUnresolvableDependency(p.Name(), rt.KeyOf(service), err)
	}

	return convertArgument(p, instance)
}

func (b *Binder) observe(name string, kind BindKind, d time.Duration, err error) {
	for _, hook := range b.onBind {
		hook(name, kind, d, err)
	}
}

func (b *Binder) enforcesScoped() bool {
	return b.route != nil && b.route.EnforcesScopedBindings()
}

func (b *Binder) allowsTrashed() bool {
	return b.route != nil && b.route.AllowsTrashedBindings()
}

func (b *Binder) bindingField(name string) string {
	if b.route == nil {
		return ""
	}
	return b.route.BindingFieldFor(name)
}

// parameterName returns the bag key holding the value of the declared
// parameter: the name itself, else its snake_case form.
func parameterName(bag *Parameters, name string) (string, bool) {
	if bag.Has(name) {
		return name, true
	}
	if snake := strcase.ToSnake(name); bag.Has(snake) {
		return snake, true
	}
	return "", false
}

func stringify(value any) (string, error) {
	if value != nil {
		if v := reflect.ValueOf(value); v.Kind() == reflect.String {
			return v.String(), nil
		}
	}
	return cast.ToStringE(value)
}
