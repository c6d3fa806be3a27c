package routebind

import (
	"context"
	"reflect"

	rt "github.com/danpasecinic/routebind/internal/reflect"
)

// Injector constructs instances by type. The binder uses it to obtain lookup
// instances for routable parameters and to satisfy parameters without a
// route value.
type Injector interface {
	Make(ctx context.Context, t reflect.Type) (any, error)
}

// InjectorFunc adapts a function to Injector.
type InjectorFunc func(ctx context.Context, t reflect.Type) (any, error)

func (f InjectorFunc) Make(ctx context.Context, t reflect.Type) (any, error) {
	return f(ctx, t)
}

type Resolver interface {
	Resolve(ctx context.Context, key string) (any, error)
	Has(key string) bool
}

type resolverAdapter struct {
	container *Container
}

func (r *resolverAdapter) Resolve(ctx context.Context, key string) (any, error) {
	return r.container.internal.Resolve(ctx, key)
}

func (r *resolverAdapter) Has(key string) bool {
	return r.container.internal.Has(key)
}

func Invoke[T any](c *Container) (T, error) {
	return InvokeCtx[T](context.Background(), c)
}

func InvokeCtx[T any](ctx context.Context, c *Container) (T, error) {
	var zero T
	key := rt.TypeKey[T]()

	instance, err := c.internal.Resolve(ctx, key)
	if err != nil {
		return zero, containerError(key, err)
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, errResolutionFailed(key, nil)
	}

	return typed, nil
}

func MustInvoke[T any](c *Container) T {
	v, err := Invoke[T](c)
	if err != nil {
		panic(err)
	}
	return v
}
