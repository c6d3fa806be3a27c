package routebind

import (
	"context"
	"fmt"
	"reflect"

	rt "github.com/danpasecinic/routebind/internal/reflect"
)

var contextType = reflect.TypeFor[context.Context]()

// ProvideFunc registers constructor as the provider of T, resolving each of
// its parameters by type. A context.Context parameter receives the resolve
// context.
func ProvideFunc[T any](c *Container, constructor any, opts ...ProviderOption) error {
	key := rt.TypeKey[T]()

	sig, err := rt.FuncSignature(constructor)
	if err != nil {
		return errInvalidDefinition(key, err)
	}
	if sig.Variadic {
		return errInvalidDefinition(key, fmt.Errorf("constructor must not be variadic"))
	}

	expectedType := reflect.TypeFor[T]()
	if sig.Out == nil || !sig.Out.AssignableTo(expectedType) {
		return errInvalidDefinition(key, fmt.Errorf("constructor returns %v, expected %s", sig.Out, expectedType))
	}

	fnVal := reflect.ValueOf(constructor)

	var deps []string
	for _, in := range sig.In {
		if in != contextType {
			deps = append(deps, rt.KeyOf(in))
		}
	}

	provider := func(ctx context.Context, r Resolver) (T, error) {
		var zero T

		args := make([]reflect.Value, len(sig.In))
		for i, in := range sig.In {
			if in == contextType {
				args[i] = reflect.ValueOf(&ctx).Elem()
				continue
			}

			instance, err := r.Resolve(ctx, rt.KeyOf(in))
			if err != nil {
				return zero, fmt.Errorf("failed to resolve parameter %d (%s): %w", i, rt.KeyOf(in), err)
			}
			if instance == nil {
				args[i] = reflect.Zero(in)
			} else {
				args[i] = reflect.ValueOf(instance)
			}
		}

		results := fnVal.Call(args)

		if sig.ReturnsError && !results[len(results)-1].IsNil() {
			return zero, results[len(results)-1].Interface().(error)
		}

		typed, _ := results[0].Interface().(T)
		return typed, nil
	}

	opts = append([]ProviderOption{WithDependencies(deps...)}, opts...)
	return Provide(c, provider, opts...)
}

func MustProvideFunc[T any](c *Container, constructor any, opts ...ProviderOption) {
	if err := ProvideFunc[T](c, constructor, opts...); err != nil {
		panic(err)
	}
}
