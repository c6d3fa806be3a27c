package routebind

import (
	"context"
	"fmt"
	"reflect"
)

// Bind constructs T from the route parameters of b and the overrides.
func Bind[T any](ctx context.Context, b *Binder, overrides ...Param) (T, error) {
	var zero T

	out, err := b.call(ctx, reflect.TypeFor[T](), reflect.Value{}, ConstructorMethod, overrides)
	if err != nil {
		return zero, err
	}

	typed, ok := out.Interface().(T)
	if !ok {
		return zero, errInvalidTarget(fmt.Sprintf("constructor returned %s, not %s", out.Type(), reflect.TypeFor[T]()))
	}
	return typed, nil
}

// BindAndCall invokes method with bound arguments. A reflect.Type target is
// constructed first; any other target is used as the receiver as is.
// ConstructorMethod as method makes the call equivalent to Bind.
func BindAndCall(ctx context.Context, b *Binder, target any, method string, overrides ...Param) (any, error) {
	var (
		out reflect.Value
		err error
	)

	switch t := target.(type) {
	case nil:
		return nil, errInvalidTarget("target is nil")
	case reflect.Type:
		out, err = b.call(ctx, t, reflect.Value{}, method, overrides)
	default:
		v := reflect.ValueOf(target)
		out, err = b.call(ctx, v.Type(), v, method, overrides)
	}

	if err != nil || !out.IsValid() {
		return nil, err
	}
	return out.Interface(), nil
}
