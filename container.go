package routebind

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/danpasecinic/routebind/internal/container"
	rt "github.com/danpasecinic/routebind/internal/reflect"
)

// Container is the default Injector. Registered types are resolved through
// their providers; unregistered struct and pointer-to-struct types are
// constructed as zero values.
type Container struct {
	internal *container.Container
	config   *containerConfig
}

func NewContainer(opts ...ContainerOption) *Container {
	cfg := &containerConfig{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	hooks := make([]container.ResolveHook, len(cfg.onResolve))
	for i, hook := range cfg.onResolve {
		hooks[i] = container.ResolveHook(hook)
	}

	internal := container.New(
		&container.Config{
			Logger:    cfg.logger,
			OnResolve: hooks,
		},
	)

	return &Container{
		internal: internal,
		config:   cfg,
	}
}

func (c *Container) Make(ctx context.Context, t reflect.Type) (any, error) {
	if t == nil {
		return nil, errInvalidTarget("cannot make a nil type")
	}

	key := rt.KeyOf(t)
	if c.internal.Has(key) {
		instance, err := c.internal.Resolve(ctx, key)
		if err != nil {
			return nil, containerError(key, err)
		}
		return instance, nil
	}

	switch {
	case t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct:
		return reflect.New(t.Elem()).Interface(), nil
	case t.Kind() == reflect.Struct:
		return reflect.New(t).Elem().Interface(), nil
	default:
		return nil, containerError(key, fmt.Errorf("%w: %s", container.ErrNotFound, key))
	}
}

func (c *Container) Has(key string) bool {
	return c.internal.Has(key)
}

func (c *Container) Validate() error {
	if err := c.internal.Validate(); err != nil {
		return errValidationFailed(err)
	}
	return nil
}

func (c *Container) Size() int {
	return c.internal.Size()
}

func (c *Container) Keys() []string {
	return c.internal.Keys()
}
