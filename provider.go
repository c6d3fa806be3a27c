package routebind

import (
	"context"

	"github.com/danpasecinic/routebind/internal/container"
	rt "github.com/danpasecinic/routebind/internal/reflect"
	"github.com/danpasecinic/routebind/internal/scope"
)

type Provider[T any] func(ctx context.Context, r Resolver) (T, error)

type ProviderOption func(*providerConfig)

type providerConfig struct {
	dependencies []string
	scope        scope.Scope
}

func WithScope(s Scope) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.scope = s
	}
}

// WithDependencies declares the keys a provider resolves so that cycles and
// missing services are caught at registration and by Validate.
func WithDependencies(keys ...string) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.dependencies = append(cfg.dependencies, keys...)
	}
}

func Provide[T any](c *Container, provider Provider[T], opts ...ProviderOption) error {
	cfg := &providerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	key := rt.TypeKey[T]()

	wrappedProvider := func(ctx context.Context, r container.Resolver) (any, error) {
		return provider(ctx, &resolverAdapter{container: c})
	}

	if err := c.internal.Register(key, wrappedProvider, cfg.dependencies, cfg.scope); err != nil {
		return containerError(key, err)
	}
	return nil
}

func ProvideValue[T any](c *Container, value T) error {
	key := rt.TypeKey[T]()

	if err := c.internal.RegisterValue(key, value); err != nil {
		return containerError(key, err)
	}
	return nil
}

func MustProvide[T any](c *Container, provider Provider[T], opts ...ProviderOption) {
	if err := Provide(c, provider, opts...); err != nil {
		panic(err)
	}
}

func MustProvideValue[T any](c *Container, value T) {
	if err := ProvideValue(c, value); err != nil {
		panic(err)
	}
}
