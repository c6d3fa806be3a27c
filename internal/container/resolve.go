package container

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/danpasecinic/routebind/internal/scope"
)

type chainKey struct{}

// chain is the list of keys being resolved on the current call path.
func chainFrom(ctx context.Context) []string {
	if chain, ok := ctx.Value(chainKey{}).([]string); ok {
		return chain
	}
	return nil
}

func (c *Container) Resolve(ctx context.Context, key string) (any, error) {
	start := time.Now()

	chain := chainFrom(ctx)
	if slices.Contains(chain, key) {
		err := fmt.Errorf("%w: %v", ErrCircular, append(slices.Clone(chain), key))
		c.callResolveHooks(key, time.Since(start), err)
		return nil, err
	}
	ctx = context.WithValue(ctx, chainKey{}, append(slices.Clone(chain), key))

	entry, exists := c.entry(key)

	if !exists {
		err := fmt.Errorf("%w: %s", ErrNotFound, key)
		c.callResolveHooks(key, time.Since(start), err)
		return nil, err
	}

	result, err := c.resolveWithScope(ctx, key, entry)
	c.callResolveHooks(key, time.Since(start), err)
	return result, err
}

func (c *Container) callResolveHooks(key string, duration time.Duration, err error) {
	for _, hook := range c.onResolve {
		hook(key, duration, err)
	}
}

func (c *Container) resolveWithScope(ctx context.Context, key string, entry *ServiceEntry) (any, error) {
	switch entry.Scope {
	case scope.Transient:
		return c.build(ctx, key, entry)
	case scope.Request:
		return c.resolveRequest(ctx, key, entry)
	default:
		return c.resolveSingleton(ctx, key, entry)
	}
}

func (c *Container) resolveSingleton(ctx context.Context, key string, entry *ServiceEntry) (any, error) {
	entry.build.Lock()
	defer entry.build.Unlock()

	if entry.Instantiated {
		return entry.Instance, nil
	}

	instance, err := c.build(ctx, key, entry)
	if err != nil {
		return nil, err
	}

	entry.Instance = instance
	entry.Instantiated = true
	return instance, nil
}

func (c *Container) build(ctx context.Context, key string, entry *ServiceEntry) (any, error) {
	// The provider resolves its own dependencies; only their presence is
	// checked here.
	for _, dep := range entry.Dependencies {
		if !c.Has(dep) {
			return nil, fmt.Errorf("%w: %s, required by %s", ErrNotFound, dep, key)
		}
	}

	c.logger.Debug("constructing service", "service", key, "scope", entry.Scope.String())

	instance, err := entry.Provider(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("provider failed for %s: %w", key, err)
	}
	return instance, nil
}

type requestScopeKey struct{}

type RequestScope struct {
	mu        sync.RWMutex
	instances map[string]any
}

func NewRequestScope() *RequestScope {
	return &RequestScope{
		instances: make(map[string]any),
	}
}

func (rs *RequestScope) Get(key string) (any, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	instance, ok := rs.instances[key]
	return instance, ok
}

func (rs *RequestScope) Set(key string, instance any) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.instances[key] = instance
}

func WithRequestScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestScopeKey{}, NewRequestScope())
}

func getRequestScope(ctx context.Context) *RequestScope {
	if rs, ok := ctx.Value(requestScopeKey{}).(*RequestScope); ok {
		return rs
	}
	return nil
}

func (c *Container) resolveRequest(ctx context.Context, key string, entry *ServiceEntry) (any, error) {
	rs := getRequestScope(ctx)
	if rs == nil {
		return nil, fmt.Errorf("request scope not found in context for %s; use WithRequestScope(ctx)", key)
	}

	if instance, ok := rs.Get(key); ok {
		return instance, nil
	}

	instance, err := c.build(ctx, key, entry)
	if err != nil {
		return nil, err
	}

	rs.Set(key, instance)
	return instance, nil
}
