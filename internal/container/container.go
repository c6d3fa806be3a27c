package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/danpasecinic/routebind/internal/graph"
	"github.com/danpasecinic/routebind/internal/scope"
)

var (
	ErrNotFound  = errors.New("service not found")
	ErrDuplicate = errors.New("service already registered")
	ErrCircular  = errors.New("circular dependency detected")
)

type ResolveHook func(key string, duration time.Duration, err error)

type ProviderFunc func(ctx context.Context, r Resolver) (any, error)

type Resolver interface {
	Resolve(ctx context.Context, key string) (any, error)
	Has(key string) bool
}

type ServiceEntry struct {
	Provider     ProviderFunc
	Instance     any
	Instantiated bool
	Dependencies []string
	Scope        scope.Scope

	// guards singleton construction so concurrent resolves build once
	build sync.Mutex
}

type Container struct {
	mu        sync.RWMutex
	services  map[string]*ServiceEntry
	graph     *graph.Graph
	logger    *slog.Logger
	onResolve []ResolveHook
}

type Config struct {
	Logger    *slog.Logger
	OnResolve []ResolveHook
}

func New(cfg *Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Container{
		services:  make(map[string]*ServiceEntry),
		graph:     graph.New(),
		logger:    logger,
		onResolve: cfg.OnResolve,
	}
}

// Register adds a provider under key. The graph stays acyclic, so a new cycle
// can only run through key.
func (c *Container) Register(key string, provider ProviderFunc, dependencies []string, s scope.Scope) error {
	if !s.Valid() {
		return fmt.Errorf("invalid scope %d for %s", s, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.services[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, key)
	}

	c.graph.Add(key, dependencies)
	if cycle := c.graph.CycleThrough(key); cycle != nil {
		c.graph.Remove(key)
		return fmt.Errorf("%w: %v", ErrCircular, cycle)
	}

	c.services[key] = &ServiceEntry{
		Provider:     provider,
		Dependencies: slices.Clone(dependencies),
		Scope:        s,
	}
	c.logger.Debug("registered service", "service", key, "scope", s.String(), "dependencies", dependencies)
	return nil
}

func (c *Container) RegisterValue(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.services[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, key)
	}

	c.services[key] = &ServiceEntry{Instance: value, Instantiated: true, Scope: scope.Singleton}
	c.graph.Add(key, nil)
	return nil
}

func (c *Container) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.services[key]
	return exists
}

func (c *Container) entry(key string) (*ServiceEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.services[key]
	return entry, exists
}

func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.services))
	for key := range c.services {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (c *Container) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.services)
}

// Validate reports dependencies that were declared but never registered.
func (c *Container) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if missing := c.graph.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing dependencies %v", ErrNotFound, missing)
	}
	return nil
}
