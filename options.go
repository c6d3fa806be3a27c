package routebind

import "log/slog"

type Option func(*binderConfig)

type binderConfig struct {
	injector Injector
	catalog  *Catalog
	logger   *slog.Logger
	onBind   []BindHook
}

// WithInjector sets the collaborator used to construct lookup instances and
// to satisfy parameters no route value covers.
func WithInjector(injector Injector) Option {
	return func(cfg *binderConfig) {
		cfg.injector = injector
	}
}

func WithCatalog(catalog *Catalog) Option {
	return func(cfg *binderConfig) {
		cfg.catalog = catalog
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *binderConfig) {
		cfg.logger = logger
	}
}

func WithBindObserver(hook BindHook) Option {
	return func(cfg *binderConfig) {
		cfg.onBind = append(cfg.onBind, hook)
	}
}

type ContainerOption func(*containerConfig)

type containerConfig struct {
	logger    *slog.Logger
	onResolve []ResolveHook
}

func WithContainerLogger(logger *slog.Logger) ContainerOption {
	return func(cfg *containerConfig) {
		cfg.logger = logger
	}
}

func WithResolveObserver(hook ResolveHook) ContainerOption {
	return func(cfg *containerConfig) {
		cfg.onResolve = append(cfg.onResolve, hook)
	}
}
