package routebind

import (
	"context"

	"github.com/danpasecinic/routebind/internal/container"
	"github.com/danpasecinic/routebind/internal/scope"
)

type Scope = scope.Scope

const (
	Singleton = scope.Singleton
	Transient = scope.Transient
	Request   = scope.Request
)

// WithRequestScope returns a context under which Request scoped services are
// built once. Adapters call it for every incoming request.
func WithRequestScope(ctx context.Context) context.Context {
	return container.WithRequestScope(ctx)
}
