package routebind

import (
	"context"
	"errors"
	"reflect"
)

// ErrParentNotSoftDeletable is the cause of the lookup failure raised when a
// route allows trashed bindings and a SoftDeletable child is scoped to a
// parent that is not SoftDeletable.
var ErrParentNotSoftDeletable = errors.New("parent cannot resolve soft-deleted children")

// Routable is implemented by types that can be looked up from a raw route
// value. A nil result means no record matched.
type Routable interface {
	ResolveRouteBinding(ctx context.Context, value string, field string) (Routable, error)
	// ResolveChildRouteBinding looks up the child parameter scoped to the
	// receiver.
	ResolveChildRouteBinding(ctx context.Context, child string, value string, field string) (Routable, error)
}

// SoftDeletable is implemented by routables whose lookups can include
// soft-deleted records. On routes allowing trashed bindings the soft
// variants replace the standard lookups. A scoped child then resolves
// through its parent's ResolveSoftDeletableChildRouteBinding, so the parent
// must implement SoftDeletable too, otherwise binding fails with
// ErrParentNotSoftDeletable.
type SoftDeletable interface {
	ResolveSoftDeletableRouteBinding(ctx context.Context, value string, field string) (Routable, error)
	ResolveSoftDeletableChildRouteBinding(ctx context.Context, child string, value string, field string) (Routable, error)
}

var routableType = reflect.TypeFor[Routable]()
