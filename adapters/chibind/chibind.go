// Package chibind binds the URL parameters chi captured for a request.
package chibind

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danpasecinic/routebind"
	"github.com/danpasecinic/routebind/route"
	"github.com/danpasecinic/routebind/routeconfig"
)

var ErrNoRouteContext = errors.New("request was not routed by chi")

type Adapter struct {
	config *routeconfig.Config
	opts   []routebind.Option
}

// New returns an adapter applying cfg to the routes it binds. cfg may be nil.
func New(cfg *routeconfig.Config, opts ...routebind.Option) *Adapter {
	return &Adapter{config: cfg, opts: opts}
}

// Route builds the matched route of r from chi's routing context.
func (a *Adapter) Route(r *http.Request) (*route.Route, error) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil, ErrNoRouteContext
	}

	pattern := rctx.RoutePattern()
	return route.FromCaptured(pattern, rctx.URLParams.Keys, rctx.URLParams.Values, a.config.Options(pattern)...)
}

func (a *Adapter) Binder(r *http.Request) (*routebind.Binder, error) {
	rt, err := a.Route(r)
	if err != nil {
		return nil, err
	}
	return routebind.NewBinder(rt, a.opts...), nil
}

// Handler binds T for every request and passes it to fn. Missing records and
// enum cases answer 404, other failures 500.
func Handler[T any](a *Adapter, fn func(http.ResponseWriter, *http.Request, T)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := routebind.WithRequestScope(r.Context())
		r = r.WithContext(ctx)

		b, err := a.Binder(r)
		if err != nil {
			fail(w, r, err)
			return
		}

		v, err := routebind.Bind[T](ctx, b)
		if err != nil {
			fail(w, r, err)
			return
		}
		fn(w, r, v)
	}
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := routebind.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "route binding failed", "path", r.URL.Path, "error", err)
	}
	http.Error(w, http.StatusText(status), status)
}
