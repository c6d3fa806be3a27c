// Package ginbind binds the path parameters gin captured for a request.
package ginbind

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danpasecinic/routebind"
	"github.com/danpasecinic/routebind/route"
	"github.com/danpasecinic/routebind/routeconfig"
)

var ErrUnmatchedRoute = errors.New("request matched no gin route")

type Adapter struct {
	config *routeconfig.Config
	opts   []routebind.Option
}

// New returns an adapter applying cfg to the routes it binds. cfg may be nil.
func New(cfg *routeconfig.Config, opts ...routebind.Option) *Adapter {
	return &Adapter{config: cfg, opts: opts}
}

// Route builds the matched route of c from gin's ordered params.
func (a *Adapter) Route(c *gin.Context) (*route.Route, error) {
	pattern := c.FullPath()
	if pattern == "" {
		return nil, ErrUnmatchedRoute
	}

	names := make([]string, len(c.Params))
	values := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Key
		values[i] = p.Value
	}
	return route.FromCaptured(pattern, names, values, a.config.Options(pattern)...)
}

func (a *Adapter) Binder(c *gin.Context) (*routebind.Binder, error) {
	rt, err := a.Route(c)
	if err != nil {
		return nil, err
	}
	return routebind.NewBinder(rt, a.opts...), nil
}

// Handler binds T for every request and passes it to fn. Failures abort the
// request with 404 for missing records and enum cases, 500 otherwise, and are
// recorded in c.Errors.
func Handler[T any](a *Adapter, fn func(*gin.Context, T)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := routebind.WithRequestScope(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)

		b, err := a.Binder(c)
		if err != nil {
			abort(c, err)
			return
		}

		v, err := routebind.Bind[T](ctx, b)
		if err != nil {
			abort(c, err)
			return
		}
		fn(c, v)
	}
}

func abort(c *gin.Context, err error) {
	status := routebind.HTTPStatus(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
}
