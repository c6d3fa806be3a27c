// Package echobind binds the path parameters echo captured for a request.
package echobind

import (
	"github.com/labstack/echo/v4"

	"github.com/danpasecinic/routebind"
	"github.com/danpasecinic/routebind/route"
	"github.com/danpasecinic/routebind/routeconfig"
)

type Adapter struct {
	config *routeconfig.Config
	opts   []routebind.Option
}

// New returns an adapter applying cfg to the routes it binds. cfg may be nil.
func New(cfg *routeconfig.Config, opts ...routebind.Option) *Adapter {
	return &Adapter{config: cfg, opts: opts}
}

// Route builds the matched route of c. The registered path of the route is
// its pattern.
func (a *Adapter) Route(c echo.Context) (*route.Route, error) {
	pattern := c.Path()
	return route.FromCaptured(pattern, c.ParamNames(), c.ParamValues(), a.config.Options(pattern)...)
}

func (a *Adapter) Binder(c echo.Context) (*routebind.Binder, error) {
	rt, err := a.Route(c)
	if err != nil {
		return nil, err
	}
	return routebind.NewBinder(rt, a.opts...), nil
}

// Handler binds T for every request and passes it to fn. Binding failures are
// returned as *echo.HTTPError: 404 for missing records and enum cases, 500
// otherwise.
func Handler[T any](a *Adapter, fn func(echo.Context, T) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := routebind.WithRequestScope(c.Request().Context())
		c.SetRequest(c.Request().WithContext(ctx))

		b, err := a.Binder(c)
		if err != nil {
			return echo.NewHTTPError(routebind.HTTPStatus(err)).SetInternal(err)
		}

		v, err := routebind.Bind[T](ctx, b)
		if err != nil {
			return echo.NewHTTPError(routebind.HTTPStatus(err)).SetInternal(err)
		}
		return fn(c, v)
	}
}
