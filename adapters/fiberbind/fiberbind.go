// Package fiberbind binds the route parameters fiber captured for a request.
package fiberbind

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/danpasecinic/routebind"
	"github.com/danpasecinic/routebind/route"
	"github.com/danpasecinic/routebind/routeconfig"
)

var ErrUnmatchedRoute = errors.New("request matched no fiber route")

type Adapter struct {
	config *routeconfig.Config
	opts   []routebind.Option
}

// New returns an adapter applying cfg to the routes it binds. cfg may be nil.
func New(cfg *routeconfig.Config, opts ...routebind.Option) *Adapter {
	return &Adapter{config: cfg, opts: opts}
}

// Route builds the matched route of c. Values are copied, fiber reuses its
// buffers once the handler returns.
func (a *Adapter) Route(c *fiber.Ctx) (*route.Route, error) {
	matched := c.Route()
	if matched == nil || matched.Path == "" {
		return nil, ErrUnmatchedRoute
	}

	names := matched.Params
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = utils.CopyString(c.Params(name))
	}

	pattern := matched.Path
	return route.FromCaptured(pattern, names, values, a.config.Options(pattern)...)
}

func (a *Adapter) Binder(c *fiber.Ctx) (*routebind.Binder, error) {
	rt, err := a.Route(c)
	if err != nil {
		return nil, err
	}
	return routebind.NewBinder(rt, a.opts...), nil
}

// Handler binds T for every request and passes it to fn. Binding failures are
// returned as *fiber.Error: 404 for missing records and enum cases, 500
// otherwise.
func Handler[T any](a *Adapter, fn func(*fiber.Ctx, T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := routebind.WithRequestScope(c.UserContext())
		c.SetUserContext(ctx)

		b, err := a.Binder(c)
		if err != nil {
			return toFiberError(c, err)
		}

		v, err := routebind.Bind[T](ctx, b)
		if err != nil {
			return toFiberError(c, err)
		}
		return fn(c, v)
	}
}

func toFiberError(c *fiber.Ctx, err error) *fiber.Error {
	status := routebind.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "route binding failed", "path", c.Path(), "error", err)
	}
	return fiber.NewError(status, utils.StatusMessage(status))
}
