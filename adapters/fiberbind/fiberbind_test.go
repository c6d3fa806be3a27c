package fiberbind_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/routebind"
	"github.com/danpasecinic/routebind/adapters/fiberbind"
	"github.com/danpasecinic/routebind/internal/fixtures"
	"github.com/danpasecinic/routebind/routeconfig"
)

const routes = `
routes:
  - pattern: /users/:user/dogs/:dog
    scope_bindings: true
  - pattern: /users/:user/pets/:dog
    binding_fields:
      dog: slug
`

func newApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg, err := routeconfig.Parse([]byte(routes), routeconfig.FormatYAML)
	require.NoError(t, err)

	cat := routebind.NewCatalog()
	require.NoError(t, fixtures.Define(cat))

	a := fiberbind.New(cfg, routebind.WithCatalog(cat))

	execute := func(c *fiber.Ctx) error {
		b, err := a.Binder(c)
		if err != nil {
			return err
		}

		out, err := routebind.BindAndCall(c.UserContext(), b, reflect.TypeFor[*fixtures.MethodBind](), "Execute")
		if err != nil {
			return fiber.NewError(routebind.HTTPStatus(err), err.Error())
		}
		return c.SendString(out.(*fixtures.MethodBind).Dog.Name)
	}

	app := fiber.New()
	app.Get("/users/:user", fiberbind.Handler(a, func(c *fiber.Ctx, v *fixtures.ParentBind) error {
		return c.SendString(v.User.Email)
	}))
	app.Get("/options/:enum", fiberbind.Handler(a, func(c *fiber.Ctx, v *fixtures.EnumBind) error {
		return c.SendString(string(v.Enum))
	}))
	app.Get("/users/:user/dogs/:dog", execute)
	app.Get("/users/:user/pets/:dog", execute)
	return app
}

func TestHandler(t *testing.T) {
	t.Parallel()

	app := newApp(t)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/users/1", http.StatusOK, "john.doe@example.com"},
		{"/users/99", http.StatusNotFound, "Not Found"},
		{"/options/test1", http.StatusOK, "test1"},
		{"/options/test4", http.StatusNotFound, "Not Found"},
		{"/users/1/dogs/1", http.StatusOK, "Scooter Harvey Wooferton"},
		{"/users/2/dogs/1", http.StatusNotFound, ""},
		{"/users/1/pets/scooter", http.StatusOK, "Scooter Harvey Wooferton"},
		{"/users/1/pets/1", http.StatusNotFound, ""},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.body != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tc.body, string(body))
			}
		})
	}
}
