package routebind_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/routebind"
	"github.com/danpasecinic/routebind/internal/fixtures"
	"github.com/danpasecinic/routebind/route"
)

func newCatalog(t *testing.T) *routebind.Catalog {
	t.Helper()

	cat := routebind.NewCatalog()
	require.NoError(t, fixtures.Define(cat))
	return cat
}

func newBinder(t *testing.T, r *route.Route, opts ...routebind.Option) *routebind.Binder {
	t.Helper()

	opts = append([]routebind.Option{routebind.WithCatalog(newCatalog(t))}, opts...)
	return routebind.NewBinder(r, opts...)
}

func executeOn(t *testing.T, b *routebind.Binder) (*routebind.Parameters, *fixtures.MethodBind, error) {
	t.Helper()

	out, err := routebind.BindAndCall(context.Background(), b, reflect.TypeFor[*fixtures.MethodBind](), "Execute")
	if err != nil {
		return nil, nil, err
	}
	return b.Route().Parameters(), out.(*fixtures.MethodBind), nil
}

func TestBind_NoConstructor(t *testing.T) {
	t.Parallel()

	injector := routebind.InjectorFunc(func(context.Context, reflect.Type) (any, error) {
		t.Error("injector must not be called for a class without constructor")
		return nil, errors.New("unexpected")
	})

	b := newBinder(t, route.MustNew("test"), routebind.WithInjector(injector))

	got, err := routebind.Bind[*fixtures.MethodBind](context.Background(), b)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.User)
	assert.Nil(t, got.Dog)
}

func TestBind_Model(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("users/{user}").WithValues("1"))

	got, err := routebind.Bind[*fixtures.ParentBind](context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", got.User.Email)
}

func TestBind_ModelNotFound(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("users/{user}").WithValues("42"))

	_, err := routebind.Bind[*fixtures.ParentBind](context.Background(), b)
	require.Error(t, err)
	assert.True(t, routebind.IsModelNotFound(err))
	assert.True(t, routebind.IsNotFound(err))

	var bindErr *routebind.Error
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, []string{"42"}, bindErr.Values)
	assert.Equal(t, "user", bindErr.Parameter)
	assert.Contains(t, bindErr.Type, "fixtures.User")
}

func TestBind_ParentAndChild(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("users/{user}/dogs/{dog}").WithValues("1", "1"))

	got, err := routebind.Bind[*fixtures.ParentAndChildBind](context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", got.User.Email)
	assert.Equal(t, "Scooter Harvey Wooferton", got.Dog.Name)
}

func TestBind_ChildBoundBeforeParentIsPlain(t *testing.T) {
	t.Parallel()

	// dog precedes user in the constructor, so user is still raw when dog binds
	b := newBinder(t, route.MustNew("users/{user}/dogs/{dog}", route.ScopeBindings()).WithValues("2", "1"))

	got, err := routebind.Bind[*fixtures.ParentAndChildBind](context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, "2", got.User.ID)
	assert.Equal(t, "1", got.Dog.ID)
}

func TestBind_Scoping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		opts     []route.Option
		values   []any
		wantDog  string
		notFound bool
	}{
		{
			name:    "unscoped binds plainly",
			pattern: "users/{user}/dogs/{dog}",
			values:  []any{"2", "1"},
			wantDog: "1",
		},
		{
			name:    "scoped finds own child",
			pattern: "users/{user}/dogs/{dog}",
			opts:    []route.Option{route.ScopeBindings()},
			values:  []any{"1", "1"},
			wantDog: "1",
		},
		{
			name:     "scoped rejects foreign child",
			pattern:  "users/{user}/dogs/{dog}",
			opts:     []route.Option{route.ScopeBindings()},
			values:   []any{"2", "1"},
			notFound: true,
		},
		{
			name:    "binding field scopes",
			pattern: "users/{user}/dogs/{dog:slug}",
			values:  []any{"1", "scooter"},
			wantDog: "1",
		},
		{
			name:     "binding field rejects foreign child",
			pattern:  "users/{user}/dogs/{dog:slug}",
			values:   []any{"1", "rex"},
			notFound: true,
		},
		{
			name:     "soft deleted hidden",
			pattern:  "users/{user}/dogs/{dog}",
			opts:     []route.Option{route.ScopeBindings()},
			values:   []any{"1", "3"},
			notFound: true,
		},
		{
			name:    "soft deleted allowed",
			pattern: "users/{user}/dogs/{dog}",
			opts:    []route.Option{route.ScopeBindings(), route.WithTrashed()},
			values:  []any{"1", "3"},
			wantDog: "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBinder(t, route.MustNew(tt.pattern, tt.opts...).WithValues(tt.values...))

			_, got, err := executeOn(t, b)
			if tt.notFound {
				assert.True(t, routebind.IsModelNotFound(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDog, got.Dog.ID)
		})
	}
}

func TestBind_TrashedPlainLookup(t *testing.T) {
	t.Parallel()

	hidden := newBinder(t, route.MustNew("users/{user}/dogs/{dog}").WithValues("1", "3"))
	_, _, err := executeOn(t, hidden)
	assert.True(t, routebind.IsModelNotFound(err))

	shown := newBinder(t, route.MustNew("users/{user}/dogs/{dog}", route.WithTrashed()).WithValues("1", "3"))
	_, got, err := executeOn(t, shown)
	require.NoError(t, err)
	assert.Equal(t, "Ghost", got.Dog.Name)
}

func TestBind_Enum(t *testing.T) {
	t.Parallel()

	r := route.MustNew("option/{enum}")

	got, err := routebind.Bind[*fixtures.EnumBind](context.Background(), newBinder(t, r.WithValues("test1")))
	require.NoError(t, err)
	assert.Equal(t, fixtures.OptionTest1, got.Enum)

	_, err = routebind.Bind[*fixtures.EnumBind](context.Background(), newBinder(t, r.WithValues("test4")))
	require.Error(t, err)
	assert.True(t, routebind.IsEnumCaseNotFound(err))
	assert.True(t, routebind.IsNotFound(err))

	var bindErr *routebind.Error
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, []string{"test4"}, bindErr.Values)
}

func TestBind_EnumAlreadyBound(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("option/{enum}").WithValues("nonsense"))

	got, err := routebind.Bind[*fixtures.EnumBind](context.Background(), b, routebind.Arg("enum", fixtures.OptionTest3))
	require.NoError(t, err)
	assert.Equal(t, fixtures.OptionTest3, got.Enum)
}

func TestBind_IntBackedEnumIsNotCoerced(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("level/{level}").WithValues("1"))

	_, err := routebind.Bind[*fixtures.LevelBind](context.Background(), b)
	assert.True(t, routebind.IsArgumentMismatch(err), "got %v", err)

	got, err := routebind.Bind[*fixtures.LevelBind](context.Background(), b, routebind.Arg("level", fixtures.Level(2)))
	require.NoError(t, err)
	assert.Equal(t, fixtures.Level(2), got.Level)
}

func TestBindAndCall_Class(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("users/{user}/dogs/{dog}").WithValues("1", "1"))

	_, got, err := executeOn(t, b)
	require.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", got.User.Email)
	assert.Equal(t, "Scooter Harvey Wooferton", got.Dog.Name)
}

func TestBindAndCall_Instance(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("users/{user}/dogs/{dog}").WithValues("1", "1"))
	instance := &fixtures.MethodBind{}

	out, err := routebind.BindAndCall(context.Background(), b, instance, "Execute")
	require.NoError(t, err)
	assert.Same(t, instance, out)
	assert.Equal(t, "john.doe@example.com", instance.User.Email)
	assert.Equal(t, "Scooter Harvey Wooferton", instance.Dog.Name)
}

func TestBindAndCall_EquivalentToBindThenCall(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("users/{user}/dogs/{dog}").WithValues("1", "1"))
	ctx := context.Background()

	called, err := routebind.BindAndCall(ctx, b, reflect.TypeFor[*fixtures.MethodBind](), "Execute")
	require.NoError(t, err)

	bound, err := routebind.Bind[*fixtures.MethodBind](ctx, b)
	require.NoError(t, err)
	_, err = routebind.BindAndCall(ctx, b, bound, "Execute")
	require.NoError(t, err)

	assert.Equal(t, called, bound)
}

func TestBindAndCall_ConstructorMethod(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("users/{user}").WithValues("1"))

	out, err := routebind.BindAndCall(context.Background(), b, reflect.TypeFor[*fixtures.ParentBind](), routebind.ConstructorMethod)
	require.NoError(t, err)
	assert.Equal(t, "1", out.(*fixtures.ParentBind).User.ID)
}

func TestBindAndCall_UndeclaredZeroArgMethod(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("ping"))

	out, err := routebind.BindAndCall(context.Background(), b, reflect.TypeFor[*fixtures.MethodBind](), "Ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
}

func TestBindAndCall_Errors(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("users/{user}").WithValues("1"))
	ctx := context.Background()

	t.Run("nil target", func(t *testing.T) {
		_, err := routebind.BindAndCall(ctx, b, nil, "Execute")
		assert.ErrorIs(t, err, &routebind.Error{Code: routebind.ErrCodeInvalidTarget})
	})

	t.Run("missing method", func(t *testing.T) {
		_, err := routebind.BindAndCall(ctx, b, reflect.TypeFor[*fixtures.MethodBind](), "Missing")
		assert.True(t, routebind.IsMethodNotFound(err))
	})

	t.Run("interface class", func(t *testing.T) {
		_, err := routebind.BindAndCall(ctx, b, reflect.TypeFor[routebind.Routable](), routebind.ConstructorMethod)
		assert.ErrorIs(t, err, &routebind.Error{Code: routebind.ErrCodeInvalidTarget})
	})
}

func TestBind_Idempotent(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("users/{user}").WithValues("1"))
	existing := &fixtures.User{ID: "99"}

	got, err := routebind.Bind[*fixtures.ParentBind](context.Background(), b, routebind.Arg("user", existing))
	require.NoError(t, err)
	assert.Same(t, existing, got.User)
}

type snakeBind struct {
	name string
}

func TestBind_SnakeCaseFallback(t *testing.T) {
	t.Parallel()

	cat := routebind.NewCatalog()
	require.NoError(t, routebind.Define[*snakeBind](cat, routebind.Constructor(
		func(userName string) *snakeBind { return &snakeBind{name: userName} }, "userName",
	)))

	snake := routebind.NewBinder(route.MustNew("names/{user_name}").WithValues("ann"), routebind.WithCatalog(cat))
	got, err := routebind.Bind[*snakeBind](context.Background(), snake)
	require.NoError(t, err)
	assert.Equal(t, "ann", got.name)

	both := routebind.NewBinder(
		route.MustNew("names/{user_name}/{userName}").WithValues("snake", "exact"),
		routebind.WithCatalog(cat),
	)
	got, err = routebind.Bind[*snakeBind](context.Background(), both)
	require.NoError(t, err)
	assert.Equal(t, "exact", got.name)
}

type mailer struct {
	from string
}

type notifier interface {
	Notify(string) error
}

type serviceBind struct {
	ctx    context.Context
	user   *fixtures.User
	mailer *mailer
	clock  *time.Location
}

type interfaceBind struct{}

type scalarBind struct{}

type ctxKey struct{}

func TestBind_ServiceFallback(t *testing.T) {
	t.Parallel()

	cat := routebind.NewCatalog()
	require.NoError(t, routebind.Define[*serviceBind](cat, routebind.Constructor(
		func(ctx context.Context, user *fixtures.User, m *mailer, loc *time.Location) *serviceBind {
			return &serviceBind{ctx: ctx, user: user, mailer: m, clock: loc}
		},
		"ctx", "user", "mailer", "location",
	)))
	require.NoError(t, routebind.Define[*interfaceBind](cat, routebind.Constructor(
		func(notifier) *interfaceBind { return &interfaceBind{} }, "notifier",
	)))
	require.NoError(t, routebind.Define[*scalarBind](cat, routebind.Constructor(
		func(int) *scalarBind { return &scalarBind{} }, "count",
	)))

	c := routebind.NewContainer()
	require.NoError(t, routebind.ProvideValue(c, &mailer{from: "noreply@example.com"}))

	b := routebind.NewBinder(
		route.MustNew("users/{user}").WithValues("2"),
		routebind.WithCatalog(cat),
		routebind.WithInjector(c),
	)
	ctx := context.WithValue(context.Background(), ctxKey{}, "request")

	t.Run("registered and zero value services", func(t *testing.T) {
		got, err := routebind.Bind[*serviceBind](ctx, b)
		require.NoError(t, err)
		assert.Equal(t, "request", got.ctx.Value(ctxKey{}))
		assert.Equal(t, "2", got.user.ID)
		assert.Equal(t, "noreply@example.com", got.mailer.from)
		assert.NotNil(t, got.clock)
	})

	t.Run("unregistered interface", func(t *testing.T) {
		_, err := routebind.Bind[*interfaceBind](ctx, b)
		assert.True(t, routebind.IsUnresolvableDependency(err))
		assert.True(t, routebind.IsServiceNotFound(err))
	})

	t.Run("missing scalar", func(t *testing.T) {
		_, err := routebind.Bind[*scalarBind](ctx, b)
		assert.True(t, routebind.IsUnresolvableDependency(err))
	})
}

type convertBind struct {
	id     uuid.UUID
	page   int
	active bool
	ratio  float64
}

func TestBind_ArgumentConversion(t *testing.T) {
	t.Parallel()

	cat := routebind.NewCatalog()
	require.NoError(t, routebind.Define[*convertBind](cat, routebind.Constructor(
		func(id uuid.UUID, page int, active bool, ratio float64) *convertBind {
			return &convertBind{id: id, page: page, active: active, ratio: ratio}
		},
		"id", "page", "active", "ratio",
	)))

	id := uuid.New()
	r := route.MustNew("items/{id}/{page}/{active}")

	t.Run("strings and numbers", func(t *testing.T) {
		b := routebind.NewBinder(r.WithValues(id.String(), "3", "true"), routebind.WithCatalog(cat))
		got, err := routebind.Bind[*convertBind](context.Background(), b, routebind.Arg("ratio", 2))
		require.NoError(t, err)
		assert.Equal(t, id, got.id)
		assert.Equal(t, 3, got.page)
		assert.True(t, got.active)
		assert.InDelta(t, 2.0, got.ratio, 0)
	})

	t.Run("bad integer", func(t *testing.T) {
		b := routebind.NewBinder(r.WithValues(id.String(), "three", "true"), routebind.WithCatalog(cat))
		_, err := routebind.Bind[*convertBind](context.Background(), b, routebind.Arg("ratio", 2))
		assert.True(t, routebind.IsArgumentMismatch(err))
	})

	t.Run("bad uuid", func(t *testing.T) {
		b := routebind.NewBinder(r.WithValues("nope", "3", "true"), routebind.WithCatalog(cat))
		_, err := routebind.Bind[*convertBind](context.Background(), b, routebind.Arg("ratio", 2))
		assert.True(t, routebind.IsArgumentMismatch(err))
	})
}

var errLookup = errors.New("database unavailable")

type failingModel struct{}

func (*failingModel) ResolveRouteBinding(context.Context, string, string) (routebind.Routable, error) {
	return nil, errLookup
}

func (*failingModel) ResolveChildRouteBinding(context.Context, string, string, string) (routebind.Routable, error) {
	return nil, errLookup
}

type failingBind struct{}

func (*failingBind) Show(*failingModel) error {
	return nil
}

var errRender = errors.New("render failed")

func (*failingBind) Render(format string) (string, error) {
	return "", errRender
}

func TestBind_CalleeAndLookupErrors(t *testing.T) {
	t.Parallel()

	cat := routebind.NewCatalog()
	require.NoError(t, routebind.Define[*failingBind](cat,
		routebind.Method("Show", "model"),
		routebind.Method("Render", "format"),
	))

	b := routebind.NewBinder(route.MustNew("models/{model}/{format}").WithValues("1", "json"), routebind.WithCatalog(cat))
	ctx := context.Background()

	_, err := routebind.BindAndCall(ctx, b, reflect.TypeFor[*failingBind](), "Show")
	assert.True(t, routebind.IsLookupFailed(err))
	assert.ErrorIs(t, err, errLookup)
	assert.False(t, routebind.IsNotFound(err))

	_, err = routebind.BindAndCall(ctx, b, reflect.TypeFor[*failingBind](), "Render")
	assert.True(t, routebind.IsInvocationFailed(err))
	assert.ErrorIs(t, err, errRender)
}

func TestBind_Observer(t *testing.T) {
	t.Parallel()

	type observed struct {
		param string
		kind  routebind.BindKind
	}
	var seen []observed

	b := newBinder(t,
		route.MustNew("users/{user}/dogs/{dog}", route.ScopeBindings()).WithValues("1", "1"),
		routebind.WithBindObserver(func(parameter string, kind routebind.BindKind, _ time.Duration, err error) {
			assert.NoError(t, err)
			seen = append(seen, observed{param: parameter, kind: kind})
		}),
	)

	_, _, err := executeOn(t, b)
	require.NoError(t, err)
	assert.Equal(t, []observed{
		{param: "user", kind: routebind.BindRoutable},
		{param: "dog", kind: routebind.BindScopedRoutable},
	}, seen)
}

func TestBind_RouteParametersUntouched(t *testing.T) {
	t.Parallel()

	b := newBinder(t, route.MustNew("users/{user}/dogs/{dog}").WithValues("1", "1"))

	params, _, err := executeOn(t, b)
	require.NoError(t, err)

	v, _ := params.Get("user")
	assert.Equal(t, "1", v)
}

type ownerPage struct {
	Owner *fixtures.User
}

func newOwnerPage(owner *fixtures.User) *ownerPage {
	return &ownerPage{Owner: owner}
}

func (p *ownerPage) Show(dog *fixtures.Dog) string {
	return p.Owner.ID + "/" + dog.ID
}

func TestBindAndCall_ConstructorRecordsScopeMethodParameters(t *testing.T) {
	t.Parallel()

	cat := routebind.NewCatalog()
	require.NoError(t, routebind.Define[*ownerPage](cat,
		routebind.Constructor(newOwnerPage, "user"),
		routebind.Method("Show", "dog"),
	))

	pattern := route.MustNew("users/{user}/dogs/{dog}", route.ScopeBindings())
	class := reflect.TypeFor[*ownerPage]()
	ctx := context.Background()

	var kinds []routebind.BindKind
	observer := routebind.WithBindObserver(func(_ string, kind routebind.BindKind, _ time.Duration, _ error) {
		kinds = append(kinds, kind)
	})

	b := routebind.NewBinder(pattern.WithValues("1", "1"), routebind.WithCatalog(cat), observer)
	out, err := routebind.BindAndCall(ctx, b, class, "Show")
	require.NoError(t, err)
	assert.Equal(t, "1/1", out)
	assert.Equal(t, []routebind.BindKind{routebind.BindRoutable, routebind.BindScopedRoutable}, kinds)

	foreign := routebind.NewBinder(pattern.WithValues("1", "2"), routebind.WithCatalog(cat))
	_, err = routebind.BindAndCall(ctx, foreign, class, "Show")
	assert.True(t, routebind.IsModelNotFound(err))

	var bindErr *routebind.Error
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "dog", bindErr.Parameter)
}

type color string

func (color) Cases() []routebind.Enum {
	return []routebind.Enum{color("red"), color("blue")}
}

type shade string

func (shade) Cases() []routebind.Enum {
	return []routebind.Enum{shade("dark"), shade("light")}
}

type palette struct {
	Value any
}

func TestBind_EnumUnionTriesFirstCandidateOnly(t *testing.T) {
	t.Parallel()

	cat := routebind.NewCatalog()
	require.NoError(t, routebind.Define[*palette](cat,
		routebind.Constructor(func(value any) *palette { return &palette{Value: value} }, "value"),
		routebind.ParamType(routebind.ConstructorMethod, "value",
			routebind.Union(reflect.TypeFor[color](), reflect.TypeFor[shade]())),
	))
	ctx := context.Background()

	b := routebind.NewBinder(route.MustNew("palettes/{value}").WithValues("blue"), routebind.WithCatalog(cat))
	got, err := routebind.Bind[*palette](ctx, b)
	require.NoError(t, err)
	assert.Equal(t, color("blue"), got.Value)

	b = routebind.NewBinder(route.MustNew("palettes/{value}").WithValues("dark"), routebind.WithCatalog(cat))
	_, err = routebind.Bind[*palette](ctx, b)
	require.True(t, routebind.IsEnumCaseNotFound(err))

	var bindErr *routebind.Error
	require.ErrorAs(t, err, &bindErr)
	assert.Contains(t, bindErr.Type, "color")
	assert.NotContains(t, bindErr.Type, "shade")
	assert.Equal(t, []string{"dark"}, bindErr.Values)
}
