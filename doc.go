// Package routebind binds the captured parameters of a matched route to
// constructor and method arguments.
//
// Route values are matched to parameters by name, converted into
// string-backed enum cases, and looked up as records through the Routable
// interface, including lookups scoped to the preceding route parameter.
// Parameters no route value covers are constructed by an Injector.
//
// # Quick Start
//
// Go keeps no parameter names at runtime, so bindable types declare them in
// a Catalog:
//
//	routebind.MustDefine[*ShowDog](routebind.DefaultCatalog,
//	    routebind.Constructor(NewShowDog, "user", "dog"),
//	    routebind.Method("Render", "format"),
//	)
//
//	r := route.MustNew("users/{user}/dogs/{dog}", route.ScopeBindings()).
//	    WithValues("1", "rex")
//
//	b := routebind.NewBinder(r)
//	page, err := routebind.Bind[*ShowDog](ctx, b)
//
// # Records
//
// A parameter whose type implements Routable is looked up from its raw value:
//
//	func (u *User) ResolveRouteBinding(ctx context.Context, value, field string) (routebind.Routable, error)
//	func (u *User) ResolveChildRouteBinding(ctx context.Context, child, value, field string) (routebind.Routable, error)
//
// When the previous route parameter already holds a record and the route
// enforces scoped bindings, or names a binding field for the parameter, the
// previous record resolves the child. A nil record fails with a
// MODEL_NOT_FOUND error.
//
// Types implementing SoftDeletable use their soft-deletable lookups when the
// route allows trashed bindings.
//
// # Enums
//
// A string kind implementing Enum is matched against its cases:
//
//	type Status string
//
//	func (Status) Cases() []routebind.Enum { return []routebind.Enum{Active, Archived} }
//
// A value matching no case fails with an ENUM_CASE_NOT_FOUND error. Both
// misses satisfy IsNotFound, which HTTP adapters translate into 404.
//
// # Calling methods
//
//	out, err := routebind.BindAndCall(ctx, b, reflect.TypeFor[*Controller](), "Show")
//	out, err := routebind.BindAndCall(ctx, b, existing, "Show", routebind.Arg("page", 2))
//
// # Injection
//
// The default Injector is a Container. Register services with Provide,
// ProvideValue or ProvideFunc and pass the container with WithInjector:
//
//	c := routebind.NewContainer()
//	routebind.ProvideFunc[*Mailer](c, NewMailer)
//	b := routebind.NewBinder(r, routebind.WithInjector(c))
//
// Unregistered struct and pointer-to-struct types are constructed as zero
// values.
package routebind
