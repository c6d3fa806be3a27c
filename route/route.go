// Package route describes matched routes for routebind: the ordered values
// captured from a path and the per-route binding configuration.
package route

import (
	"maps"
	"strings"

	"github.com/danpasecinic/routebind"
)

type Option func(*config)

type config struct {
	scoped  bool
	trashed bool
	fields  map[string]string
}

// ScopeBindings makes every routable parameter resolve as a child of the
// record bound just before it.
func ScopeBindings() Option {
	return func(cfg *config) {
		cfg.scoped = true
	}
}

func WithTrashed() Option {
	return func(cfg *config) {
		cfg.trashed = true
	}
}

// BindingField sets the field param binds by. A binding field also scopes
// the parameter to its parent.
func BindingField(param, field string) Option {
	return func(cfg *config) {
		cfg.fields[param] = field
	}
}

// Route is a parsed pattern plus the values captured for one request. It
// implements routebind.Route.
type Route struct {
	pattern string
	parts   []Part
	names   []string
	scoped  bool
	trashed bool
	fields  map[string]string
	params  *routebind.Parameters
}

var _ routebind.Route = (*Route)(nil)

func New(pattern string, opts ...Option) (*Route, error) {
	parts, err := Parse(pattern)
	if err != nil {
		return nil, err
	}

	cfg := &config{fields: make(map[string]string)}
	for _, part := range parts {
		if part.Field != "" {
			cfg.fields[part.Value] = part.Field
		}
	}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Route{
		pattern: pattern,
		parts:   parts,
		scoped:  cfg.scoped,
		trashed: cfg.trashed,
		fields:  cfg.fields,
		params:  routebind.NewParameters(),
	}
	for _, part := range parts {
		if part.Kind != StaticPart {
			r.names = append(r.names, part.Value)
		}
	}
	return r, nil
}

func MustNew(pattern string, opts ...Option) *Route {
	r, err := New(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Route) Pattern() string {
	return r.pattern
}

func (r *Route) Names() []string {
	return append([]string(nil), r.names...)
}

// WithValues returns a copy of r with values captured positionally for its
// parameter names. Surplus values are ignored.
func (r *Route) WithValues(values ...any) *Route {
	params := make([]routebind.Param, 0, len(values))
	for i, v := range values {
		if i >= len(r.names) {
			break
		}
		params = append(params, routebind.Arg(r.names[i], v))
	}
	return r.WithParameters(params...)
}

// WithParameters returns a copy of r whose captured parameters are params,
// in the given order.
func (r *Route) WithParameters(params ...routebind.Param) *Route {
	clone := *r
	clone.fields = maps.Clone(r.fields)
	clone.params = routebind.NewParameters(params...)
	return &clone
}

// Match captures the values of path when it matches the pattern of r.
func (r *Route) Match(path string) (*Route, bool) {
	trimmed := strings.Trim(path, "/")
	var segments []string
	if trimmed != "" {
		segments = strings.Split(trimmed, "/")
	}

	var params []routebind.Param
	for i, part := range r.parts {
		if part.Kind == WildcardPart {
			if i > len(segments) {
				return nil, false
			}
			params = append(params, routebind.Arg(part.Value, strings.Join(segments[i:], "/")))
			return r.WithParameters(params...), true
		}

		if i >= len(segments) {
			return nil, false
		}

		switch part.Kind {
		case StaticPart:
			if segments[i] != part.Value {
				return nil, false
			}
		case ParameterPart:
			params = append(params, routebind.Arg(part.Value, segments[i]))
		}
	}

	if len(segments) != len(r.parts) {
		return nil, false
	}
	return r.WithParameters(params...), true
}

// Match parses pattern and matches path against it.
func Match(pattern, path string, opts ...Option) (*Route, bool, error) {
	r, err := New(pattern, opts...)
	if err != nil {
		return nil, false, err
	}
	matched, ok := r.Match(path)
	return matched, ok, nil
}

// FromCaptured builds a route from the names and values a router captured,
// in capture order. Binding fields declared in pattern still apply.
func FromCaptured(pattern string, names, values []string, opts ...Option) (*Route, error) {
	r, err := New(pattern, opts...)
	if err != nil {
		return nil, err
	}

	params := make([]routebind.Param, 0, len(names))
	for i, name := range names {
		if i >= len(values) {
			break
		}
		params = append(params, routebind.Arg(name, values[i]))
	}
	return r.WithParameters(params...), nil
}

func (r *Route) Parameters() *routebind.Parameters {
	return r.params
}

func (r *Route) EnforcesScopedBindings() bool {
	return r.scoped
}

func (r *Route) AllowsTrashedBindings() bool {
	return r.trashed
}

func (r *Route) BindingFieldFor(name string) string {
	return r.fields[name]
}
