// Package bindtest provides helpers for testing code that binds routes.
package bindtest

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/danpasecinic/routebind"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Cleanup(f func())
}

// Observation is one coercion reported by the binder.
type Observation struct {
	Parameter string
	Kind      routebind.BindKind
	Duration  time.Duration
	Err       error
}

type TestBinder struct {
	*routebind.Binder
	Container *routebind.Container

	tb           TB
	mu           sync.Mutex
	observations []Observation
}

// New returns a binder for r backed by a fresh container. Options given here
// override the defaults, including the injector.
func New(tb TB, r routebind.Route, opts ...routebind.Option) *TestBinder {
	tb.Helper()

	tbinder := &TestBinder{
		Container: routebind.NewContainer(),
		tb:        tb,
	}

	defaults := []routebind.Option{
		routebind.WithInjector(tbinder.Container),
		routebind.WithBindObserver(tbinder.observe),
	}
	tbinder.Binder = routebind.NewBinder(r, append(defaults, opts...)...)

	tb.Cleanup(func() {
		if err := tbinder.Container.Validate(); err != nil {
			tb.Fatalf("container validation failed: %v", err)
		}
	})

	return tbinder
}

func (tbinder *TestBinder) observe(parameter string, kind routebind.BindKind, d time.Duration, err error) {
	tbinder.mu.Lock()
	defer tbinder.mu.Unlock()

	tbinder.observations = append(tbinder.observations, Observation{
		Parameter: parameter,
		Kind:      kind,
		Duration:  d,
		Err:       err,
	})
}

// Observations returns the coercions seen so far, in order.
func (tbinder *TestBinder) Observations() []Observation {
	tbinder.mu.Lock()
	defer tbinder.mu.Unlock()

	return append([]Observation(nil), tbinder.observations...)
}

func RequireBind[T any](tbinder *TestBinder, overrides ...routebind.Param) T {
	tbinder.tb.Helper()

	v, err := routebind.Bind[T](context.Background(), tbinder.Binder, overrides...)
	if err != nil {
		tbinder.tb.Fatalf("failed to bind %s: %v", reflect.TypeFor[T](), err)
	}
	return v
}

func (tbinder *TestBinder) RequireCall(target any, method string, overrides ...routebind.Param) any {
	tbinder.tb.Helper()

	out, err := routebind.BindAndCall(context.Background(), tbinder.Binder, target, method, overrides...)
	if err != nil {
		tbinder.tb.Fatalf("failed to call %s: %v", method, err)
	}
	return out
}

// RequireNotFound calls method on target and fails unless binding reports a
// missing enum case or record.
func (tbinder *TestBinder) RequireNotFound(target any, method string, overrides ...routebind.Param) error {
	tbinder.tb.Helper()

	_, err := routebind.BindAndCall(context.Background(), tbinder.Binder, target, method, overrides...)
	if err == nil {
		tbinder.tb.Fatalf("expected a not found error calling %s, got none", method)
		return nil
	}
	if !routebind.IsNotFound(err) {
		tbinder.tb.Fatalf("expected a not found error calling %s, got %v", method, err)
	}
	return err
}

func MustProvideValue[T any](tbinder *TestBinder, value T) {
	tbinder.tb.Helper()

	if err := routebind.ProvideValue(tbinder.Container, value); err != nil {
		tbinder.tb.Fatalf("failed to provide %s: %v", reflect.TypeFor[T](), err)
	}
}
