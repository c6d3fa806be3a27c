// Package fixtures holds the models and bindable types shared by the tests,
// the behaviour scenarios and the adapters.
package fixtures

import (
	"context"
	"fmt"

	"github.com/danpasecinic/routebind"
	"github.com/danpasecinic/routebind/bindtest"
)

type User struct {
	ID    string
	Name  string
	Email string
}

type Dog struct {
	ID     string
	UserID string
	Name   string
	Slug   string
}

var (
	Users = bindtest.NewTable("id", func(u *User) string { return u.ID }).
		Field("email", func(u *User) string { return u.Email })
	Dogs = bindtest.NewTable("id", func(d *Dog) string { return d.ID }).
		Field("slug", func(d *Dog) string { return d.Slug })
)

func init() {
	Users.Insert(
		&User{ID: "1", Name: "John Doe", Email: "john.doe@example.com"},
		&User{ID: "2", Name: "Jane Roe", Email: "jane.roe@example.com"},
	)
	Dogs.Insert(
		&Dog{ID: "1", UserID: "1", Name: "Scooter Harvey Wooferton", Slug: "scooter"},
		&Dog{ID: "2", UserID: "2", Name: "Rex", Slug: "rex"},
		&Dog{ID: "3", UserID: "1", Name: "Ghost", Slug: "ghost"},
	)
	Dogs.SoftDelete("3")
}

func (*User) ResolveRouteBinding(_ context.Context, value, field string) (routebind.Routable, error) {
	return findUser(value, field, false), nil
}

func (*User) ResolveSoftDeletableRouteBinding(_ context.Context, value, field string) (routebind.Routable, error) {
	return findUser(value, field, true), nil
}

func (u *User) ResolveChildRouteBinding(_ context.Context, child, value, field string) (routebind.Routable, error) {
	return u.child(child, value, field, false)
}

func (u *User) ResolveSoftDeletableChildRouteBinding(
	_ context.Context,
	child, value, field string,
) (routebind.Routable, error) {
	return u.child(child, value, field, true)
}

func (u *User) child(relation, value, field string, withTrashed bool) (routebind.Routable, error) {
	if relation != "dog" {
		return nil, fmt.Errorf("user has no %q relation", relation)
	}

	dog, ok := Dogs.FindWhere(field, value, withTrashed, func(d *Dog) bool { return d.UserID == u.ID })
	if !ok {
		return nil, nil
	}
	return dog, nil
}

func findUser(value, field string, withTrashed bool) routebind.Routable {
	if u, ok := Users.Find(field, value, withTrashed); ok {
		return u
	}
	return nil
}

func (*Dog) ResolveRouteBinding(_ context.Context, value, field string) (routebind.Routable, error) {
	return findDog(value, field, false), nil
}

func (*Dog) ResolveSoftDeletableRouteBinding(_ context.Context, value, field string) (routebind.Routable, error) {
	return findDog(value, field, true), nil
}

func (*Dog) ResolveChildRouteBinding(context.Context, string, string, string) (routebind.Routable, error) {
	return nil, nil
}

func (*Dog) ResolveSoftDeletableChildRouteBinding(context.Context, string, string, string) (routebind.Routable, error) {
	return nil, nil
}

func findDog(value, field string, withTrashed bool) routebind.Routable {
	if d, ok := Dogs.Find(field, value, withTrashed); ok {
		return d
	}
	return nil
}
