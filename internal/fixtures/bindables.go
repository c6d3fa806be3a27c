package fixtures

import (
	"github.com/danpasecinic/routebind"
)

// Option is a string-backed enum.
type Option string

const (
	OptionTest1 Option = "test1"
	OptionTest2 Option = "test2"
	OptionTest3 Option = "test3"
)

func (Option) Cases() []routebind.Enum {
	return []routebind.Enum{OptionTest1, OptionTest2, OptionTest3}
}

// Level is an int-backed enum, never coerced from route values.
type Level int

func (Level) Cases() []routebind.Enum {
	return []routebind.Enum{Level(1), Level(2)}
}

type MethodBind struct {
	User *User
	Dog  *Dog
}

func (m *MethodBind) Execute(user *User, dog *Dog) *MethodBind {
	m.User = user
	m.Dog = dog
	return m
}

func (m *MethodBind) Ping() string {
	return "pong"
}

type ParentBind struct {
	User *User
}

func NewParentBind(user *User) *ParentBind {
	return &ParentBind{User: user}
}

type ParentAndChildBind struct {
	Dog  *Dog
	User *User
}

func NewParentAndChildBind(dog *Dog, user *User) *ParentAndChildBind {
	return &ParentAndChildBind{Dog: dog, User: user}
}

type EnumBind struct {
	Enum Option
}

func NewEnumBind(enum Option) *EnumBind {
	return &EnumBind{Enum: enum}
}

type LevelBind struct {
	Level Level
}

func NewLevelBind(level Level) *LevelBind {
	return &LevelBind{Level: level}
}

// Define registers every bindable of this package in cat.
func Define(cat *routebind.Catalog) error {
	definitions := []func() error{
		func() error {
			return routebind.Define[*MethodBind](cat, routebind.Method("Execute", "user", "dog"))
		},
		func() error {
			return routebind.Define[*ParentBind](cat, routebind.Constructor(NewParentBind, "user"))
		},
		func() error {
			return routebind.Define[*ParentAndChildBind](cat, routebind.Constructor(NewParentAndChildBind, "dog", "user"))
		},
		func() error {
			return routebind.Define[*EnumBind](cat, routebind.Constructor(NewEnumBind, "enum"))
		},
		func() error {
			return routebind.Define[*LevelBind](cat, routebind.Constructor(NewLevelBind, "level"))
		},
	}

	for _, define := range definitions {
		if err := define(); err != nil {
			return err
		}
	}
	return nil
}
