package routebind

import (
	"time"
)

type BindKind uint8

const (
	BindEnum BindKind = iota + 1
	BindRoutable
	BindScopedRoutable
	BindService
)

func (k BindKind) String() string {
	switch k {
	case BindEnum:
		return "enum"
	case BindRoutable:
		return "routable"
	case BindScopedRoutable:
		return "scoped_routable"
	case BindService:
		return "service"
	default:
		return "unknown"
	}
}

type BindHook func(parameter string, kind BindKind, duration time.Duration, err error)

type ResolveHook func(key string, duration time.Duration, err error)
