package scope

type Scope int

const (
	Singleton Scope = iota
	Transient
	Request
)

func (s Scope) String() string {
	switch s {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	case Request:
		return "request"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the declared lifetimes.
func (s Scope) Valid() bool {
	return s >= Singleton && s <= Request
}
