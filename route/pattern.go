package route

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPattern = errors.New("invalid route pattern")

type PartKind int

const (
	StaticPart PartKind = iota
	ParameterPart
	WildcardPart
)

// Part is one slash-separated segment of a pattern.
type Part struct {
	Kind  PartKind
	Value string // literal text for static parts, the name otherwise
	// Field is the binding field of "{name:field}".
	Field string
	// Constraint is the regular expression of "{name:[0-9]+}", kept verbatim.
	Constraint string
}

// Parse splits pattern into parts. It understands "{name}", "{name:field}",
// "{name:regex}", ":name", ":name?", "*name", "{*}" and "*".
func Parse(pattern string) ([]Part, error) {
	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return nil, nil
	}

	segments := strings.Split(trimmed, "/")
	parts := make([]Part, 0, len(segments))
	seen := make(map[string]struct{}, len(segments))

	for i, segment := range segments {
		part, err := parseSegment(segment)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
		}

		if part.Kind == WildcardPart && i != len(segments)-1 {
			return nil, fmt.Errorf("%w %q: wildcard must be the last segment", ErrInvalidPattern, pattern)
		}

		if part.Kind != StaticPart {
			if _, dup := seen[part.Value]; dup {
				return nil, fmt.Errorf("%w %q: parameter %q declared twice", ErrInvalidPattern, pattern, part.Value)
			}
			seen[part.Value] = struct{}{}
		}

		parts = append(parts, part)
	}

	return parts, nil
}

func parseSegment(segment string) (Part, error) {
	switch {
	case segment == "":
		return Part{}, errors.New("empty segment")
	case segment == "*" || segment == "{*}":
		return Part{Kind: WildcardPart, Value: "*"}, nil
	case strings.HasPrefix(segment, "*"):
		return Part{Kind: WildcardPart, Value: segment[1:]}, nil
	case strings.HasPrefix(segment, ":"):
		name := strings.TrimSuffix(segment[1:], "?")
		if !isIdentifier(name) {
			return Part{}, fmt.Errorf("bad parameter name %q", name)
		}
		return Part{Kind: ParameterPart, Value: name}, nil
	case strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}"):
		content := segment[1 : len(segment)-1]
		name, rest, hasRest := strings.Cut(content, ":")
		name = strings.TrimSuffix(name, "?")
		if !isIdentifier(name) {
			return Part{}, fmt.Errorf("bad parameter name %q", name)
		}

		part := Part{Kind: ParameterPart, Value: name}
		if hasRest {
			if isIdentifier(rest) {
				part.Field = rest
			} else {
				part.Constraint = rest
			}
		}
		return part, nil
	default:
		return Part{Kind: StaticPart, Value: segment}, nil
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// Normalize rewrites pattern into the canonical "/users/{user}" form so that
// the syntaxes of different routers compare equal. Invalid patterns are
// returned unchanged.
func Normalize(pattern string) string {
	parts, err := Parse(pattern)
	if err != nil {
		return pattern
	}

	var b strings.Builder
	for _, part := range parts {
		b.WriteByte('/')
		switch part.Kind {
		case ParameterPart:
			b.WriteString("{" + part.Value + "}")
		case WildcardPart:
			b.WriteString("*")
		default:
			b.WriteString(part.Value)
		}
	}

	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
