package reflect

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

var (
	typeKeyCache sync.Map
	errorType    = reflect.TypeFor[error]()
)

func TypeKey[T any]() string {
	return KeyOf(reflect.TypeFor[T]())
}

// KeyOf returns the fully qualified name of t: package path plus type name,
// with composite types spelled out recursively.
func KeyOf(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if cached, ok := typeKeyCache.Load(t); ok {
		return cached.(string)
	}

	key := buildTypeKey(t)
	typeKeyCache.Store(t, key)
	return key
}

func buildTypeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + buildTypeKey(t.Elem())
	case reflect.Slice:
		if t.Name() == "" {
			return "[]" + buildTypeKey(t.Elem())
		}
	case reflect.Array:
		if t.Name() == "" {
			return "[" + strconv.Itoa(t.Len()) + "]" + buildTypeKey(t.Elem())
		}
	case reflect.Map:
		if t.Name() == "" {
			return "map[" + buildTypeKey(t.Key()) + "]" + buildTypeKey(t.Elem())
		}
	case reflect.Func:
		if t.Name() == "" {
			return t.String()
		}
	}

	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func TypeKeyFromValue(v any) string {
	if v == nil {
		return "<nil>"
	}
	return KeyOf(reflect.TypeOf(v))
}

// IsNamed reports whether t is a named type or a pointer to one.
// Unnamed composites such as []T, map[K]V, func types and any are not.
func IsNamed(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr && t.Name() == "" {
		return t.Elem().Name() != ""
	}
	return t.Name() != ""
}

func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func Nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

func IsInterface[T any]() bool {
	return reflect.TypeFor[T]().Kind() == reflect.Interface
}

func Implements[T any](v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Implements(reflect.TypeFor[T]())
}

// Satisfies reports whether t is capability itself or, for interface
// capabilities, implements it.
func Satisfies(t, capability reflect.Type) bool {
	if t == nil || capability == nil {
		return false
	}
	if t == capability {
		return true
	}
	return capability.Kind() == reflect.Interface && t.Implements(capability)
}

type Signature struct {
	In           []reflect.Type
	Out          reflect.Type
	ReturnsError bool
	Variadic     bool
}

func FuncSignature(fn any) (Signature, error) {
	if fn == nil {
		return Signature{}, fmt.Errorf("expected a function, got nil")
	}

	t := reflect.TypeOf(fn)
	if t.Kind() != reflect.Func {
		return Signature{}, fmt.Errorf("expected a function, got %s", t.Kind())
	}

	return signatureOf(t, 0)
}

// MethodSignature describes m without its receiver.
func MethodSignature(m reflect.Method) (Signature, error) {
	return signatureOf(m.Type, 1)
}

func signatureOf(t reflect.Type, skip int) (Signature, error) {
	sig := Signature{Variadic: t.IsVariadic()}

	for i := skip; i < t.NumIn(); i++ {
		sig.In = append(sig.In, t.In(i))
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errorType {
			sig.ReturnsError = true
		} else {
			sig.Out = t.Out(0)
		}
	case 2:
		if t.Out(1) != errorType {
			return Signature{}, fmt.Errorf("second result of %s must be error", t)
		}
		sig.Out = t.Out(0)
		sig.ReturnsError = true
	default:
		return Signature{}, fmt.Errorf("%s returns %d values, at most 2 are supported", t, t.NumOut())
	}

	return sig, nil
}
