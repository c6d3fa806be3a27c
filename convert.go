package routebind

import (
	"encoding"
	"reflect"

	"github.com/golobby/cast"

	"github.com/danpasecinic/routebind/internal/descriptor"
	rt "github.com/danpasecinic/routebind/internal/reflect"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// scalarTypes maps a kind onto the predeclared type strings are parsed into
// before converting to the named parameter type.
var scalarTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
	reflect.String:  reflect.TypeFor[string](),
}

// convertArgument makes value assignable to the Go type of p.
func convertArgument(p *descriptor.Parameter, value any) (reflect.Value, error) {
	want := p.GoType()

	if value == nil {
		if rt.Nillable(want) {
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, errArgumentMismatch(p.Name(), want.String(), value)
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(want) {
		return v, nil
	}

	if s, ok := value.(string); ok {
		if out, ok := convertString(want, s); ok {
			return out, nil
		}
		return reflect.Value{}, errArgumentMismatch(p.Name(), want.String(), value)
	}

	if isNumeric(v.Kind()) && isNumeric(want.Kind()) {
		return v.Convert(want), nil
	}

	return reflect.Value{}, errArgumentMismatch(p.Name(), want.String(), value)
}

func convertString(want reflect.Type, s string) (reflect.Value, bool) {
	switch {
	case reflect.PointerTo(want).Implements(textUnmarshalerType):
		ptr := reflect.New(want)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, false
		}
		return ptr.Elem(), true
	case want.Kind() == reflect.Ptr && want.Implements(textUnmarshalerType):
		ptr := reflect.New(want.Elem())
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, false
		}
		return ptr, true
	case descriptor.IsEnum(want):
		return reflect.Value{}, false
	}

	base, ok := scalarTypes[want.Kind()]
	if !ok {
		return reflect.Value{}, false
	}

	out, err := cast.FromType(s, base)
	if err != nil {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(out).Convert(want), true
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
