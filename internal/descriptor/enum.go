package descriptor

import "reflect"

// Enum is implemented by enumeration types. Cases is called on the zero
// value and lists every member. The backing representation follows the
// underlying kind: string kinds are string-backed, integer kinds are
// int-backed, anything else is not backed.
type Enum interface {
	Cases() []Enum
}

var enumType = reflect.TypeFor[Enum]()

func IsEnum(t reflect.Type) bool {
	return t != nil && t.Kind() != reflect.Interface && t.Implements(enumType)
}

func IsStringBackedEnum(t reflect.Type) bool {
	return IsEnum(t) && t.Kind() == reflect.String
}

// EnumTryFrom returns the member of the string-backed enum t whose backing
// value equals raw.
func EnumTryFrom(t reflect.Type, raw string) (reflect.Value, bool) {
	if !IsStringBackedEnum(t) {
		return reflect.Value{}, false
	}

	cases := reflect.Zero(t).Interface().(Enum).Cases()
	for _, c := range cases {
		v := reflect.ValueOf(c)
		if v.Type() == t && v.String() == raw {
			return v, true
		}
	}
	return reflect.Value{}, false
}
