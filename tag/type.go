package tag

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Type selects how a resolved value is coerced.
type Type int

const (
	Any Type = iota
	String
	StrictString
	Integer
	Float
	Boolean
	Iterable
	List
	Mapping
)

var typeNames = [...]string{
	Any:          "any",
	String:       "string",
	StrictString: "strict_string",
	Integer:      "integer",
	Float:        "float",
	Boolean:      "boolean",
	Iterable:     "iterable",
	List:         "list",
	Mapping:      "mapping",
}

var typeAliases = map[string]Type{
	"int":  Integer,
	"bool": Boolean,
	"dict": Mapping,
	"map":  Mapping,
	"str":  String,
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}

	return typeNames[t]
}

// ParseType returns the Type named s. Matching ignores case, and common short
// names ("int", "bool", "dict") are accepted.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Any, nil
	}

	for t, n := range typeNames {
		if n == name {
			return Type(t), nil
		}
	}

	if t, ok := typeAliases[name]; ok {
		return t, nil
	}

	return Any, ErrUnknownType.Wrapf("%q", s)
}

// UnmarshalText decodes a Type from its name.
func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}

	*t = v

	return nil
}

// MarshalText encodes t as its name.
func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Fallback returns the value substituted when coercion to t fails.
func (t Type) Fallback() any {
	switch t {
	case String, StrictString:
		return ""
	case Integer:
		return 0
	case Float:
		return 0.0
	case Boolean:
		return false
	case Iterable, List:
		return []any{}
	case Mapping:
		return map[string]any{}
	default:
		return nil
	}
}

// Coerce converts v to t.
// On failure it returns the fallback and a message describing the fault.
func (t Type) Coerce(v any) (any, string, bool) {
	var (
		out any
		ok  bool
	)

	switch t {
	case String:
		out, ok = toString(v), true
	case StrictString:
		out, ok = v.(string)
	case Integer:
		out, ok = toInt(v)
	case Float:
		out, ok = toFloat(v)
	case Boolean:
		out, ok = Truthy(v), true
	case Iterable:
		out, ok = v, isKind(v, reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan)
	case List:
		out, ok = v, isKind(v, reflect.Slice, reflect.Array)
	case Mapping:
		out, ok = v, isKind(v, reflect.Map)
	default:
		return v, "", true
	}

	if !ok {
		return t.Fallback(), t.failure(v), false
	}

	return out, "", true
}

func (t Type) failure(v any) string {
	switch t {
	case StrictString:
		return describe(v) + " is not a string"
	case Iterable:
		return describe(v) + " is not iterable"
	case List:
		return describe(v) + " is not a list"
	case Mapping:
		return describe(v) + " is not a mapping"
	default:
		return fmt.Sprintf("%s could not be converted to %s", describe(v), t)
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, true
		}

		return 0, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))

		return i, err == nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, false
		}

		return int(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}

		return int(f), true
	}

	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, true
		}

		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)

		return f, err == nil
	}

	return number(v)
}

// number returns v as a float64 when v has a numeric kind.
func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}

	return 0, false
}

func isKind(v any, kinds ...reflect.Kind) bool {
	k := reflect.ValueOf(v).Kind()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}

	return false
}

// Truthy reports whether v counts as true: non-nil, non-zero, and non-empty.
func Truthy(v any) bool {
	if v == nil {
		return false
	}

	if b, ok := v.(bool); ok {
		return b
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	}

	if f, ok := number(v); ok {
		return f != 0
	}

	return true
}
