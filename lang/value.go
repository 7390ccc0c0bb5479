package lang

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Value is a data context entry: either a string or a boolean.
// The zero Value is the empty string.
type Value struct {
	str    string
	b      bool
	isBool bool
}

// String returns a Value holding s.
func String(s string) Value { return Value{str: s} }

// Bool returns a Value holding b.
func Bool(b bool) Value { return Value{b: b, isBool: true} }

// IsBool reports whether v holds a boolean.
func (v Value) IsBool() bool { return v.isBool }

// String returns the textual form of v: strings verbatim, booleans as
// "true" or "false".
func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.b)
	}

	return v.str
}

// Truthy reports whether v selects the consequent of a conditional.
// Booleans are truthy when true. Strings are truthy when non-empty and not
// equal to "false".
func (v Value) Truthy() bool {
	if v.isBool {
		return v.b
	}

	return v.str != "" && v.str != "false"
}

// Any returns v as a native string or bool.
func (v Value) Any() any {
	if v.isBool {
		return v.b
	}

	return v.str
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	if v.isBool {
		return slog.BoolValue(v.b)
	}

	return slog.StringValue(v.str)
}

// Data is the flat key-value context a template is evaluated against.
// Keys are looked up verbatim; a dotted name such as "a.b" is a single key.
type Data map[string]Value

// Lookup returns the value bound to name.
func (d Data) Lookup(name string) (Value, bool) {
	v, ok := d[name]

	return v, ok
}

// Keys returns the keys of d in sorted order.
func (d Data) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// Native returns d as a map of native string and bool values.
func (d Data) Native() map[string]any {
	m := make(map[string]any, len(d))
	for k, v := range d {
		m[k] = v.Any()
	}

	return m
}

// DataOf converts a loosely typed map into a [Data] context.
// Each value must be a string or a bool; anything else is rejected with an
// error wrapping [ErrInvalidValue] that names the key.
func DataOf(m map[string]any) (Data, error) {
	d := make(Data, len(m))

	for _, k := range slices.Sorted(maps.Keys(m)) {
		switch v := m[k].(type) {
		case string:
			d[k] = String(v)
		case bool:
			d[k] = Bool(v)
		default:
			return nil, fmt.Errorf("%w: %q has type %s",
				ErrInvalidValue, k, typeName(v))
		}
	}

	return d, nil
}

// ParseAssignment parses "key=value" into its parts. The value is taken
// verbatim after the first '='.
func ParseAssignment(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: expected key=value, got %q",
			ErrInvalidValue, s)
	}

	return key, value, nil
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}

	return fmt.Sprintf("%T", v)
}
