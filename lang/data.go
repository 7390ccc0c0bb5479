package lang

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// DecodeData reads a YAML (or JSON) document holding a flat mapping and
// returns it as a [Data] context.
//
// Scalar values are converted as follows:
//   - strings are kept verbatim
//   - booleans are kept as booleans
//   - integers and floats are converted to their decimal string form
//
// Nested mappings, sequences, and null values are rejected with an error
// wrapping [ErrInvalidValue]; the data context is flat by construction. An
// empty document yields an empty context.
func DecodeData(r io.Reader) (Data, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any

	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	d := make(Data, len(raw))

	for _, k := range slices.Sorted(maps.Keys(raw)) {
		v, err := scalar(raw[k])
		if err != nil {
			return nil, fmt.Errorf("%w: %q %w", ErrInvalidValue, k, err)
		}

		d[k] = v
	}

	return d, nil
}

// EncodeData writes d as a YAML mapping with sorted keys.
func EncodeData(w io.Writer, d Data) error {
	m := make(yaml.MapSlice, 0, len(d))
	for _, k := range d.Keys() {
		m = append(m, yaml.MapItem{Key: k, Value: d[k].Any()})
	}

	return yaml.NewEncoder(w).Encode(m)
}

func scalar(v any) (Value, error) {
	switch v := v.(type) {
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return String(strconv.Itoa(v)), nil
	case int64:
		return String(strconv.FormatInt(v, 10)), nil
	case uint64:
		return String(strconv.FormatUint(v, 10)), nil
	case float64:
		return String(strconv.FormatFloat(v, 'f', -1, 64)), nil
	default:
		return Value{}, fmt.Errorf("has unsupported type %s", typeName(v))
	}
}

// Attrs returns the context as slog attributes, sorted by key.
func (d Data) Attrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(d))
	for _, k := range d.Keys() {
		attrs = append(attrs, slog.Any(k, d[k]))
	}

	return attrs
}
