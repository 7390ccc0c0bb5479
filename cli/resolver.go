package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads a flat YAML mapping of
// flag names to values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Values are converted as follows:
//   - Keys name flags with hyphens ("log-level") or underscores
//     ("log_level")
//   - Strings and booleans are passed through
//   - Numbers are passed as their decimal string form, which kong parses
//   - Sequences of scalars are passed element-wise to slice flags
//
// Example config file:
//
//	log-level: debug
//	log-format: json
//	log-pretty: false
//	max-depth: 64
//
// Command-line flags override config file values. An empty file resolves
// nothing; a malformed file is an error so that typos are not silently
// ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	c := make(config, len(raw))

	for key, val := range raw {
		v, err := flagString(val)
		if err != nil {
			return nil, fmt.Errorf("configuration key %q: %w", key, err)
		}

		c[strings.ReplaceAll(key, "_", "-")] = v
	}

	return c, nil
}

// config implements [kong.Resolver] for YAML configuration files.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed; unknown keys may belong to other commands.
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Keys were normalized to hyphens; nil lets kong use defaults.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}

// flagString converts a decoded YAML value into a form kong can assign.
func flagString(v any) (any, error) {
	switch v := v.(type) {
	case string, bool:
		return v, nil

	case int:
		return strconv.Itoa(v), nil

	case int64:
		return strconv.FormatInt(v, 10), nil

	case uint64:
		return strconv.FormatUint(v, 10), nil

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil

	case []any:
		items := make([]any, len(v))

		for i, item := range v {
			s, err := flagString(item)
			if err != nil {
				return nil, err
			}

			if _, nested := s.([]any); nested {
				return nil, fmt.Errorf("nested sequence")
			}

			items[i] = s
		}

		return items, nil

	case nil:
		return nil, fmt.Errorf("null value")

	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}
