package cli

import (
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	src := `
log-level: debug
log_pretty: false
max-depth: 64
ratio: 1.5
set:
  - a=1,2
  - b=3
`

	r, err := resolve(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-pretty", false},
		{"max-depth", "64"},
		{"ratio", "1.5"},
		{"set", []any{"a=1,2", "b=3"}},
		{"absent", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolveEmpty(t *testing.T) {
	r, err := resolve(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if got, _ := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-level"}}); got != nil {
		t.Errorf("empty config resolved %v", got)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"malformed", "log-level: [unclosed"},
		{"null", "log-level: null"},
		{"nested_map", "log:\n  level: debug"},
		{"nested_sequence", "set:\n  - [a, b]"},
		{"not_a_mapping", "- a\n- b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := resolve(strings.NewReader(tt.src)); err == nil {
				t.Errorf("resolve(%q) succeeded", tt.src)
			}
		})
	}
}

type kongCLI struct {
	Log      logConfig `embed:"" prefix:"log-"`
	MaxDepth int       `default:"256"`
}

func TestResolveWithKong(t *testing.T) {
	var cli kongCLI

	loader := func(r *strings.Reader) kong.Option {
		res, err := resolve(r)
		if err != nil {
			t.Fatal(err)
		}

		return kong.Resolvers(res)
	}

	parser, err := kong.New(&cli,
		cli.Log.vars(),
		loader(strings.NewReader("log-level: warn\nmax_depth: 8\n")),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--log-level=error"}); err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if cli.Log.Level != "error" {
		t.Errorf("command line should override config: level = %q", cli.Log.Level)
	}

	if cli.MaxDepth != 8 {
		t.Errorf("max depth = %d, want 8", cli.MaxDepth)
	}
}
