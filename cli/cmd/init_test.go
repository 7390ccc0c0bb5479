package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type testLevel string

type initCLI struct {
	Level   testLevel `default:"info"`
	Verbose bool
	Output  string
	Count   int `default:"5"`
	Tags    []string
	Mode    string `default:"cpu" name:"pprof-mode"`
	Version kong.VersionFlag
	Hidden  string `default:"x"   hidden:""`
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: confPath,
		"version":        "test",
	})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		force    bool
		existing bool
		wantErr  error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, existing: true},
		{name: "fail_without_force", existing: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "sub", "config.yaml")

			if tt.existing {
				if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
					t.Fatal(err)
				}

				if err := os.WriteFile(confPath, []byte("existing: content\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			ctx := initContext(t, confPath, "--verbose", "--tags=a,b")

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, tt.wantErr) {
					t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not YAML: %v\n%s", err, content)
			}

			want := map[string]string{
				"level":   "info",
				"verbose": "true",
				"count":   "5",
				"tags":    "[a b]",
			}

			if len(got) != len(want) {
				t.Errorf("config keys = %v, want %v", got, want)
			}

			for k, v := range want {
				if s := fmt.Sprint(got[k]); s != v {
					t.Errorf("config[%q] = %s, want %s", k, s, v)
				}
			}
		})
	}
}

func TestInitBuildConfigOrder(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, "unused", "--output=out.txt")

	config := (&Init{}).buildConfig(ctx)

	var keys []string
	for _, item := range config {
		keys = append(keys, fmt.Sprint(item.Key))
	}

	want := []string{"level", "verbose", "output", "count"}
	if fmt.Sprint(keys) != fmt.Sprint(want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestPlain(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, "unused", "--tags=x", "--count=-2")
	ktx := kongContextFrom(ctx)

	values := map[string]any{}

	for _, flag := range ktx.Model.Flags {
		if v, ok := flagValue(ktx, flag); ok {
			values[flag.Name] = v
		}
	}

	if v, ok := values["level"].(string); !ok || v != "info" {
		t.Errorf("named string type = %#v, want plain string", values["level"])
	}

	if v, ok := values["count"].(int64); !ok || v != -2 {
		t.Errorf("count = %#v, want int64(-2)", values["count"])
	}

	if _, ok := values["output"]; ok {
		t.Error("empty string flag should be omitted")
	}

	if v, ok := values["verbose"].(bool); !ok || v {
		t.Errorf("verbose = %#v, want false", values["verbose"])
	}
}
