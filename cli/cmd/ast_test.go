package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/curly/lang"
)

func TestASTRun(t *testing.T) {
	const src = "a{{if c}}{{x}}{{else}}b{{end}}"

	t.Run("tree", func(t *testing.T) {
		ctx, out, _ := testStreams(src)

		if err := (&AST{Template: "-", Format: "tree"}).Run(ctx); err != nil {
			t.Fatalf("Run() error: %v", err)
		}

		want := "0: Text(\"a\")\n1: If(c) Else\n  9: Interpolation(x)\nElse\n  22: Text(\"b\")\n"
		if out.String() != want {
			t.Errorf("tree = %q, want %q", out.String(), want)
		}
	})

	t.Run("json", func(t *testing.T) {
		ctx, out, _ := testStreams(src)

		if err := (&AST{Template: "-", Format: "json", Indent: 2}).Run(ctx); err != nil {
			t.Fatalf("Run() error: %v", err)
		}

		var nodes []map[string]any
		if err := json.Unmarshal(out.Bytes(), &nodes); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}

		if len(nodes) != 2 || nodes[0]["type"] != "text" || nodes[1]["type"] != "conditional" {
			t.Errorf("nodes = %v", nodes)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		ctx, out, _ := testStreams(src)

		if err := (&AST{Template: "-", Format: "yaml", Indent: 2}).Run(ctx); err != nil {
			t.Fatalf("Run() error: %v", err)
		}

		for _, want := range []string{"type: text", "type: conditional", "name: c", "hasElse: true"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("yaml output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("syntax_error", func(t *testing.T) {
		ctx, out, diag := testStreams("{{end}}")

		err := (&AST{Template: "-", Format: "tree"}).Run(ctx)
		if !errors.Is(err, lang.ErrUnexpectedTrailingInput) {
			t.Errorf("Run() error = %v, want ErrUnexpectedTrailingInput", err)
		}

		if out.Len() != 0 || diag.Len() == 0 {
			t.Errorf("stdout = %q, stderr = %q", out, diag)
		}
	})
}
