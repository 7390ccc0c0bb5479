package lang

import (
	"context"
	"errors"
	"testing"
)

func TestEvaluate_Conditionals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		data  Data
		want  string
	}{
		{
			name:  "true",
			input: "{{if c}}yes{{end}}",
			data:  Data{"c": Bool(true)},
			want:  "yes",
		},
		{
			name:  "false without else",
			input: "{{if c}}yes{{end}}",
			data:  Data{"c": Bool(false)},
			want:  "",
		},
		{
			name:  "false with else",
			input: "{{if c}}yes{{else}}no{{end}}",
			data:  Data{"c": Bool(false)},
			want:  "no",
		},
		{
			name:  "non-empty string",
			input: "{{if c}}yes{{else}}no{{end}}",
			data:  Data{"c": String("0")},
			want:  "yes",
		},
		{
			name:  "empty string",
			input: "{{if c}}yes{{else}}no{{end}}",
			data:  Data{"c": String("")},
			want:  "no",
		},
		{
			name:  "string false",
			input: "{{if c}}yes{{else}}no{{end}}",
			data:  Data{"c": String("false")},
			want:  "no",
		},
		{
			name:  "nested both true",
			input: "{{if a}}{{if b}}X{{end}}{{end}}",
			data:  Data{"a": Bool(true), "b": Bool(true)},
			want:  "X",
		},
		{
			name:  "nested inner false",
			input: "{{if a}}{{if b}}X{{end}}{{end}}",
			data:  Data{"a": Bool(true), "b": Bool(false)},
			want:  "",
		},
		{
			name:  "nested outer false",
			input: "{{if a}}{{if b}}X{{end}}{{end}}",
			data:  Data{"a": Bool(false), "b": Bool(true)},
			want:  "",
		},
		{
			name:  "interpolation in branches",
			input: "Dear {{if formal}}{{title}} {{last}}{{else}}{{first}}{{end}},",
			data: Data{
				"formal": Bool(true),
				"title":  String("Dr."),
				"first":  String("Ada"),
				"last":   String("Lovelace"),
			},
			want: "Dear Dr. Lovelace,",
		},
		{
			name:  "unused branch may reference missing keys",
			input: "{{if c}}ok{{else}}{{missing}}{{end}}",
			data:  Data{"c": Bool(true)},
			want:  "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(context.Background(), tt.input, tt.data)
			if err != nil {
				t.Fatalf("Run(%q) unexpected error: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("Run(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Values(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{value: String("value"), want: "value"},
		{value: String(""), want: ""},
		{value: String("{{not a tag}}"), want: "{{not a tag}}"},
		{value: Bool(true), want: "true"},
		{value: Bool(false), want: "false"},
	}

	for _, tt := range tests {
		got, err := Run(context.Background(), "{{key}}", Data{"key": tt.value})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got != tt.want {
			t.Errorf("Run({{key}}) with %v = %q, want %q", tt.value.Any(), got, tt.want)
		}
	}
}

func TestEvaluate_MissingValue(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		data       Data
		wantName   string
		wantOffset int
	}{
		{
			name:       "interpolation",
			input:      "hi {{first}} {{middle}} {{last}}!",
			data:       Data{"first": String("John"), "last": String("Doe")},
			wantName:   "middle",
			wantOffset: 13,
		},
		{
			name:       "condition",
			input:      "{{if c}}the condition is set{{end}}",
			data:       Data{},
			wantName:   "c",
			wantOffset: 0,
		},
		{
			name:       "nil data",
			input:      "x{{y}}",
			wantName:   "y",
			wantOffset: 1,
		},
		{
			name:       "dotted key is flat",
			input:      "{{user.name}}",
			data:       Data{"user": String("u"), "name": String("n")},
			wantName:   "user.name",
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Run(context.Background(), tt.input, tt.data)
			if !errors.Is(err, ErrMissingValue) {
				t.Fatalf("error = %v, want %v", err, ErrMissingValue)
			}

			if out != "" {
				t.Errorf("partial output %q returned with error", out)
			}

			var rerr *Error
			errors.As(err, &rerr)

			if rerr.Phase() != PhaseRuntime {
				t.Errorf("phase = %v, want %v", rerr.Phase(), PhaseRuntime)
			}

			if rerr.Name() != tt.wantName {
				t.Errorf("name = %q, want %q", rerr.Name(), tt.wantName)
			}

			wantMsg := `Missing value for "{{` + tt.wantName + `}}"`
			if rerr.Message() != wantMsg {
				t.Errorf("message = %q, want %q", rerr.Message(), wantMsg)
			}

			if rerr.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", rerr.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestEvaluate_DottedKey(t *testing.T) {
	got, err := Run(context.Background(), "{{user.name}}", Data{"user.name": String("ada")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "ada" {
		t.Errorf("got %q, want %q", got, "ada")
	}
}

func TestEvaluate_HandBuiltDepth(t *testing.T) {
	inner := &Conditional{
		Condition:  Identifier{Name: "c"},
		Consequent: []Node{&Text{Content: "x"}},
		Pos:        8,
	}
	tmpl := Template{Nodes: []Node{&Conditional{
		Condition:  Identifier{Name: "c"},
		Consequent: []Node{inner},
	}}}

	data := Data{"c": Bool(true)}

	got, err := Evaluate(context.Background(), tmpl, data, WithMaxDepth(2))
	if err != nil || got != "x" {
		t.Fatalf("Evaluate = (%q, %v), want (x, nil)", got, err)
	}

	_, err = Evaluate(context.Background(), tmpl, data, WithMaxDepth(1))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("error = %v, want %v", err, ErrMaxDepthExceeded)
	}

	var rerr *Error
	errors.As(err, &rerr)

	if rerr.Offset() != 8 {
		t.Errorf("offset = %d, want 8", rerr.Offset())
	}
}

type foreignNode struct{}

func (foreignNode) Offset() int    { return 0 }
func (foreignNode) String() string { return "foreign" }
func (foreignNode) node()          {}

func TestEvaluate_UnknownNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown node type")
		}
	}()

	_, _ = Evaluate(context.Background(), Template{Nodes: []Node{foreignNode{}}}, nil)
}

func TestEvaluate_Reuse(t *testing.T) {
	tmpl, err := Parse(context.Background(), "{{greeting}}, {{name}}!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, want := range map[string]string{
		"world":  "hello, world!",
		"gopher": "hello, gopher!",
	} {
		got, err := Evaluate(context.Background(), tmpl, Data{
			"greeting": String("hello"),
			"name":     String(name),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
