package lang

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Data
		wantErr bool
	}{
		{
			name:  "yaml scalars",
			input: "name: bob\nadmin: true\nguest: false\n",
			want: Data{
				"name":  String("bob"),
				"admin": Bool(true),
				"guest": Bool(false),
			},
		},
		{
			name:  "json document",
			input: `{"first": "Ada", "formal": true}`,
			want:  Data{"first": String("Ada"), "formal": Bool(true)},
		},
		{
			name:  "numbers become strings",
			input: "count: 42\nneg: -3\nratio: 1.5\n",
			want: Data{
				"count": String("42"),
				"neg":   String("-3"),
				"ratio": String("1.5"),
			},
		},
		{
			name:  "quoted boolean stays a string",
			input: "flag: \"true\"\n",
			want:  Data{"flag": String("true")},
		},
		{
			name:  "dotted keys are flat",
			input: "user.name: ada\n",
			want:  Data{"user.name": String("ada")},
		},
		{name: "empty document", input: "", want: Data{}},
		{name: "nested mapping", input: "user:\n  name: ada\n", wantErr: true},
		{name: "sequence value", input: "tags: [a, b]\n", wantErr: true},
		{name: "null value", input: "missing: ~\n", wantErr: true},
		{name: "top-level sequence", input: "- a\n- b\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeData(strings.NewReader(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidValue) {
					t.Fatalf("error = %v, want %v", err, ErrInvalidValue)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeData_ErrorNamesKey(t *testing.T) {
	_, err := DecodeData(strings.NewReader("ok: x\nbad:\n  inner: y\n"))
	if err == nil {
		t.Fatal("expected error")
	}

	if !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("error %q does not name the key", err)
	}
}

func TestEncodeData(t *testing.T) {
	d := Data{"b": Bool(true), "a": String("x")}

	var buf bytes.Buffer
	if err := EncodeData(&buf, d); err != nil {
		t.Fatalf("encode error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "a: x\n") {
		t.Errorf("keys not sorted: %q", buf.String())
	}

	back, err := DecodeData(&buf)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if !reflect.DeepEqual(back, d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDataOf(t *testing.T) {
	d, err := DataOf(map[string]any{"a": "x", "b": false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := (Data{"a": String("x"), "b": Bool(false)}); !reflect.DeepEqual(d, want) {
		t.Errorf("got %v, want %v", d, want)
	}

	for _, bad := range []any{1, 2.5, nil, []string{"x"}, map[string]any{}} {
		_, err := DataOf(map[string]any{"k": bad})
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("DataOf(%v) error = %v, want %v", bad, err, ErrInvalidValue)
		}
	}
}

func TestData_KeysAndNative(t *testing.T) {
	d := Data{"z": String("1"), "a": Bool(true), "m": String("")}

	if got, want := d.Keys(), []string{"a", "m", "z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	want := map[string]any{"z": "1", "a": true, "m": ""}
	if got := d.Native(); !reflect.DeepEqual(got, want) {
		t.Errorf("Native() = %v, want %v", got, want)
	}

	if attrs := d.Attrs(); len(attrs) != 3 || attrs[0].Key != "a" {
		t.Errorf("Attrs() = %v", attrs)
	}
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		value Value
		want  bool
	}{
		{Bool(true), true},
		{Bool(false), false},
		{String("yes"), true},
		{String("0"), true},
		{String("False"), true},
		{String("false"), false},
		{String(""), false},
		{Value{}, false},
	}

	for _, tt := range tests {
		if got := tt.value.Truthy(); got != tt.want {
			t.Errorf("%#v.Truthy() = %v, want %v", tt.value.Any(), got, tt.want)
		}
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		input     string
		key, val  string
		wantError bool
	}{
		{input: "a=b", key: "a", val: "b"},
		{input: "a=", key: "a", val: ""},
		{input: "a=b=c", key: "a", val: "b=c"},
		{input: "user.name=Ada L", key: "user.name", val: "Ada L"},
		{input: "novalue", wantError: true},
		{input: "=x", wantError: true},
	}

	for _, tt := range tests {
		key, val, err := ParseAssignment(tt.input)
		if tt.wantError {
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("ParseAssignment(%q) error = %v, want %v", tt.input, err, ErrInvalidValue)
			}

			continue
		}

		if err != nil || key != tt.key || val != tt.val {
			t.Errorf("ParseAssignment(%q) = (%q, %q, %v), want (%q, %q)",
				tt.input, key, val, err, tt.key, tt.val)
		}
	}
}
