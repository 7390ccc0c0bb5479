package lang

import "testing"

func TestPositionOf(t *testing.T) {
	src := "ab\ncd\n\tx✓y"

	tests := []struct {
		offset int
		want   Position
	}{
		{offset: 0, want: Position{Offset: 0, Line: 1, Column: 1}},
		{offset: 2, want: Position{Offset: 2, Line: 1, Column: 3}},
		{offset: 3, want: Position{Offset: 3, Line: 2, Column: 1}},
		{offset: 4, want: Position{Offset: 4, Line: 2, Column: 2}},
		{offset: 7, want: Position{Offset: 7, Line: 3, Column: 2}},
		// "✓" is three bytes but one column.
		{offset: 11, want: Position{Offset: 11, Line: 3, Column: 4}},
		{offset: -5, want: Position{Offset: 0, Line: 1, Column: 1}},
		{offset: 100, want: Position{Offset: len(src), Line: 3, Column: 5}},
	}

	for _, tt := range tests {
		if got := PositionOf(src, tt.offset); got != tt.want {
			t.Errorf("PositionOf(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestPosition_String(t *testing.T) {
	if got := (Position{Line: 3, Column: 14}).String(); got != "3:14" {
		t.Errorf("String() = %q, want %q", got, "3:14")
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		offset    int
		wantLine  string
		wantCaret string
	}{
		{
			name:      "single line",
			src:       "hi {{first",
			offset:    10,
			wantLine:  "hi {{first\n",
			wantCaret: "          ^\n",
		},
		{
			name:      "second line",
			src:       "one\ntwo {{x\nthree",
			offset:    8,
			wantLine:  "two {{x\n",
			wantCaret: "    ^\n",
		},
		{
			name:      "tabs preserved",
			src:       "\t\t{{}}",
			offset:    4,
			wantLine:  "\t\t{{}}\n",
			wantCaret: "\t\t  ^\n",
		},
		{
			name:      "start of input",
			src:       "{{else}}",
			offset:    0,
			wantLine:  "{{else}}\n",
			wantCaret: "^\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, caret := Snippet(tt.src, tt.offset)
			if line != tt.wantLine || caret != tt.wantCaret {
				t.Errorf("Snippet() = (%q, %q), want (%q, %q)",
					line, caret, tt.wantLine, tt.wantCaret)
			}
		})
	}
}

func TestError_Position(t *testing.T) {
	src := "line\n{{if}}x{{end}}"

	_, err := Parse(t.Context(), src)

	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error = %T, want *Error", err)
	}

	if got := perr.Position(src); got.Line != 2 || got.Column != 5 {
		t.Errorf("Position() = %v, want 2:5", got)
	}
}
