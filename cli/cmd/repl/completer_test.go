package repl

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/curly/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"in_tag", "{{na}}", 4, "na", 2, 4},
		{"dotted", "{{a.b", 5, "a.b", 2, 5},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"after_space", "{{if co", 7, "co", 5, 7},
		{"empty_after_open", "{{", 2, "", 2, 2},
		{"empty_after_space", "{{if ", 5, "", 5, 5},
		{"cursor_past_end", "ab", 10, "ab", 0, 2},
		{"cursor_negative", "ab", -1, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  tagPosition
	}{
		{"text", "hello", tagNone},
		{"name", "{{na", tagName},
		{"keywordlike_name", "{{iffy", tagName},
		{"condition", "{{if co", tagCondition},
		{"condition_extra_space", "{{if   co", tagCondition},
		{"leading_space", "{{ na", tagNone},
		{"closed_tag", "{{a}} na", tagNone},
		{"second_tag", "{{a}}{{na", tagName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor := len(tt.input)
			_, ws, _ := wordBounds(tt.input, cursor)

			if got := classify(tt.input, cursor, ws); got != tt.want {
				t.Errorf("classify(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func newTestModel(data lang.Data, history *History) model {
	if history == nil {
		history = NewHistory("")
	}

	return newModel(context.Background(), data, history, Config{})
}

func setInput(m *model, input string) {
	m.input.SetValue(input)
	m.input.SetCursor(len(input))
}

func matchStrings(matches fuzzy.Matches) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}

	slices.Sort(out)

	return out
}

func TestComputeMatches(t *testing.T) {
	data := lang.Data{
		"name":  lang.String("bob"),
		"nap":   lang.Bool(true),
		"other": lang.String("x"),
	}

	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
	}{
		{"tag_name", modeTemplate, "{{na", []string{"nap", "name"}},
		{"keyword", modeTemplate, "{{els", []string{"else"}},
		{"condition_empty_word", modeTemplate, "{{if ", []string{"name", "nap", "other"}},
		{"condition_word", modeTemplate, "{{if oth", []string{"other"}},
		{"outside_tag", modeTemplate, "na", nil},
		{"empty_tag", modeTemplate, "{{", nil},
		{"closed_tag", modeTemplate, "{{x}} na", nil},
		{"ctrl_command", modeCtrl, "qu", []string{"quit"}},
		{"ctrl_argument", modeCtrl, "set na", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(data, nil)
			if tt.mode == modeCtrl {
				m = m.switchToMode(modeCtrl)
			}

			setInput(&m, tt.input)

			matches, _, _, _ := m.computeMatches()

			got := matchStrings(matches)
			want := slices.Clone(tt.want)
			slices.Sort(want)

			if !slices.Equal(got, want) {
				t.Errorf("computeMatches(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestComputeMatches_CtrlFuzzy(t *testing.T) {
	m := newTestModel(nil, nil).switchToMode(modeCtrl)
	setInput(&m, "se")

	matches, _, ws, we := m.computeMatches()
	if ws != 0 || we != 2 {
		t.Errorf("bounds = (%d, %d), want (0, 2)", ws, we)
	}

	if !slices.Contains(matchStrings(matches), "set") {
		t.Errorf("matches %v do not contain set", matchStrings(matches))
	}
}

func TestValueHint(t *testing.T) {
	data := lang.Data{
		"name": lang.String("bob"),
		"ok":   lang.Bool(false),
	}

	tests := []struct {
		name   string
		input  string
		cursor int
		want   string
	}{
		{"string", "{{name", 6, `name = "bob"`},
		{"bool_condition", "{{if ok", 7, "ok = false"},
		{"unknown", "{{nope", 6, ""},
		{"outside_tag", "name", 4, ""},
		{"after_close", "{{name}}", 8, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := valueHint(data, tt.input, tt.cursor); got != tt.want {
				t.Errorf("valueHint(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	long := strings.Repeat("x", 50)

	tests := []struct {
		name string
		in   lang.Value
		want string
	}{
		{"bool", lang.Bool(true), "true"},
		{"string", lang.String("a b"), `"a b"`},
		{"bool_like_string", lang.String("true"), `"true"`},
		{"long", lang.String(long), `"` + strings.Repeat("x", 37) + `..."`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Errorf("formatValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Matches{
		{Str: "alpha"},
		{Str: "beta"},
		{Str: "gamma"},
	}

	if got := renderCandidateBar(nil, -1, false, 80); got != "" {
		t.Errorf("empty matches rendered %q", got)
	}

	if got := renderCandidateBar(matches, -1, false, 0); got != "" {
		t.Errorf("zero width rendered %q", got)
	}

	full := renderCandidateBar(matches, -1, false, 80)
	if w := lipgloss.Width(full); w != len("alpha  beta  gamma") {
		t.Errorf("full bar width = %d, want %d", w, len("alpha  beta  gamma"))
	}

	narrow := renderCandidateBar(matches, 1, true, 12)
	if !strings.HasSuffix(narrow, hintStyle.Render("...")) {
		t.Errorf("narrow bar %q is not ellipsized", narrow)
	}

	if w := lipgloss.Width(narrow); w > 12 {
		t.Errorf("narrow bar width = %d, want <= 12", w)
	}
}
