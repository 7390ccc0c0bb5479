package repl

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/curly/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "list", "set", "bool", "unset", "edit", "clear", "quit",
}

// keywords may open a tag in place of a variable name.
var keywords = []string{"if", "else", "end"}

// isIdentifierRune reports whether r can appear in a template variable name.
// Dots are part of the name; keys are flat.
func isIdentifierRune(r byte) bool {
	return r == '_' || r == '.' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// wordBounds returns the identifier under the cursor and its byte boundaries
// within input. The word is empty when the cursor does not touch an
// identifier character.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = max(0, min(cursor, len(input)))

	start = cursor
	for start > 0 && isIdentifierRune(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && isIdentifierRune(input[end]) {
		end++
	}

	return input[start:end], start, end
}

// openTag returns the offset of the "{{" enclosing the cursor, if the cursor
// sits inside a tag that has not been closed yet.
func openTag(input string, cursor int) (int, bool) {
	cursor = max(0, min(cursor, len(input)))

	open := strings.LastIndex(input[:cursor], "{{")
	if open < 0 || strings.Contains(input[open+2:cursor], "}}") {
		return 0, false
	}

	return open, true
}

// tagPosition classifies where in a tag a word begins.
type tagPosition int

const (
	tagNone      tagPosition = iota // outside any tag, or past its name
	tagName                         // directly after "{{"
	tagCondition                    // after "{{if" and whitespace
)

// classify reports the role of the word starting at wordStart.
func classify(input string, cursor, wordStart int) tagPosition {
	open, ok := openTag(input, cursor)
	if !ok || wordStart < open+2 {
		return tagNone
	}

	head := input[open+2 : wordStart]

	switch {
	case head == "":
		return tagName

	case len(head) > 2 && strings.HasPrefix(head, "if") &&
		strings.TrimSpace(head[2:]) == "":
		return tagCondition

	default:
		return tagNone
	}
}

// templateCandidates returns the completions for a word at the given tag
// position.
func templateCandidates(data lang.Data, pos tagPosition) []string {
	switch pos {
	case tagName:
		return append(slices.Clone(keywords), data.Keys()...)
	case tagCondition:
		return data.Keys()
	default:
		return nil
	}
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty word only lists candidates in a condition, where a
// variable name is the only valid continuation.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	if m.mode == modeCtrl {
		// Only the command word itself completes.
		if word == "" || strings.TrimSpace(input[:ws]) != "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		pos := classify(input, cursor, ws)
		candidates = templateCandidates(m.data, pos)

		if word == "" {
			if pos != tagCondition || len(candidates) == 0 {
				return nil, nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// valueHint describes the data value bound to the variable under the cursor,
// or returns "" when the cursor is not on a known variable inside a tag.
func valueHint(data lang.Data, input string, cursor int) string {
	word, ws, _ := wordBounds(input, cursor)
	if word == "" || classify(input, cursor, ws) == tagNone {
		return ""
	}

	v, ok := data.Lookup(word)
	if !ok {
		return ""
	}

	return word + " = " + formatValue(v)
}

// formatValue renders a data value the way it is written on the command
// line: booleans bare, strings quoted.
func formatValue(v lang.Value) string {
	if v.IsBool() {
		return v.String()
	}

	s := v.String()
	if len(s) > 40 {
		s = s[:37] + "..."
	}

	return strconv.Quote(s)
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Keywords are rendered in the keyword style.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base := suggestionStyle
	if slices.Contains(keywords, match.Str) {
		base = keywordStyle
	}

	highlight := base.Bold(true)

	if selected {
		base = selectedStyle
		highlight = selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
