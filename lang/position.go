package lang

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Position is a location in template source.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column, counted in runes
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// PositionOf resolves a byte offset within src to a line and column.
// Offsets outside src are clamped to its bounds.
func PositionOf(src string, offset int) Position {
	offset = max(0, min(offset, len(src)))

	head := src[:offset]
	line := strings.Count(head, "\n") + 1
	col := utf8.RuneCountInString(head[strings.LastIndexByte(head, '\n')+1:]) + 1

	return Position{Offset: offset, Line: line, Column: col}
}

// Snippet returns the source line containing offset and a second line with
// a caret under the offending column, each terminated by a newline.
func Snippet(src string, offset int) (line, caret string) {
	pos := PositionOf(src, offset)

	start := strings.LastIndexByte(src[:pos.Offset], '\n') + 1

	end := strings.IndexByte(src[pos.Offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += pos.Offset
	}

	line = src[start:end]

	// Preserve tabs so the caret lines up with the rendered source line.
	var pad strings.Builder
	for _, r := range src[start:pos.Offset] {
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
	}

	return line + "\n", pad.String() + "^\n"
}
