package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Template delimiters and keyword tags.
const (
	tagOpen  = "{{"
	tagClose = "}}"
	tagIf    = "{{if"
	tagElse  = "{{else}}"
	tagEnd   = "{{end}}"
)

// reserved words cannot be used as variable names.
var reserved = map[string]struct{}{
	"if":   {},
	"else": {},
	"end":  {},
}

// IsReserved reports whether name is a keyword of the template language.
func IsReserved(name string) bool {
	_, ok := reserved[name]

	return ok
}

// ValidIdentifier reports whether name can be referenced from a template,
// i.e. it matches [A-Za-z_][A-Za-z0-9_.]* and is not reserved.
func ValidIdentifier(name string) bool {
	if name == "" || !isIdentifierStart(name[0]) || IsReserved(name) {
		return false
	}

	for i := 1; i < len(name); i++ {
		if !isIdentifierContinue(name[i]) {
			return false
		}
	}

	return true
}

// ParseReader parses a template from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (Template, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Template{}, err
	}

	return Parse(ctx, string(data), opts...)
}

// Parse parses template source into a [Template].
//
// On failure the returned error is an [*Error] in [PhaseParse] describing the
// first syntax error encountered; no partial template is returned.
func Parse(ctx context.Context, src string, opts ...Option) (Template, error) {
	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(src)),
		slog.Int("max_depth", cfg.maxDepth),
	)

	p := &parser{src: src, maxDepth: cfg.maxDepth}

	nodes, err := p.template()
	if err != nil {
		cfg.logger.DebugContext(ctx, "parse failed", slog.Any("error", err))

		return Template{}, err
	}

	t := Template{Source: src, Nodes: nodes}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("node_count", len(nodes)),
		slog.Any("ast", t),
	)

	return t, nil
}

// parser holds the parser state.
//
// Each grammar rule takes the byte offset it starts at and returns what it
// recognized together with the offset just past it. A failing rule returns
// an error and leaves the caller's offset untouched, so the ordered choice
// in body can inspect alternatives without backtracking bookkeeping.
type parser struct {
	src      string
	depth    int // current conditional nesting
	maxDepth int
}

// template := body* EOF.
func (p *parser) template() ([]Node, *Error) {
	nodes := make([]Node, 0)

	for pos := 0; pos < len(p.src); {
		// {{else}} and {{end}} are only legal inside a conditional.
		if p.at(pos, tagElse) || p.at(pos, tagEnd) {
			return nil, errUnexpectedTrailingInput(pos)
		}

		n, next, err := p.body(pos)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, n)
		pos = next
	}

	return nodes, nil
}

// body := conditional | interpolation | text.
func (p *parser) body(pos int) (Node, int, *Error) {
	switch {
	case p.atIf(pos):
		return asNode[*Conditional](p.conditional(pos))

	case p.at(pos, tagOpen):
		return asNode[*Interpolation](p.interpolation(pos))

	default:
		return asNode[*Text](p.text(pos))
	}
}

// asNode widens a rule result to Node without wrapping a nil pointer.
func asNode[T Node](n T, next int, err *Error) (Node, int, *Error) {
	if err != nil {
		return nil, next, err
	}

	return n, next, nil
}

// block parses body nodes up to, but not including, the next {{else}} or
// {{end}} at the same nesting level. Reaching end of input first is reported
// with missingEnd.
func (p *parser) block(
	pos int,
	missingEnd func(offset int) *Error,
) ([]Node, int, *Error) {
	nodes := make([]Node, 0)

	for {
		switch {
		case pos >= len(p.src):
			return nil, pos, missingEnd(pos)

		case p.at(pos, tagElse), p.at(pos, tagEnd):
			return nodes, pos, nil
		}

		n, next, err := p.body(pos)
		if err != nil {
			return nil, pos, err
		}

		nodes = append(nodes, n)
		pos = next
	}
}

// conditional := "{{if" WS identifier "}}" body* ("{{else}}" body*)? "{{end}}".
func (p *parser) conditional(pos int) (*Conditional, int, *Error) {
	if p.depth >= p.maxDepth {
		return nil, pos, errMaxDepthExceeded(pos, p.maxDepth)
	}

	p.depth++
	defer func() { p.depth-- }()

	head := pos + len(tagIf)

	expr := p.whitespace(head)
	if expr == head {
		return nil, pos, errMissingIfExpression(head)
	}

	cond, next, err := p.identifier(expr)
	if err != nil {
		return nil, pos, errMissingIfExpression(expr)
	}

	if !p.at(next, tagClose) {
		return nil, pos, errUnclosedIf(next)
	}

	c := &Conditional{Condition: cond, Pos: pos}

	c.Consequent, next, err = p.block(next+len(tagClose), errMissingEndAfterIf)
	if err != nil {
		return nil, pos, err
	}

	if p.at(next, tagElse) {
		c.HasElse = true

		c.Alternate, next, err = p.block(next+len(tagElse), errMissingEndAfterElse)
		if err != nil {
			return nil, pos, err
		}

		if p.at(next, tagElse) {
			return nil, pos, errDuplicateElse(next)
		}
	}

	// block stops only at end of input (an error above), {{else}}, or {{end}}.
	return c, next + len(tagEnd), nil
}

// interpolation := "{{" identifier "}}".
func (p *parser) interpolation(pos int) (*Interpolation, int, *Error) {
	target, next, err := p.identifier(pos + len(tagOpen))
	if err != nil {
		return nil, pos, err
	}

	if !p.at(next, tagClose) {
		return nil, pos, errUnclosedInterpolation(next)
	}

	return &Interpolation{Target: target, Pos: pos}, next + len(tagClose), nil
}

// text := any non-empty run of characters not containing "{{".
func (p *parser) text(pos int) (*Text, int, *Error) {
	end := len(p.src)
	if i := strings.Index(p.src[pos:], tagOpen); i >= 0 {
		end = pos + i
	}

	if end == pos {
		return nil, pos, errEmptyText(pos)
	}

	return &Text{Content: p.src[pos:end], Pos: pos}, end, nil
}

// identifier := [A-Za-z_][A-Za-z0-9_.]*, excluding reserved words.
func (p *parser) identifier(pos int) (Identifier, int, *Error) {
	if pos >= len(p.src) || !isIdentifierStart(p.src[pos]) {
		return Identifier{}, pos, errExpectedIdentifier(pos)
	}

	end := pos + 1
	for end < len(p.src) && isIdentifierContinue(p.src[end]) {
		end++
	}

	name := p.src[pos:end]
	if IsReserved(name) {
		return Identifier{}, pos, errReservedWord(pos, name)
	}

	return Identifier{Name: name, Pos: pos}, end, nil
}

// whitespace returns the offset of the first non-space byte at or after pos.
func (p *parser) whitespace(pos int) int {
	for pos < len(p.src) && isSpace(p.src[pos]) {
		pos++
	}

	return pos
}

// Lookahead helpers. None of these consume input.

func (p *parser) at(pos int, lit string) bool {
	return strings.HasPrefix(p.src[pos:], lit)
}

// atIf reports whether a conditional header begins at pos: "{{if" not
// followed by an identifier character, so "{{iffy}}" is an interpolation.
func (p *parser) atIf(pos int) bool {
	if !p.at(pos, tagIf) {
		return false
	}

	next := pos + len(tagIf)

	return next >= len(p.src) || !isIdentifierContinue(p.src[next])
}

// Character classification

func isIdentifierStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentifierContinue(c byte) bool {
	return isIdentifierStart(c) || (c >= '0' && c <= '9') || c == '.'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}
