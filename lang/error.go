package lang

import (
	"errors"
	"log/slog"
	"strconv"
)

// Kind identifies the class of a template failure.
type Kind int

const (
	KindUnknown Kind = iota

	// Syntax errors, reported during parsing.
	KindExpectedIdentifier
	KindReservedWord
	KindUnclosedInterpolation
	KindMissingIfExpression
	KindUnclosedIf
	KindMissingEndAfterIf
	KindDuplicateElse
	KindMissingEndAfterElse
	KindEmptyText
	KindUnexpectedTrailingInput
	KindMaxDepthExceeded

	// Semantic errors, reported during evaluation.
	KindMissingValue
)

// String returns the name of the error kind.
func (k Kind) String() string {
	switch k {
	case KindExpectedIdentifier:
		return "ExpectedIdentifier"
	case KindReservedWord:
		return "ReservedWord"
	case KindUnclosedInterpolation:
		return "UnclosedInterpolation"
	case KindMissingIfExpression:
		return "MissingIfExpression"
	case KindUnclosedIf:
		return "UnclosedIf"
	case KindMissingEndAfterIf:
		return "MissingEndAfterIf"
	case KindDuplicateElse:
		return "DuplicateElse"
	case KindMissingEndAfterElse:
		return "MissingEndAfterElse"
	case KindEmptyText:
		return "EmptyText"
	case KindUnexpectedTrailingInput:
		return "UnexpectedTrailingInput"
	case KindMaxDepthExceeded:
		return "MaxDepthExceeded"
	case KindMissingValue:
		return "MissingValue"
	default:
		return "Unknown"
	}
}

// Phase reports whether errors of this kind are raised by the parser or by
// the evaluator.
func (k Kind) Phase() Phase {
	if k == KindMissingValue {
		return PhaseRuntime
	}

	return PhaseParse
}

// Phase distinguishes syntactic failures from semantic ones.
type Phase int

const (
	PhaseParse   Phase = iota // parse
	PhaseRuntime              // runtime
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseParse:
		return "parse"
	case PhaseRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per kind. Use [errors.Is] to classify an error
// returned by [Parse], [Evaluate], or [Run]:
//
//	if errors.Is(err, lang.ErrMissingValue) { ... }
var (
	ErrExpectedIdentifier      = sentinel(KindExpectedIdentifier)
	ErrReservedWord            = sentinel(KindReservedWord)
	ErrUnclosedInterpolation   = sentinel(KindUnclosedInterpolation)
	ErrMissingIfExpression     = sentinel(KindMissingIfExpression)
	ErrUnclosedIf              = sentinel(KindUnclosedIf)
	ErrMissingEndAfterIf       = sentinel(KindMissingEndAfterIf)
	ErrDuplicateElse           = sentinel(KindDuplicateElse)
	ErrMissingEndAfterElse     = sentinel(KindMissingEndAfterElse)
	ErrEmptyText               = sentinel(KindEmptyText)
	ErrUnexpectedTrailingInput = sentinel(KindUnexpectedTrailingInput)
	ErrMaxDepthExceeded        = sentinel(KindMaxDepthExceeded)
	ErrMissingValue            = sentinel(KindMissingValue)
)

// ErrInvalidValue is returned when a data context entry is neither a string
// nor a boolean. It is not a template error and carries no offset.
var ErrInvalidValue = errors.New("invalid data value")

// Error is a template failure: a human-readable message and the byte offset
// into the template source where it was detected.
//
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind   Kind
	msg    string
	offset int
	name   string      // offending identifier, if any
	attrs  []slog.Attr // attributes for structured logging
}

func sentinel(kind Kind) *Error {
	return &Error{kind: kind, msg: kind.String(), offset: -1}
}

func newError(kind Kind, offset int, msg string) *Error {
	return &Error{kind: kind, msg: msg, offset: offset}
}

// Error returns the diagnostic message without position information.
func (e *Error) Error() string { return e.msg }

// Message returns the diagnostic message.
func (e *Error) Message() string { return e.msg }

// Offset returns the zero-based byte offset into the template source.
func (e *Error) Offset() int { return e.offset }

// Kind returns the class of failure.
func (e *Error) Kind() Kind { return e.kind }

// Phase returns whether the error is syntactic or semantic.
func (e *Error) Phase() Phase { return e.kind.Phase() }

// Name returns the identifier involved in the failure, if any.
func (e *Error) Name() string { return e.name }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	// Only sentinels (negative offset) match by kind.
	return ok && t.offset < 0 && t.kind == e.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+5)
	attrs = append(attrs,
		slog.String("error", e.msg),
		slog.String("kind", e.kind.String()),
		slog.String("phase", e.Phase().String()),
		slog.Int("offset", e.offset),
	)

	if e.name != "" {
		attrs = append(attrs, slog.String("name", e.name))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := *e
	c.attrs = newAttrs

	return &c
}

// Position resolves the error offset to a line and column within src.
func (e *Error) Position(src string) Position {
	return PositionOf(src, e.offset)
}

// String is like Error but prefixed with the phase and offset, e.g.
// "parse error at offset 3: Unclosed interpolation".
func (e *Error) String() string {
	return e.Phase().String() + " error at offset " +
		strconv.Itoa(e.offset) + ": " + e.msg
}

func errExpectedIdentifier(offset int) *Error {
	return newError(KindExpectedIdentifier, offset, "Expected identifier")
}

func errReservedWord(offset int, name string) *Error {
	e := newError(KindReservedWord, offset,
		"Reserved word {{"+name+"}} cannot be used as a variable")
	e.name = name

	return e
}

func errUnclosedInterpolation(offset int) *Error {
	return newError(KindUnclosedInterpolation, offset, "Unclosed interpolation")
}

func errMissingIfExpression(offset int) *Error {
	return newError(KindMissingIfExpression, offset,
		"Missing or invalid if expression")
}

func errUnclosedIf(offset int) *Error {
	return newError(KindUnclosedIf, offset, "Unclosed if")
}

func errMissingEndAfterIf(offset int) *Error {
	return newError(KindMissingEndAfterIf, offset,
		"Missing {{end}} after if block")
}

func errDuplicateElse(offset int) *Error {
	return newError(KindDuplicateElse, offset,
		"Encountered second {{else}} in if block")
}

func errMissingEndAfterElse(offset int) *Error {
	return newError(KindMissingEndAfterElse, offset,
		"Missing {{end}} after if/else block")
}

func errEmptyText(offset int) *Error {
	return newError(KindEmptyText, offset, "Expected at least one character")
}

func errUnexpectedTrailingInput(offset int) *Error {
	return newError(KindUnexpectedTrailingInput, offset,
		"Unexpected end of template")
}

func errMaxDepthExceeded(offset, depth int) *Error {
	return newError(KindMaxDepthExceeded, offset,
		"Maximum nesting depth "+strconv.Itoa(depth)+" exceeded")
}

func errMissingValue(offset int, name string) *Error {
	e := newError(KindMissingValue, offset,
		`Missing value for "{{`+name+`}}"`)
	e.name = name

	return e
}
