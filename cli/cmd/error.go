package cmd

import (
	"errors"
	"log/slog"

	"github.com/ardnew/curly/lang"
)

// Error is a command failure. Values derived from a sentinel with Wrap or
// With match that sentinel under [errors.Is].
type Error struct {
	msg   string
	cause error
	attrs []slog.Attr
	root  *Error // sentinel this value was derived from; nil for sentinels
}

// NewError returns a sentinel with the given message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error returns "msg: cause", dropping whichever part is empty.
func (e *Error) Error() string {
	switch {
	case e.cause == nil:
		return e.msg
	case e.msg == "":
		return e.cause.Error()
	default:
		return e.msg + ": " + e.cause.Error()
	}
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.root != nil && e.root == t
}

// LogValue groups the message, cause, and attributes. A template error in
// the cause chain also contributes its kind, phase, and offset.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+5)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))

		var terr *lang.Error
		if errors.As(e.cause, &terr) {
			attrs = append(attrs,
				slog.String("kind", terr.Kind().String()),
				slog.String("phase", terr.Phase().String()),
				slog.Int("offset", terr.Offset()),
			)
		}
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e with cause attached.
func (e *Error) Wrap(cause error) *Error {
	d := e.derive()
	d.cause = cause

	return d
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	d := e.derive()
	d.attrs = append(d.attrs, attrs...)

	return d
}

func (e *Error) derive() *Error {
	root := e.root
	if root == nil {
		root = e
	}

	return &Error{
		msg:   e.msg,
		cause: e.cause,
		attrs: append([]slog.Attr(nil), e.attrs...),
		root:  root,
	}
}

var (
	// ErrTemplate reports a template syntax or evaluation error whose
	// diagnostic has already been written.
	ErrTemplate = NewError("template failed")

	ErrReadTemplate  = NewError("read template")
	ErrReadData      = NewError("read data")
	ErrStdinConflict = NewError("stdin named more than once")
	ErrRepl          = NewError("run repl")
	ErrJSONMarshal   = NewError("marshal JSON")
	ErrYAMLMarshal   = NewError("marshal YAML")
	ErrWriteConfig   = NewError("write configuration file")
	ErrFileExists    = NewError("file exists (use --force to overwrite)")
)
