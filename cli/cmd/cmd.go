package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/curly/lang"
	"github.com/ardnew/curly/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable with the given identifier, if a kong
// context is stored in ctx and defines it.
func kongVar(ctx context.Context, name string) (string, bool) {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return "", false
	}

	v, ok := ktx.Model.Vars()[name]

	return v, ok
}

type (
	streamsKey struct{}
	streams    struct {
		in   io.Reader
		out  io.Writer
		diag io.Writer
	}
)

// WithStreams returns a new context.Context whose commands read from in,
// write results to out, and write diagnostics to diag. A nil stream falls
// back to the corresponding standard stream.
func WithStreams(
	ctx context.Context,
	in io.Reader,
	out, diag io.Writer,
) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{in: in, out: out, diag: diag})
}

func streamsFrom(ctx context.Context) streams {
	s, _ := ctx.Value(streamsKey{}).(streams)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	if s.diag == nil {
		s.diag = os.Stderr
	}

	return s
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is template text together with the name used in diagnostics.
type source struct {
	name string
	text string
}

// readSource reads the template at path, or stdin when path is "-".
func readSource(ctx context.Context, path string) (source, error) {
	var (
		r    io.Reader
		name = path
	)

	if path == stdinSource {
		r, name = streamsFrom(ctx).in, "<stdin>"
	} else {
		file, err := os.Open(path)
		if err != nil {
			return source{}, ErrReadTemplate.
				With(slog.String("file", path)).
				Wrap(err)
		}
		defer file.Close()

		r = file
	}

	text, err := io.ReadAll(r)
	if err != nil {
		return source{}, ErrReadTemplate.
			With(slog.String("file", name)).
			Wrap(err)
	}

	log.TraceContext(ctx, "template read",
		slog.String("file", name),
		slog.Int("length", len(text)),
	)

	return source{name: name, text: string(text)}, nil
}

// Options holds the flags shared by every command that parses templates.
type Options struct {
	MaxDepth int `default:"${maxDepth}" help:"Maximum conditional nesting depth" name:"max-depth"`
}

// langOptions returns the parse and evaluation options, logging through the
// default logger.
func (o Options) langOptions() []lang.Option {
	return []lang.Option{
		lang.WithMaxDepth(o.MaxDepth),
		lang.WithLogger(log.Default()),
	}
}
