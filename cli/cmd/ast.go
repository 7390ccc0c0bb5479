package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/curly/lang"
)

// AST prints the parsed syntax tree of a template.
type AST struct {
	Options `embed:""`

	Format string `default:"tree" enum:"tree,yaml,json" help:"Output format (${enum})"  short:"f"`
	Indent int    `default:"2"                           help:"Indent width for yaml and json" short:"i"`

	Template string `arg:"" default:"-" help:"Template file or '-' for stdin" name:"template"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	st := streamsFrom(ctx)

	src, err := readSource(ctx, a.Template)
	if err != nil {
		return err
	}

	t, err := lang.Parse(ctx, src.text, a.langOptions()...)
	if err != nil {
		return fail(st.diag, src, err)
	}

	switch a.Format {
	case "yaml":
		if err := t.FormatYAML(st.out, a.Indent); err != nil {
			return ErrYAMLMarshal.With(slog.String("file", src.name)).Wrap(err)
		}

	case "json":
		if err := t.FormatJSON(st.out, a.Indent); err != nil {
			return ErrJSONMarshal.With(slog.String("file", src.name)).Wrap(err)
		}

	default:
		return t.Print(st.out)
	}

	return nil
}
