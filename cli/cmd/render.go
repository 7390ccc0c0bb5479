package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/ardnew/curly/lang"
	"github.com/ardnew/curly/log"
)

// Render evaluates a template against a data context.
type Render struct {
	Data    `embed:""`
	Options `embed:""`

	JSON bool `help:"Print the outcome as a JSON result object" name:"json"`

	Template string `arg:"" default:"-" help:"Template file or '-' for stdin" name:"template"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	st := streamsFrom(ctx)

	src, err := readSource(ctx, r.Template)
	if err != nil {
		return err
	}

	data, err := r.Data.load(ctx, r.Template == stdinSource)
	if err != nil {
		return err
	}

	if r.JSON {
		return r.writeResult(ctx, st.out, src, data)
	}

	out, err := lang.Run(ctx, src.text, data, r.langOptions()...)
	if err != nil {
		return fail(st.diag, src, err)
	}

	_, err = io.WriteString(st.out, out)

	return err
}

// writeResult writes the [lang.SafeRun] result as one JSON object. A
// template error is reported in the object itself, and the command still
// fails so the exit status reflects it.
func (r *Render) writeResult(
	ctx context.Context,
	w io.Writer,
	src source,
	data lang.Data,
) error {
	res := lang.SafeRun(ctx, src.text, data, r.langOptions()...)

	log.DebugContext(ctx, "render result",
		slog.String("file", src.name),
		slog.Any("result", res),
	)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	if res.IsError {
		return ErrTemplate.With(
			slog.String("file", src.name),
			slog.String("message", res.Error),
			slog.Int("index", res.Index),
		)
	}

	return nil
}
