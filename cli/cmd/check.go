package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/curly/lang"
	"github.com/ardnew/curly/log"
)

// Check parses a template without evaluating it.
type Check struct {
	Options `embed:""`

	Identifiers bool `help:"List referenced variable names instead of printing ok" short:"i"`

	Template string `arg:"" default:"-" help:"Template file or '-' for stdin" name:"template"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	st := streamsFrom(ctx)

	src, err := readSource(ctx, c.Template)
	if err != nil {
		return err
	}

	t, err := lang.Parse(ctx, src.text, c.langOptions()...)
	if err != nil {
		return fail(st.diag, src, err)
	}

	names := t.Identifiers()

	log.DebugContext(ctx, "template ok",
		slog.String("file", src.name),
		slog.Int("node_count", len(t.Nodes)),
		slog.Int("identifier_count", len(names)),
	)

	if !c.Identifiers {
		_, err = fmt.Fprintln(st.out, "ok")

		return err
	}

	for _, name := range names {
		if _, err := fmt.Fprintln(st.out, name); err != nil {
			return err
		}
	}

	return nil
}
