package cmd

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/curly/cli/cmd/repl"
	"github.com/ardnew/curly/log"
)

// Repl starts an interactive session rendering templates line by line.
type Repl struct {
	Data    `embed:""`
	Options `embed:""`

	History bool `default:"true" help:"Persist input history in the cache directory" negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	// The terminal owns stdin for the whole session.
	if slices.Contains(r.Files, stdinSource) {
		return ErrStdinConflict.With(slog.String("command", "repl"))
	}

	data, err := r.Data.load(ctx, true)
	if err != nil {
		return err
	}

	cfg := repl.Config{
		Logger:  log.Default(),
		Options: r.langOptions(),
	}

	if r.History {
		cfg.CacheDir, _ = kongVar(ctx, CacheIdentifier)
	}

	if err := repl.Run(ctx, data, cfg); err != nil {
		return ErrRepl.Wrap(err)
	}

	return nil
}
