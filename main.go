package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/curly/cli"
	"github.com/ardnew/curly/cli/cmd"
	"github.com/ardnew/curly/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Template diagnostics have already been written.
		if !errors.Is(err, cmd.ErrTemplate) {
			log.Error(
				"run failed",
				slog.Any("error", err),
			) // slog automatically uses LogValue()
		}

		os.Exit(1)
	}
}
