package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/curly/lang"
	"github.com/ardnew/curly/log"
)

const defaultEditor = "vi"

// editDataCommand implements [tea.ExecCommand] for the data edit-decode-retry
// loop. It writes the current data context as YAML to a temp file, opens the
// user's editor, and decodes the result. On a decode error the user is
// prompted to re-edit; declining keeps the previous context.
type editDataCommand struct {
	data    lang.Data
	ctxFunc func() context.Context
	newData lang.Data
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editDataCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editDataCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editDataCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-decode-retry loop. An emptied file cancels the edit
// and leaves newData nil. If the user declines to re-edit after an invalid
// document, it returns [ErrEditDeclined].
func (c *editDataCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := lang.EncodeData(&buf, c.data); err != nil {
		return fmt.Errorf("encode data: %w", err)
	}

	f, err := os.CreateTemp(os.TempDir(), "curly-repl-*.yaml")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	content := buf.Bytes()

	for {
		if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		content, err = os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(content)) == 0 {
			return nil
		}

		data, decodeErr := lang.DecodeData(bytes.NewReader(content))
		c.logger.TraceContext(
			ctx,
			"editor decode attempt",
			slog.Int("content_length", len(content)),
			slog.Bool("success", decodeErr == nil),
		)

		if decodeErr == nil {
			c.newData = data

			return nil
		}

		fmt.Fprintf(c.stderr, "\nInvalid data: %s\n", decodeErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}
	}
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	// EDITOR may carry arguments, e.g. "code --wait".
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
