package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/curly/lang"
)

// writeDiagnostic writes a template error as
//
//	name:line:col: message
//	source line
//	   ^
//
// Styles are bound to w, so colors are dropped when w is not a terminal.
// Errors that are not [*lang.Error] are returned unchanged.
func writeDiagnostic(w io.Writer, src source, err error) error {
	var terr *lang.Error
	if !errors.As(err, &terr) {
		return err
	}

	r := lipgloss.NewRenderer(w)

	loc := r.NewStyle().Bold(true).
		Render(fmt.Sprintf("%s:%s:", src.name, terr.Position(src.text)))
	msg := r.NewStyle().Foreground(lipgloss.Color("1")).
		Render(terr.Message())

	// Only the marker is styled. Render expands tabs, and the pad must keep
	// them to line up with the raw source line.
	line, caret := lang.Snippet(src.text, terr.Offset())
	pad, mark, _ := strings.Cut(strings.TrimSuffix(caret, "\n"), "^")
	caret = pad + r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).
		Render("^"+mark)

	_, werr := fmt.Fprintf(w, "%s %s\n%s%s\n", loc, msg, line, caret)

	return werr
}

// fail writes the diagnostic for a template error and returns the error
// the command should exit with.
func fail(w io.Writer, src source, err error) error {
	if werr := writeDiagnostic(w, src, err); werr != nil {
		return werr
	}

	return ErrTemplate.Wrap(err)
}
