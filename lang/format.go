package lang

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// dump is the serialized form of a Node used by FormatJSON and FormatYAML.
type dump struct {
	Type       string `json:"type"                 yaml:"type"`
	Pos        int    `json:"pos"                  yaml:"pos"`
	Content    string `json:"content,omitempty"    yaml:"content,omitempty"`
	Name       string `json:"name,omitempty"       yaml:"name,omitempty"`
	NamePos    int    `json:"namePos,omitempty"    yaml:"namePos,omitempty"`
	Consequent []dump `json:"consequent,omitempty" yaml:"consequent,omitempty"`
	Alternate  []dump `json:"alternate,omitempty"  yaml:"alternate,omitempty"`
	HasElse    bool   `json:"hasElse,omitempty"    yaml:"hasElse,omitempty"`
}

func dumpNodes(nodes []Node) []dump {
	out := make([]dump, 0, len(nodes))

	for _, n := range nodes {
		switch n := n.(type) {
		case *Text:
			out = append(out, dump{Type: "text", Pos: n.Pos, Content: n.Content})

		case *Interpolation:
			out = append(out, dump{
				Type:    "interpolation",
				Pos:     n.Pos,
				Name:    n.Target.Name,
				NamePos: n.Target.Pos,
			})

		case *Conditional:
			out = append(out, dump{
				Type:       "conditional",
				Pos:        n.Pos,
				Name:       n.Condition.Name,
				NamePos:    n.Condition.Pos,
				Consequent: dumpNodes(n.Consequent),
				Alternate:  dumpNodes(n.Alternate),
				HasElse:    n.HasElse,
			})
		}
	}

	return out
}

// FormatJSON writes the template's node tree as JSON to the writer.
func (t Template) FormatJSON(w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(dumpNodes(t.Nodes), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(dumpNodes(t.Nodes))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the template's node tree as YAML to the writer.
// An indent of zero selects flow style.
func (t Template) FormatYAML(w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	return yaml.NewEncoder(w, opts...).Encode(dumpNodes(t.Nodes))
}

// Print writes an indented, human-readable outline of the template.
func (t Template) Print(w io.Writer) error {
	var b strings.Builder

	printNodes(&b, t.Nodes, 0)

	_, err := io.WriteString(w, b.String())

	return err
}

func printNodes(b *strings.Builder, nodes []Node, depth int) {
	pad := strings.Repeat("  ", depth)

	for _, n := range nodes {
		fmt.Fprintf(b, "%s%d: %s\n", pad, n.Offset(), n)

		if c, ok := n.(*Conditional); ok {
			printNodes(b, c.Consequent, depth+1)

			if c.HasElse {
				fmt.Fprintf(b, "%sElse\n", pad)
				printNodes(b, c.Alternate, depth+1)
			}
		}
	}
}

// LogValue implements slog.LogValuer. The outline is only rendered when a
// handler actually emits the record.
func (t Template) LogValue() slog.Value {
	var b strings.Builder

	printNodes(&b, t.Nodes, 0)

	return slog.StringValue(b.String())
}
