package lang

import (
	"iter"
	"strconv"
	"strings"
)

// Template is a parsed template: the source it was parsed from and the
// sequence of top-level nodes. A Template is immutable once returned by
// [Parse].
type Template struct {
	Source string
	Nodes  []Node
}

// Node is one element of a parsed template.
// The concrete type is one of [*Text], [*Interpolation], or [*Conditional].
type Node interface {
	// Offset returns the byte offset of the first character of the node.
	Offset() int

	String() string

	node()
}

// Identifier is a variable name and the offset where it begins.
type Identifier struct {
	Name string
	Pos  int
}

// Text is a run of literal characters.
type Text struct {
	Content string
	Pos     int
}

// Interpolation is a {{name}} tag.
type Interpolation struct {
	Target Identifier
	Pos    int
}

// Conditional is an {{if name}} ... {{else}} ... {{end}} block.
// HasElse reports whether an {{else}} was present, so an empty alternate can
// be told apart from a missing one.
type Conditional struct {
	Condition  Identifier
	Consequent []Node
	Alternate  []Node
	HasElse    bool
	Pos        int
}

func (*Text) node()          {}
func (*Interpolation) node() {}
func (*Conditional) node()   {}

func (n *Text) Offset() int          { return n.Pos }
func (n *Interpolation) Offset() int { return n.Pos }
func (n *Conditional) Offset() int   { return n.Pos }

// String returns the content quoted as a Go string literal.
func (n *Text) String() string {
	return "Text(" + strconv.Quote(n.Content) + ")"
}

func (n *Interpolation) String() string {
	return "Interpolation(" + n.Target.Name + ")"
}

func (n *Conditional) String() string {
	var b strings.Builder

	b.WriteString("If(")
	b.WriteString(n.Condition.Name)
	b.WriteString(")")

	if n.HasElse {
		b.WriteString(" Else")
	}

	return b.String()
}

// All returns an iterator over every node of the template in depth-first,
// left-to-right order, paired with its nesting depth (0 for top-level nodes).
// Consequent nodes are visited before alternate nodes.
func (t Template) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		walk(t.Nodes, 0, yield)
	}
}

func walk(nodes []Node, depth int, yield func(int, Node) bool) bool {
	for _, n := range nodes {
		if !yield(depth, n) {
			return false
		}

		if c, ok := n.(*Conditional); ok {
			if !walk(c.Consequent, depth+1, yield) {
				return false
			}

			if !walk(c.Alternate, depth+1, yield) {
				return false
			}
		}
	}

	return true
}

// Identifiers returns the distinct variable names referenced by the
// template, in order of first appearance.
func (t Template) Identifiers() []string {
	seen := make(map[string]struct{})

	var names []string

	for _, n := range t.All() {
		var name string

		switch n := n.(type) {
		case *Interpolation:
			name = n.Target.Name
		case *Conditional:
			name = n.Condition.Name
		default:
			continue
		}

		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names
}
