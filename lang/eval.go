package lang

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Evaluate renders t against data.
//
// Evaluation is fail-fast: the first missing key aborts the walk and the
// returned error is an [*Error] in [PhaseRuntime]. No partial output is
// returned together with an error.
func Evaluate(
	ctx context.Context,
	t Template,
	data Data,
	opts ...Option,
) (string, error) {
	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "evaluate start",
		slog.Int("node_count", len(t.Nodes)),
		slog.Int("data_count", len(data)),
	)

	e := &evaluator{data: data, maxDepth: cfg.maxDepth}

	if err := e.nodes(t.Nodes); err != nil {
		cfg.logger.DebugContext(ctx, "evaluate failed", slog.Any("error", err))

		return "", err
	}

	cfg.logger.TraceContext(ctx, "evaluate complete",
		slog.Int("output_length", e.out.Len()),
	)

	return e.out.String(), nil
}

// evaluator accumulates output while walking the tree.
type evaluator struct {
	data     Data
	out      strings.Builder
	depth    int
	maxDepth int
}

func (e *evaluator) nodes(nodes []Node) *Error {
	for _, n := range nodes {
		if err := e.node(n); err != nil {
			return err
		}
	}

	return nil
}

func (e *evaluator) node(n Node) *Error {
	switch n := n.(type) {
	case *Text:
		e.out.WriteString(n.Content)

	case *Interpolation:
		v, ok := e.data.Lookup(n.Target.Name)
		if !ok {
			return errMissingValue(n.Pos, n.Target.Name)
		}

		e.out.WriteString(v.String())

	case *Conditional:
		v, ok := e.data.Lookup(n.Condition.Name)
		if !ok {
			return errMissingValue(n.Pos, n.Condition.Name)
		}

		// Trees built by hand bypass the parser's depth check.
		if e.depth >= e.maxDepth {
			return errMaxDepthExceeded(n.Pos, e.maxDepth)
		}

		e.depth++
		defer func() { e.depth-- }()

		if v.Truthy() {
			return e.nodes(n.Consequent)
		}

		return e.nodes(n.Alternate)

	default:
		// Node is sealed; reaching here is a bug in this package.
		panic(fmt.Sprintf("lang: unknown node type %T", n))
	}

	return nil
}
