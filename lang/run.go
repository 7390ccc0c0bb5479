package lang

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// Run parses src and evaluates it against data.
//
// A syntax error is returned as an [*Error] in [PhaseParse]; a missing key
// as an [*Error] in [PhaseRuntime]. Both carry the message and the byte
// offset of the failure.
func Run(
	ctx context.Context,
	src string,
	data Data,
	opts ...Option,
) (string, error) {
	t, err := Parse(ctx, src, opts...)
	if err != nil {
		return "", err
	}

	return Evaluate(ctx, t, data, opts...)
}

// Result is the outcome of [SafeRun]. Exactly one of Output or Error is
// meaningful, selected by IsError.
//
// Encoded as JSON or YAML, a success is {"isError":false,"output":...} and a
// failure is {"isError":true,"error":...,"index":...}.
type Result struct {
	IsError bool
	Output  string
	Error   string
	Index   int
}

type (
	outputResult struct {
		IsError bool   `json:"isError" yaml:"isError"`
		Output  string `json:"output"  yaml:"output"`
	}
	errorResult struct {
		IsError bool   `json:"isError" yaml:"isError"`
		Error   string `json:"error"   yaml:"error"`
		Index   int    `json:"index"   yaml:"index"`
	}
)

func (r Result) shape() any {
	if r.IsError {
		return errorResult{IsError: true, Error: r.Error, Index: r.Index}
	}

	return outputResult{Output: r.Output}
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) { return json.Marshal(r.shape()) }

// MarshalYAML implements yaml.InterfaceMarshaler.
func (r Result) MarshalYAML() (any, error) { return r.shape(), nil }

// LogValue implements slog.LogValuer.
func (r Result) LogValue() slog.Value {
	if r.IsError {
		return slog.GroupValue(
			slog.String("error", r.Error),
			slog.Int("index", r.Index),
		)
	}

	return slog.GroupValue(slog.Int("output_length", len(r.Output)))
}

// SafeRun calls [Run] and folds template errors into a [Result].
//
// Only [*Error] values are template outcomes. Any other error reaching this
// boundary means the package itself is broken, and SafeRun panics with it
// instead of reporting it as a template diagnostic.
func SafeRun(
	ctx context.Context,
	src string,
	data Data,
	opts ...Option,
) Result {
	out, err := Run(ctx, src, data, opts...)
	if err == nil {
		return Result{Output: out}
	}

	var terr *Error
	if !errors.As(err, &terr) {
		panic(err)
	}

	return Result{IsError: true, Error: terr.Message(), Index: terr.Offset()}
}
