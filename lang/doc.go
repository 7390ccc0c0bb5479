// Package lang implements a small templating language: literal text mixed
// with variable interpolation and conditional blocks, evaluated against a
// flat key-value data context.
//
// # Grammar
//
// Informal EBNF, delimiters are literal:
//
//	template      → body* EOF
//	body          → conditional | interpolation | text
//	interpolation → "{{" identifier "}}"
//	conditional   → "{{if" WS identifier "}}" body* ( "{{else}}" body* )? "{{end}}"
//	identifier    → [A-Za-z_][A-Za-z0-9_.]*   (excluding if, else, end)
//	text          → any non-empty run of characters not containing "{{"
//
// Tags are whitespace-sensitive: "{{ name }}" is a syntax error. A dotted
// identifier such as "user.name" is one flat key; there is no path lookup.
//
// # Example
//
//	data := lang.Data{
//		"name":  lang.String("Ada"),
//		"admin": lang.Bool(true),
//	}
//
//	out, err := lang.Run(ctx, "Hi {{name}}{{if admin}} (admin){{end}}", data)
//	// out == "Hi Ada (admin)"
//
// # Errors
//
// Every failure is an [*Error] carrying a message and the byte offset into
// the source where it was detected. Syntax errors are reported by [Parse]
// and [Run] in [PhaseParse]; a key missing from the data context is
// reported by [Evaluate] and [Run] in [PhaseRuntime]. Only the first error is
// reported.
//
// [SafeRun] folds these into a [Result] value instead of an error.
//
// # Depth
//
// Conditionals nest to any depth up to [DefaultMaxDepth] (see
// [WithMaxDepth]). Both the parser and the evaluator recurse once per level.
package lang
