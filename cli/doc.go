// Package cli contains the command line interface for curly.
//
// # Usage
//
//	curly [flags] <command> [args]
//
// Render is the default command, so a bare template path renders it:
//
//	curly page.tpl -d data.yaml --set title=Home --set-bool draft=false
//	echo 'Hi {{name}}' | curly --set name=Ada
//	curly check --identifiers page.tpl
//	curly ast --format yaml page.tpl
//	curly repl -d data.yaml
//
// Template errors print a diagnostic with file, line, column, and a caret
// under the offending source, and exit with status 1.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/curly/config.yaml), a flat mapping of
// flag names to values:
//
//	log-level: debug
//	log-format: json
//	max-depth: 64
//
// A config.json in the same directory is also read. Command-line flags
// override both. The init command writes config.yaml from the current flags.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output on terminals
//
// # Profiling Options
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/curly/pprof)
//
// These flags exist only when built with the pprof build tag:
//
//	go build -tags pprof .
package cli
