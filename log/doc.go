// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("template rendered", slog.Int("bytes", n))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a new logger with options applied on top of an
// existing configuration. A Logger is immutable and safe to share.
//
// # Default Logger
//
// Package-level functions such as [Info] and [DebugContext] write to a
// process-wide default logger, reconfigured with [Config]. The CLI
// configures it once from its --log-* flags.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below slog's Debug and is used
// for per-parse diagnostics such as the parsed node tree.
//
// # Output Formats
//
// [FormatText] (default) writes key=value lines, colorized with lipgloss
// when the output is a terminal and [WithPretty] is enabled. [FormatJSON]
// writes one JSON object per line.
package log
