// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Warn("row failed", slog.Int("row", 3))
//
// The zero [Logger] discards everything, so library components accept a
// Logger through an option and log unconditionally.
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Debug], [Info], [Warn], [Error]) write
// through a process-wide logger on standard error, reconfigured with
// [Config]. Standard output is reserved for pipeline results.
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// [DefaultLevel] is warn, so a plain px run logs only ignored configuration
// and fatal errors. Debug adds imports and compiled pipelines; trace adds
// per-stage evaluation detail.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON], either plain or colorized with
// [WithPretty].
package log
