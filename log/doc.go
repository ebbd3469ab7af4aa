// Package log is a small leveled logging layer over [log/slog].
//
// A [Logger] is an immutable value. It is configured once with functional
// options and then copied freely:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("none"))
//
//	logger.Warn("template syntax warning", slog.String("tag", "include"))
//
// Attributes are always passed as [slog.Attr], never as alternating
// key/value arguments.
//
// Besides the four [slog] levels, [LevelTrace] sits below debug. Level and
// format names are parsed with [ParseLevel] and [ParseFormat], and both types
// implement [encoding.TextUnmarshaler] so they can be decoded directly from
// command-line flags and configuration files.
//
// The zero [Logger] discards all records. The package-level functions
// ([Info], [Warn], ...) write through a shared default Logger that
// [Config] and [SetDefault] replace.
package log
