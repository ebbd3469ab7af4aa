package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tagargs/log"
)

// logFormat configures the logger format as a side effect of parsing, so
// that kong's own errors already use it.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	format, ok := log.ParseFormat(string(text))
	if !ok {
		return log.ErrUnknownFormat.Wrapf("%q", text)
	}

	*f = logFormat(text)
	log.Config(log.WithFormat(format))

	return nil
}

// logLevel configures the logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	level, ok := log.ParseLevel(string(text))
	if !ok {
		return log.ErrUnknownLevel.Wrapf("%q", text)
	}

	*l = logLevel(text)
	log.Config(log.WithLevel(level))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"text"    enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp layout."`
	Caller     bool      `default:"false"                           help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(log.LevelNames(), ","),
		"logFormatEnum": strings.Join(log.FormatNames(), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start applies every parsed logger flag, including those that do not
// configure the logger while parsing.
func (f *logConfig) start(ctx context.Context) {
	level, _ := log.ParseLevel(string(f.Level))
	format, _ := log.ParseFormat(string(f.Format))

	log.Config(
		log.WithLevel(level),
		log.WithFormat(format),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.Default().DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags found in args before kong parses them.
// Boolean flags are not decoded through encoding.TextUnmarshaler, so this is
// the only early hook for them.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		switch name {
		case "--":
			return

		case "--log-level", "--log-format":
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				value = args[i]
			}

			if name == "--log-level" {
				_ = f.Level.UnmarshalText([]byte(value))
			} else {
				_ = f.Format.UnmarshalText([]byte(value))
			}

		case "--log-pretty", "--no-log-pretty":
			f.Pretty = boolFlag(name, value, assigned)
			log.Config(log.WithPretty(f.Pretty))

		case "--log-caller", "--no-log-caller":
			f.Caller = boolFlag(name, value, assigned)
			log.Config(log.WithCaller(f.Caller))
		}
	}
}

// boolFlag returns the value of a negatable boolean flag. Only an explicit
// name=value assignment is parsed; a malformed value counts as set.
func boolFlag(name, value string, assigned bool) bool {
	v := true

	if assigned {
		if b, err := strconv.ParseBool(value); err == nil {
			v = b
		}
	}

	if strings.HasPrefix(name, "--no-") {
		v = !v
	}

	return v
}
