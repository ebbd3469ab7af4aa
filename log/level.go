package log

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Level represents the severity of a log message.
type Level slog.Level

const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel is the level used by a [Logger] created without [WithLevel].
const DefaultLevel = LevelInfo

var levelNames = []string{"trace", "debug", "info", "warn", "error"}

// LevelNames returns the names accepted by [ParseLevel], lowest first.
func LevelNames() []string { return slices.Clone(levelNames) }

// String returns the lowercase name of l.
// Levels between the named ones render as "<name>+<offset>".
func (l Level) String() string {
	if l == LevelTrace {
		return "trace"
	}

	if l < LevelDebug {
		return fmt.Sprintf("trace%+d", int(l-LevelTrace))
	}

	return strings.ToLower(slog.Level(l).String())
}

// ParseLevel parses a level name, case-insensitively.
// Unrecognized names yield [DefaultLevel] and false.
func ParseLevel(s string) (Level, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "trace") {
		return LevelTrace, true
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel, false
	}

	return Level(l), true
}

// UnmarshalText lets a Level be decoded from flags and configuration files.
func (l *Level) UnmarshalText(text []byte) error {
	v, ok := ParseLevel(string(text))
	if !ok {
		return ErrUnknownLevel.Wrapf("%q", text)
	}

	*l = v

	return nil
}

// MarshalText encodes l as its name.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// Format selects the encoding of log records.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the format used by a [Logger] created without [WithFormat].
const DefaultFormat = FormatText

var formatNames = []string{"text", "json"}

// FormatNames returns the names accepted by [ParseFormat].
func FormatNames() []string { return slices.Clone(formatNames) }

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}

	return formatNames[f]
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, bool) {
	i := slices.Index(formatNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return DefaultFormat, false
	}

	return Format(i), true
}

// UnmarshalText lets a Format be decoded from flags and configuration files.
func (f *Format) UnmarshalText(text []byte) error {
	v, ok := ParseFormat(string(text))
	if !ok {
		return ErrUnknownFormat.Wrapf("%q", text)
	}

	*f = v

	return nil
}

// MarshalText encodes f as its name.
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
