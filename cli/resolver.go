package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tagargs/log"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// The file is a flat mapping of flag names to values:
//
//	log-level: debug
//	log_format: json
//	log-pretty: false
//
// A file that is not a YAML mapping is ignored with a warning so that a broken
// configuration never blocks the command line.
func resolve(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("ignoring configuration file", slog.String("cause", err.Error()))

		return config{}, nil
	}

	return config(values), nil
}

// config implements [kong.Resolver] over decoded configuration values.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. Keys may spell hyphens as underscores.
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if v, ok := c[key]; ok {
			return scalar(v), nil
		}
	}

	return nil, nil
}

// scalar renders numbers as strings, which kong parses for any numeric flag.
func scalar(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return v
	}
}
