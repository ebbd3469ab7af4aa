package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tagargs/log"
	"github.com/ardnew/tagargs/profile"
)

// Init writes a configuration file holding the current global flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context, stdio *IO) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrapf("no command-line context")
	}

	path, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok || path == "" {
		return ErrWriteConfig.Wrapf("no configuration path")
	}

	if _, err := os.Stat(path); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", path), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	b, err := yaml.Marshal(flagValues(ktx))
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o700)
	}

	if err == nil {
		err = os.WriteFile(path, b, 0o600)
	}

	if err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	log.Default().DebugContext(ctx, "initialized configuration file", slog.String("path", path))

	_, err = fmt.Fprintln(stdio.Out, path)

	return err
}

// flagValues returns the set values of the application-level flags keyed by
// flag name. Help and profiling flags are omitted.
func flagValues(ktx *kong.Context) map[string]any {
	ignore := []string{"help", profile.Tag}
	values := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
		case string:
			if v != "" {
				values[flag.Name] = v
			}
		case fmt.Stringer:
			values[flag.Name] = v.String()
		default:
			values[flag.Name] = v
		}
	}

	return values
}
