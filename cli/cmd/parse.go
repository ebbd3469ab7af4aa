package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tagargs/log"
	"github.com/ardnew/tagargs/markup"
	"github.com/ardnew/tagargs/tag"
)

// Parse parses a template and prints the resolved arguments of every element.
type Parse struct {
	Schema

	Vars   string `help:"YAML file of template variables." short:"v" type:"existingfile"`
	Debug  bool   `env:"TAGARGS_DEBUG" help:"Fail on values that cannot be coerced instead of warning."`
	Format string `default:"yaml" enum:"yaml,json" help:"Output format (${enum})." short:"o"`

	Source string `arg:"" default:"-" help:"Template file or '-' for stdin." name:"source"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context, stdio *IO) error {
	lib, err := p.library(ctx)
	if err != nil {
		return err
	}

	vars, err := loadVars(p.Vars)
	if err != nil {
		return err
	}

	nodes, err := parse(ctx, lib, stdio.In, p.Source)
	if err != nil {
		return err
	}

	out, err := nodes.Resolve(ctx, vars, tag.Policy{Debug: p.Debug, Logger: log.Default()})
	if err != nil {
		return ErrResolve.Wrap(err).With(slog.String("source", p.Source))
	}

	if out == nil {
		out = []markup.Resolved{}
	}

	return encode(stdio.Out, p.Format, out)
}

func encode(w io.Writer, format string, v any) error {
	var err error

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
	default:
		var b []byte

		b, err = yaml.MarshalWithOptions(v, yaml.Indent(2))
		if err == nil {
			_, err = w.Write(b)
		}
	}

	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", format))
	}

	return nil
}
