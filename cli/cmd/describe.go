package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tagargs/markup"
	"github.com/ardnew/tagargs/tag"
)

// Describe prints the declared arguments and blocks of tags.
type Describe struct {
	Schema

	Tags []string `arg:"" help:"Tags to describe (default: all)." name:"tag" optional:""`
}

// Run executes the describe command.
func (d *Describe) Run(ctx context.Context, stdio *IO) error {
	lib, err := d.library(ctx)
	if err != nil {
		return err
	}

	names := d.Tags
	if len(names) == 0 {
		names = lib.Names()
	}

	r := lipgloss.NewRenderer(stdio.Out)

	for i, name := range names {
		opts, ok := lib.Lookup(name)
		if !ok {
			return unknownTag(lib, name)
		}

		if i > 0 {
			fmt.Fprintln(stdio.Out)
		}

		if err := describe(stdio.Out, r, name, opts); err != nil {
			return err
		}
	}

	return nil
}

func unknownTag(lib *markup.Library, name string) error {
	err := ErrUnknownTag.With(slog.String("tag", name))

	if m := fuzzy.Find(name, lib.Names()); len(m) > 0 {
		return err.Wrapf("%q (did you mean %q?)", name, m[0].Str)
	}

	return err.Wrapf("%q", name)
}

func describe(w io.Writer, r *lipgloss.Renderer, name string, opts *tag.Options) error {
	title := r.NewStyle().Bold(true)
	dim := r.NewStyle().Foreground(lipgloss.Color("8"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dim).
		Headers("ARGUMENT", "KIND", "TYPE", "REQUIRED", "DEFAULT", "CHOICES").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return title.Padding(0, 1)
			}

			return r.NewStyle().Padding(0, 1)
		})

	for _, a := range opts.Arguments() {
		t.Row(
			a.Name(),
			a.Kind().String(),
			a.Type().String(),
			fmt.Sprint(a.IsRequired()),
			defaultText(a),
			choicesText(a.Choices()),
		)
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n", title.Render(name), t.String()); err != nil {
		return err
	}

	blocks := opts.Blocks()
	if len(blocks) == 0 {
		return nil
	}

	list := make([]string, len(blocks))
	for i, b := range blocks {
		list[i] = b.Alias
		if b.Terminator != b.Alias {
			list[i] += " (" + b.Terminator + ")"
		}
	}

	_, err := fmt.Fprintf(w, "%s %s\n", dim.Render("blocks:"), strings.Join(list, ", "))

	return err
}

func defaultText(a tag.Argument) string {
	if def, ok := a.Default(); ok {
		return fmt.Sprint(def)
	}

	return "-"
}

func choicesText(choices []any) string {
	if len(choices) == 0 {
		return "-"
	}

	s := make([]string, len(choices))
	for i, c := range choices {
		s[i] = fmt.Sprint(c)
	}

	return strings.Join(s, ", ")
}
