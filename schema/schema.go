package schema

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tagargs/markup"
	"github.com/ardnew/tagargs/tag"
)

// Document is a set of tag declarations.
type Document struct {
	Tags map[string]Tag `yaml:"tags"`
}

// Tag declares the arguments and blocks of one tag.
type Tag struct {
	Arguments []Argument `yaml:"arguments,omitempty"`
	Blocks    []Block    `yaml:"blocks,omitempty"`
}

// Argument declares one argument of a tag.
type Argument struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind,omitempty"`
	Type    string `yaml:"type,omitempty"`
	Default any    `yaml:"default,omitempty"`
	// Required defaults to true for positional and keyword arguments.
	Required *bool `yaml:"required,omitempty"`
	// Raw keeps tokens as constants instead of compiling them.
	Raw     bool  `yaml:"raw,omitempty"`
	Choices []any `yaml:"choices,omitempty"`
}

// Block declares one block of a tag.
type Block struct {
	Terminator string `yaml:"terminator"`
	Alias      string `yaml:"alias"`
}

// UnmarshalYAML accepts a mapping or a plain string naming both the
// terminator and the alias.
func (b *Block) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		*b = Block{Terminator: name, Alias: name}

		return nil
	}

	type block Block

	var v block
	if err := unmarshal(&v); err != nil {
		return err
	}

	if v.Alias == "" {
		v.Alias = v.Terminator
	}

	*b = Block(v)

	return nil
}

// Decode reads a document from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Document, error) {
	var doc Document

	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{}, nil
		}

		return nil, ErrInvalidSchema.Wrap(err)
	}

	return &doc, nil
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Names returns the declared tag names in sorted order.
func (d *Document) Names() []string {
	return slices.Sorted(maps.Keys(d.Tags))
}

// Options builds the declaration of the named tag.
func (d *Document) Options(name string) (*tag.Options, error) {
	t, ok := d.Tags[name]
	if !ok {
		return nil, ErrInvalidSchema.Wrapf("tag %q is not declared", name)
	}

	args := make([]tag.Argument, 0, len(t.Arguments))

	for i, a := range t.Arguments {
		arg, err := a.argument()
		if err != nil {
			return nil, ErrInvalidSchema.Wrapf("tag %q argument %d: %w", name, i, err).
				With(slog.String("tag", name), slog.Int("index", i))
		}

		args = append(args, arg)
	}

	blocks := make([]tag.BlockDecl, 0, len(t.Blocks))

	for _, b := range t.Blocks {
		if b.Terminator == "" {
			return nil, ErrInvalidSchema.Wrapf("tag %q has a block without terminator", name)
		}

		blocks = append(blocks, tag.Block(b.Terminator, b.Alias))
	}

	opts := tag.NewOptions(args, blocks...)
	if err := opts.Validate(); err != nil {
		return nil, ErrInvalidSchema.Wrapf("tag %q: %w", name, err)
	}

	return opts, nil
}

// Register adds every declared tag to lib in sorted order.
// It stops at the first failure.
func (d *Document) Register(lib *markup.Library) error {
	for _, name := range d.Names() {
		opts, err := d.Options(name)
		if err != nil {
			return err
		}

		if err := lib.Register(name, opts); err != nil {
			return err
		}
	}

	return nil
}

func (a Argument) argument() (tag.Argument, error) {
	if a.Name == "" {
		return tag.Argument{}, errors.New("missing name")
	}

	kind := tag.KindPositional
	if a.Kind != "" {
		k, ok := tag.ParseKind(a.Kind)
		if !ok {
			return tag.Argument{}, fmt.Errorf("%s: unknown kind %q", a.Name, a.Kind)
		}

		kind = k
	}

	if kind == tag.KindFlag {
		if a.Type != "" || a.Default != nil || a.Required != nil || a.Raw || len(a.Choices) > 0 {
			return tag.Argument{}, fmt.Errorf("%s: flags take no options", a.Name)
		}

		return tag.Flag(a.Name), nil
	}

	typ, err := tag.ParseType(a.Type)
	if err != nil {
		return tag.Argument{}, fmt.Errorf("%s: %w", a.Name, err)
	}

	opts := []tag.ArgumentOption{tag.WithType(typ)}

	if a.Default != nil {
		opts = append(opts, tag.WithDefault(a.Default))
	}

	if a.Required != nil && !*a.Required {
		opts = append(opts, tag.Optional())
	}

	if a.Raw {
		opts = append(opts, tag.Raw())
	}

	if kind == tag.KindPositional {
		if len(a.Choices) > 0 {
			return tag.Argument{}, fmt.Errorf("%s: positional arguments take no choices", a.Name)
		}

		return tag.Positional(a.Name, opts...), nil
	}

	if len(a.Choices) > 0 {
		opts = append(opts, tag.WithChoices(a.Choices...))
	}

	return tag.Keyword(a.Name, opts...), nil
}
