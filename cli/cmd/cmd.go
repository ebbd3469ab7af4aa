package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tagargs/compile"
	"github.com/ardnew/tagargs/log"
	"github.com/ardnew/tagargs/markup"
	"github.com/ardnew/tagargs/schema"
	"github.com/ardnew/tagargs/tag"
)

// IO holds the streams commands read from and write to.
type IO struct {
	In  io.Reader
	Out io.Writer
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying the parsed command line.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Schema is the flag shared by commands that need tag declarations.
type Schema struct {
	Schema []string `help:"Schema file declaring tags (repeatable)." name:"schema" required:"" short:"s" type:"existingfile"`
}

// library registers the tags of every schema file. A tag declared in two
// files is an error.
func (s Schema) library(ctx context.Context) (*markup.Library, error) {
	logger := log.Default()
	lib := markup.NewLibrary(markup.WithLogger(logger))

	for _, path := range s.Schema {
		doc, err := schema.Load(path)
		if err == nil {
			err = doc.Register(lib)
		}

		if err != nil {
			return nil, ErrLoadSchema.Wrap(err).With(slog.String("file", path))
		}

		logger.DebugContext(ctx, "loaded schema",
			slog.String("file", path),
			slog.Int("tags", len(doc.Tags)))
	}

	return lib, nil
}

// parse reads the template at path and parses it with the tags of lib.
func parse(ctx context.Context, lib *markup.Library, in io.Reader, path string) (markup.NodeList, error) {
	src, err := readSource(in, path)
	if err != nil {
		return nil, err
	}

	c := compile.New(compile.WithLogger(log.Default()))

	nodes, err := markup.Parse(ctx, lib, src, c)
	if err != nil {
		return nil, ErrParse.Wrap(err).With(slog.String("source", path))
	}

	return nodes, nil
}

// readSource returns the contents of path, or of in when path is "-".
func readSource(in io.Reader, path string) (string, error) {
	var (
		b   []byte
		err error
	)

	if path == stdinSource {
		b, err = io.ReadAll(in)
	} else {
		b, err = os.ReadFile(path)
	}

	if err != nil {
		return "", ErrReadSource.Wrap(err).With(slog.String("source", path))
	}

	return string(b), nil
}

// loadVars reads template variables from a YAML mapping. An empty path
// yields no variables.
func loadVars(path string) (tag.Vars, error) {
	if path == "" {
		return nil, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrLoadVars.Wrap(err).With(slog.String("file", path))
	}

	var vars tag.Vars
	if err := yaml.Unmarshal(b, &vars); err != nil {
		return nil, ErrLoadVars.Wrap(err).With(slog.String("file", path))
	}

	return vars, nil
}

// countElements counts the elements of nodes and of every nested block.
func countElements(nodes markup.NodeList) int {
	n := 0

	for _, e := range nodes.Elements() {
		n++

		for alias := range e.Blocks {
			if s, ok := e.Section(alias); ok {
				n += countElements(s.Nodes)
			}
		}
	}

	return n
}
