package markup

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/tagargs/tag"
)

// Parse parses src into text nodes and elements of tags registered in lib.
// A nil compiler leaves every token a [tag.Constant].
func Parse(ctx context.Context, lib *Library, src string, compiler tag.Compiler) (NodeList, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}

	s := &Stream{
		ctx:      ctx,
		lib:      lib,
		compiler: compiler,
		src:      src,
		toks:     toks,
	}

	nodes, _, err := s.parseUntil(nil)
	if err != nil {
		return nil, err
	}

	return nodes, nil
}

// Stream is the token stream of one template being parsed. It implements
// [tag.Capturer], parsing nested elements as it captures.
type Stream struct {
	ctx      context.Context
	lib      *Library
	compiler tag.Compiler
	src      string
	toks     []Token
	pos      int
}

// CaptureUntil implements [tag.Capturer]. The content is a [Section].
func (s *Stream) CaptureUntil(terminators []string) (tag.Content, string, error) {
	start := len(s.src)
	if s.pos < len(s.toks) {
		start = s.toks[s.pos].Start
	}

	nodes, term, err := s.parseUntil(terminators)
	if err != nil {
		return nil, "", err
	}

	return Section{Nodes: nodes, Source: s.src[start:term.Start]}, SplitContents(term.Text)[0], nil
}

// Empty implements [tag.Capturer].
func (s *Stream) Empty() tag.Content { return Section{} }

// parseUntil parses nodes up to a tag named in terms, which is consumed and
// returned. A returned terminator always has a name. With no terms it parses to the end of the stream.
func (s *Stream) parseUntil(terms []string) (NodeList, Token, error) {
	var nodes NodeList

	for s.pos < len(s.toks) {
		tok := s.toks[s.pos]
		s.pos++

		if tok.Kind == KindText {
			nodes = append(nodes, &Text{Position: tok.Position, Value: tok.Text})

			continue
		}

		fields := SplitContents(tok.Text)
		if len(fields) == 0 {
			return nil, Token{}, ErrEmptyTag.Wrapf("at %s", tok.Position).
				With(slog.Int("line", tok.Line), slog.Int("col", tok.Col))
		}

		if slices.Contains(terms, fields[0]) {
			return nodes, tok, nil
		}

		e, err := s.element(tok, fields)
		if err != nil {
			return nil, Token{}, err
		}

		nodes = append(nodes, e)
	}

	if len(terms) > 0 {
		return nil, Token{}, ErrUnclosedBlock.
			Wrapf("reached end of template, expected one of %s", strings.Join(terms, ", ")).
			With(slog.Any("expected", terms))
	}

	return nodes, Token{}, nil
}

func (s *Stream) element(tok Token, fields []string) (*Element, error) {
	name := fields[0]

	opts, ok := s.lib.Lookup(name)
	if !ok {
		return nil, ErrUnknownTag.Wrapf("%q at %s", name, tok.Position).
			With(slog.String("tag", name), slog.Int("line", tok.Line), slog.Int("col", tok.Col))
	}

	logger := s.lib.Logger().With(slog.Int("line", tok.Line))

	kwargs, blocks, err := opts.Parse(s.ctx, tag.Invocation{
		Name:     name,
		Tokens:   fields[1:],
		Compiler: s.compiler,
		Stream:   s,
		Logger:   logger,
	})
	if err != nil {
		return nil, atPosition(err, tok.Position)
	}

	logger.Trace("parsed element", slog.String("tag", name), slog.Int("blocks", len(blocks)))

	return &Element{
		Position: tok.Position,
		Name:     name,
		Tokens:   fields[1:],
		Kwargs:   kwargs,
		Blocks:   blocks,
	}, nil
}

// PositionError attaches the position of the innermost failing tag to err.
type PositionError struct {
	Position
	Err error
}

func (e *PositionError) Error() string { return e.Position.String() + ": " + e.Err.Error() }

func (e *PositionError) Unwrap() error { return e.Err }

func atPosition(err error, p Position) error {
	var pe *PositionError
	if errors.As(err, &pe) {
		return err
	}

	return &PositionError{Position: p, Err: err}
}
