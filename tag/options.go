package tag

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/tagargs/log"
)

// Kwargs maps argument names to parsed values.
type Kwargs map[string]*Value

// Content is whatever a [Capturer] produces for a block.
type Content any

// Blocks maps block aliases to captured content.
type Blocks map[string]Content

// Capturer supplies the template content that follows a tag.
type Capturer interface {
	// CaptureUntil consumes content up to the first tag whose name is one
	// of terminators. It returns the content and the terminator found.
	CaptureUntil(terminators []string) (Content, string, error)
	// Empty returns the content of a block that never appeared.
	Empty() Content
}

// BlockDecl declares a block ended by Terminator and stored under Alias.
type BlockDecl struct {
	Terminator string
	Alias      string
}

// Block declares a block ended by terminator and stored under alias.
func Block(terminator, alias string) BlockDecl {
	return BlockDecl{Terminator: terminator, Alias: alias}
}

// BlockNamed declares a block whose terminator is also its alias.
func BlockNamed(name string) BlockDecl { return Block(name, name) }

// Invocation is one occurrence of a tag.
type Invocation struct {
	// Name is the tag name, used in messages.
	Name string
	// Tokens follow the tag name, split but not unquoted.
	Tokens []string
	// Compiler compiles tokens of resolving arguments.
	// When nil, every token is a [Constant].
	Compiler Compiler
	// Stream supplies block content. It may be nil when no blocks are
	// declared.
	Stream Capturer
	// Logger receives trace records of the matching steps.
	Logger log.Logger
}

// Options is the argument and block declaration of one tag.
// It is read-only after construction and may be shared by concurrent parses.
type Options struct {
	args   []Argument
	blocks []BlockDecl
}

// NewOptions declares a tag taking args, followed by blocks in order.
func NewOptions(args []Argument, blocks ...BlockDecl) *Options {
	return &Options{
		args:   slices.Clone(args),
		blocks: slices.Clone(blocks),
	}
}

// Arguments returns the declared arguments in order.
func (o *Options) Arguments() []Argument { return slices.Clone(o.args) }

// Blocks returns the declared blocks in order.
func (o *Options) Blocks() []BlockDecl { return slices.Clone(o.blocks) }

// ArgumentNames returns the declared argument names in order.
func (o *Options) ArgumentNames() []string {
	names := make([]string, len(o.args))
	for i, a := range o.args {
		names[i] = a.name
	}

	return names
}

// Validate reports the first argument name declared twice.
func (o *Options) Validate() error {
	seen := make(map[string]struct{}, len(o.args))

	for _, a := range o.args {
		if _, ok := seen[a.name]; ok {
			return ErrDuplicateArgument.
				Wrapf("arguments share the name %s", a.name).
				With(slog.String("argument", a.name))
		}

		seen[a.name] = struct{}{}
	}

	return nil
}

// Parse matches the tokens of inv against o.
//
// Keyword arguments are matched first, then flags, then positional arguments
// by order of the remaining tokens. Blocks are captured afterwards from
// inv.Stream. The returned Blocks has one entry per declared block.
func (o *Options) Parse(ctx context.Context, inv Invocation) (Kwargs, Blocks, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	p := newParser(o, inv)

	kwargs, err := p.parseArguments(ctx)
	if err != nil {
		return nil, nil, err
	}

	blocks, err := p.parseBlocks(ctx)
	if err != nil {
		return nil, nil, err
	}

	return kwargs, blocks, nil
}
