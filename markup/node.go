package markup

import (
	"context"
	"maps"
	"slices"

	"github.com/ardnew/tagargs/tag"
)

// Node is a parsed piece of template source.
type Node interface {
	Pos() Position
}

// NodeList is a sequence of nodes.
type NodeList []Node

// Elements returns the elements of l, not descending into blocks.
func (l NodeList) Elements() []*Element {
	var out []*Element

	for _, n := range l {
		if e, ok := n.(*Element); ok {
			out = append(out, e)
		}
	}

	return out
}

// Text is literal template text.
type Text struct {
	Position
	Value string
}

func (t *Text) Pos() Position { return t.Position }

// Section is the content of one block.
type Section struct {
	Nodes NodeList
	// Source is the template text of the block, excluding its terminator.
	Source string
}

// Element is an invocation of a registered tag.
type Element struct {
	Position
	Name   string
	Tokens []string
	Kwargs tag.Kwargs
	Blocks tag.Blocks
}

func (e *Element) Pos() Position { return e.Position }

// Section returns the content of the block stored under alias.
func (e *Element) Section(alias string) (Section, bool) {
	s, ok := e.Blocks[alias].(Section)

	return s, ok
}

// Resolved is the inspection form of an [Element].
type Resolved struct {
	Tag       string                   `json:"tag"                 yaml:"tag"`
	Line      int                      `json:"line"                yaml:"line"`
	Arguments map[string]any           `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Blocks    map[string]ResolvedBlock `json:"blocks,omitempty"    yaml:"blocks,omitempty"`
}

// ResolvedBlock is the inspection form of a [Section].
type ResolvedBlock struct {
	Source   string     `json:"source"             yaml:"source"`
	Elements []Resolved `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// Resolve resolves the arguments of e and of every element nested in its
// blocks.
func (e *Element) Resolve(ctx context.Context, vars tag.Vars, p tag.Policy) (Resolved, error) {
	args, err := p.ResolveAll(ctx, e.Kwargs, vars)
	if err != nil {
		return Resolved{}, err
	}

	r := Resolved{Tag: e.Name, Line: e.Line, Arguments: args}

	for _, alias := range slices.Sorted(maps.Keys(e.Blocks)) {
		s, _ := e.Section(alias)

		nested, err := s.Nodes.Resolve(ctx, vars, p)
		if err != nil {
			return Resolved{}, err
		}

		if r.Blocks == nil {
			r.Blocks = make(map[string]ResolvedBlock, len(e.Blocks))
		}

		r.Blocks[alias] = ResolvedBlock{Source: s.Source, Elements: nested}
	}

	return r, nil
}

// Resolve resolves every element of l.
func (l NodeList) Resolve(ctx context.Context, vars tag.Vars, p tag.Policy) ([]Resolved, error) {
	var out []Resolved

	for _, e := range l.Elements() {
		r, err := e.Resolve(ctx, vars, p)
		if err != nil {
			return nil, err
		}

		out = append(out, r)
	}

	return out, nil
}
