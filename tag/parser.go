package tag

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// parser is the state of a single [Options.Parse] call.
type parser struct {
	opts *Options
	inv  Invocation
	pool []string // tokens not yet matched
}

func newParser(o *Options, inv Invocation) *parser {
	return &parser{
		opts: o,
		inv:  inv,
		pool: slices.Clone(inv.Tokens),
	}
}

func (p *parser) attrs(extra ...slog.Attr) []slog.Attr {
	return append([]slog.Attr{slog.String("tag", p.inv.Name)}, extra...)
}

func (p *parser) duplicate(name string) error {
	return ErrDuplicateArgument.
		Wrapf("tag %q got arguments with the same name: %s", p.inv.Name, name).
		With(p.attrs(slog.String("argument", name))...)
}

func (p *parser) required(name string) error {
	return ErrArgumentRequired.
		Wrapf("tag %q requires the %q argument", p.inv.Name, name).
		With(p.attrs(slog.String("argument", name))...)
}

func (p *parser) tooMany(extra []string) error {
	msg := fmt.Sprintf("tag %q got too many arguments: %s", p.inv.Name, quoteList(extra))

	if hint := p.suggest(extra); hint != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", hint)
	}

	return ErrTooManyArguments.
		Wrapf("%s", msg).
		With(p.attrs(slog.Any("extra", extra))...)
}

// suggest returns the declared keyword or flag closest to the key of the
// first surplus key=value token.
func (p *parser) suggest(extra []string) string {
	var names []string

	for _, a := range p.opts.args {
		if a.kind != KindPositional {
			names = append(names, a.name)
		}
	}

	for _, tok := range extra {
		key, _, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			continue
		}

		if m := fuzzy.Find(key, names); len(m) > 0 {
			return m[0].Str
		}
	}

	return ""
}

// take removes and returns the first pooled token satisfying match.
func (p *parser) take(match func(string) (string, bool)) (string, bool) {
	for i, tok := range p.pool {
		if val, ok := match(tok); ok {
			p.pool = slices.Delete(p.pool, i, i+1)

			return val, true
		}
	}

	return "", false
}

// keyed matches name=value tokens and yields the value.
func keyed(name string) func(string) (string, bool) {
	return func(tok string) (string, bool) {
		if !strings.HasPrefix(tok, name) {
			return "", false
		}

		key, val, ok := strings.Cut(tok, "=")

		return val, ok && key == name
	}
}

func (p *parser) trace(ctx context.Context, msg string, a Argument, how string) {
	p.inv.Logger.TraceContext(ctx, msg, p.attrs(
		slog.String("argument", a.name),
		slog.String("kind", a.kind.String()),
		slog.String("source", how))...)
}

func (p *parser) parseArguments(ctx context.Context) (Kwargs, error) {
	var keywords, flags, positional []Argument

	for _, a := range p.opts.args {
		switch a.kind {
		case KindFlag:
			flags = append(flags, a)
		case KindKeyword:
			keywords = append(keywords, a)
		default:
			positional = append(positional, a)
		}
	}

	kwargs := make(Kwargs, len(p.opts.args))

	for _, a := range keywords {
		if err := p.matchKeyword(ctx, a, kwargs); err != nil {
			return nil, err
		}
	}

	for _, a := range flags {
		if err := p.matchFlag(ctx, a, kwargs); err != nil {
			return nil, err
		}
	}

	if len(p.pool) > len(positional) {
		return nil, p.tooMany(p.pool[len(positional):])
	}

	for i, a := range positional {
		if err := p.matchPositional(ctx, a, i, kwargs); err != nil {
			return nil, err
		}
	}

	return kwargs, nil
}

func (p *parser) matchKeyword(ctx context.Context, a Argument, kwargs Kwargs) error {
	if val, ok := p.take(keyed(a.name)); ok {
		p.trace(ctx, "matched argument", a, "token")

		return a.parse(p, val, kwargs)
	}

	if a.required {
		return p.required(a.name)
	}

	if a.def == nil {
		return nil
	}

	p.trace(ctx, "matched argument", a, "default")

	return a.parseDefault(p, kwargs)
}

func (p *parser) matchFlag(ctx context.Context, a Argument, kwargs Kwargs) error {
	bare := false

	val, ok := p.take(func(tok string) (string, bool) {
		if tok == a.name {
			bare = true

			return "", true
		}

		return keyed(a.name)(tok)
	})

	switch {
	case !ok:
		p.trace(ctx, "matched argument", a, "default")

		return a.parseValue(p, false, kwargs)
	case bare:
		p.trace(ctx, "matched argument", a, "bare")

		return a.parseValue(p, true, kwargs)
	default:
		p.trace(ctx, "matched argument", a, "token")

		return a.parse(p, val, kwargs)
	}
}

func (p *parser) matchPositional(ctx context.Context, a Argument, i int, kwargs Kwargs) error {
	if i < len(p.pool) {
		p.trace(ctx, "matched argument", a, "token")

		return a.parse(p, p.pool[i], kwargs)
	}

	if a.required {
		return p.required(a.name)
	}

	if !Truthy(a.def) {
		return nil
	}

	p.trace(ctx, "matched argument", a, "default")

	return a.parseDefault(p, kwargs)
}
