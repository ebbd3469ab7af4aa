package tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"github.com/ardnew/tagargs/log"
)

// Policy decides what happens when a resolved value cannot be coerced.
//
// With Debug set, resolution fails with [ErrTemplateSyntax]. Otherwise a
// warning is written to Logger and a fallback value is substituted.
type Policy struct {
	Debug  bool
	Logger log.Logger
}

// fail applies p to a coercion fault.
func (p Policy) fail(ctx context.Context, v *Value, reason string, fallback any) (any, error) {
	attrs := []slog.Attr{
		slog.String("tag", v.tag),
		slog.String("argument", v.name),
		slog.String("token", v.token),
		slog.String("reason", reason),
	}

	if p.Debug {
		return nil, ErrTemplateSyntax.Wrap(errors.New(reason)).With(attrs...)
	}

	p.Logger.WarnContext(ctx, "template syntax warning", attrs...)

	return fallback, nil
}

// ResolveAll resolves every value in kwargs against vars.
// Values are resolved in name order and the first error stops resolution.
func (p Policy) ResolveAll(ctx context.Context, kwargs Kwargs, vars Vars) (map[string]any, error) {
	out := make(map[string]any, len(kwargs))

	for _, name := range slices.Sorted(maps.Keys(kwargs)) {
		v, err := kwargs[name].Resolve(ctx, vars, p)
		if err != nil {
			return nil, err
		}

		out[name] = v
	}

	return out, nil
}

// choice restricts a coerced value to a closed set.
type choice struct {
	options []any
	onError Expression
}

func (c *choice) contains(v any) bool {
	return slices.ContainsFunc(c.options, func(o any) bool { return equal(o, v) })
}

// equal compares numbers by value and everything else structurally.
func equal(a, b any) bool {
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return x == y
		}
	}

	return reflect.DeepEqual(a, b)
}

// Value is a parsed argument awaiting resolution.
type Value struct {
	tag    string
	name   string
	token  string
	typ    Type
	choice *choice
	expr   Expression
}

// Name returns the name of the argument v was parsed for.
func (v *Value) Name() string { return v.name }

// Type returns the coercion applied on resolution.
func (v *Value) Type() Type { return v.typ }

// Literal returns the source text of the token, or the textual form of the
// default or implied flag value.
func (v *Value) Literal() string { return v.token }

// Expression returns the unresolved expression.
func (v *Value) Expression() Expression { return v.expr }

// Resolve evaluates the expression against vars and coerces the result.
func (v *Value) Resolve(ctx context.Context, vars Vars, p Policy) (any, error) {
	raw, err := v.expr.Resolve(vars)
	if err != nil {
		return nil, fmt.Errorf("resolve %s %q: %w", v.tag, v.name, err)
	}

	out, reason, ok := v.typ.Coerce(raw)

	switch {
	case v.choice == nil && !ok:
		out, err = p.fail(ctx, v, reason, out)
		if err != nil {
			return nil, err
		}
	case v.choice != nil && !ok:
		return v.invalid(ctx, vars, p, reason)
	case v.choice != nil && !v.choice.contains(out):
		return v.invalid(ctx, vars, p, fmt.Sprintf(
			"%s is not a valid choice. Valid choices: %s.",
			describe(out), describe(v.choice.options)))
	}

	p.Logger.TraceContext(ctx, "resolved argument",
		slog.String("tag", v.tag),
		slog.String("argument", v.name),
		slog.Any("value", out))

	return out, nil
}

// invalid applies p to a choice argument, substituting the resolved choice
// fallback.
func (v *Value) invalid(ctx context.Context, vars Vars, p Policy, reason string) (any, error) {
	if p.Debug {
		return p.fail(ctx, v, reason, nil)
	}

	fallback, err := v.choice.onError.Resolve(vars)
	if err != nil {
		return nil, fmt.Errorf("resolve %s %q fallback: %w", v.tag, v.name, err)
	}

	return p.fail(ctx, v, reason, fallback)
}
