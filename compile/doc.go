// Package compile resolves tag tokens as expr-lang expressions.
//
// A [Compiler] implements [tag.Compiler]. Tokens are compiled once and the
// program is reused by every invocation that spells the same token:
//
//	c := compile.New()
//	kwargs, blocks, err := opts.Parse(ctx, tag.Invocation{
//		Name:     "card",
//		Tokens:   tokens,
//		Compiler: c,
//	})
//
// Expressions see the template variables plus a few builtins: True, False
// and None, prefix(subject, items...) for class lists, and
// coalesce(values...).
package compile
