package compile

import (
	"log/slog"
	"maps"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/tagargs/log"
	"github.com/ardnew/tagargs/pkg"
	"github.com/ardnew/tagargs/tag"
)

// Compiler compiles tokens into expr-lang programs.
// It is safe for concurrent use and caches programs by source text.
type Compiler struct {
	env    map[string]any
	logger log.Logger
	cache  sync.Map // string -> *entry
}

// Option configures a [Compiler].
type Option = pkg.Option[*Compiler]

type entry struct {
	once sync.Once
	prog *vm.Program
	err  error
}

// New returns a Compiler with the default builtins.
func New(opts ...Option) *Compiler {
	return pkg.Apply(&Compiler{env: builtins()}, opts...)
}

// WithBuiltin makes value available to expressions as name.
func WithBuiltin(name string, value any) Option {
	return func(c *Compiler) *Compiler {
		c.env[name] = value

		return c
	}
}

// WithLogger sets the logger receiving trace records.
func WithLogger(logger log.Logger) Option {
	return func(c *Compiler) *Compiler {
		c.logger = logger

		return c
	}
}

// Compile implements [tag.Compiler].
// Identifiers not bound when the expression runs evaluate to nil.
func (c *Compiler) Compile(token string) (tag.Expression, error) {
	v, hit := c.cache.Load(token)
	if !hit {
		v, hit = c.cache.LoadOrStore(token, new(entry))
	}

	e := v.(*entry)

	e.once.Do(func() {
		e.prog, e.err = expr.Compile(token,
			expr.Env(c.env),
			expr.AllowUndefinedVariables())
	})

	c.logger.Trace("compile expression",
		slog.String("source", token),
		slog.Bool("cache_hit", hit))

	if e.err != nil {
		return nil, ErrCompile.Wrap(e.err).With(slog.String("source", token))
	}

	return &program{source: token, prog: e.prog, c: c}, nil
}

// Len returns the number of cached programs.
func (c *Compiler) Len() int {
	n := 0

	c.cache.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

type program struct {
	source string
	prog   *vm.Program
	c      *Compiler
}

// Resolve runs the program with vars layered over the builtins.
func (p *program) Resolve(vars tag.Vars) (any, error) {
	env := maps.Clone(p.c.env)
	maps.Copy(env, vars)

	out, err := expr.Run(p.prog, env)
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(slog.String("source", p.source))
	}

	return out, nil
}

// String returns the source text.
func (p *program) String() string { return p.source }
