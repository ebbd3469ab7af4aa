package tag

import (
	"fmt"
	"slices"

	"github.com/ardnew/tagargs/pkg"
)

// Kind is the way an argument is matched against tokens.
type Kind int

const (
	// KindPositional arguments take the remaining tokens in order.
	KindPositional Kind = iota
	// KindKeyword arguments match a name=value token.
	KindKeyword
	// KindFlag arguments match a bare name or name=value token and
	// resolve to a boolean.
	KindFlag
)

var kindNames = [...]string{"positional", "keyword", "flag"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, bool) {
	i := slices.Index(kindNames[:], s)
	if i < 0 {
		return KindPositional, false
	}

	return Kind(i), true
}

// Argument declares one named input of a tag.
// It is immutable once constructed.
type Argument struct {
	name     string
	kind     Kind
	typ      Type
	def      any
	required bool
	resolve  bool
	choices  []any
}

// ArgumentOption configures an [Argument].
type ArgumentOption = pkg.Option[Argument]

func newArgument(name string, kind Kind, opts ...ArgumentOption) Argument {
	return pkg.Apply(Argument{
		name:     name,
		kind:     kind,
		required: true,
		resolve:  true,
	}, opts...)
}

// Positional declares an argument matched by position.
// Choices do not apply to positional arguments.
func Positional(name string, opts ...ArgumentOption) Argument {
	a := newArgument(name, KindPositional, opts...)
	a.choices = nil

	return a
}

// Keyword declares an argument matched by a name=value token.
func Keyword(name string, opts ...ArgumentOption) Argument {
	return newArgument(name, KindKeyword, opts...)
}

// Flag declares an optional boolean keyword. A bare name token sets it;
// an absent one leaves it false.
func Flag(name string) Argument {
	return Argument{
		name:    name,
		kind:    KindFlag,
		typ:     Boolean,
		def:     false,
		resolve: true,
		choices: []any{false, true},
	}
}

// WithType sets the coercion applied on resolution.
func WithType(t Type) ArgumentOption {
	return func(a Argument) Argument {
		a.typ = t

		return a
	}
}

// WithDefault sets the value used when the argument is absent.
// A string default is parsed like a token. A nil default means no default.
func WithDefault(v any) ArgumentOption {
	return func(a Argument) Argument {
		a.def = v

		return a
	}
}

// Optional marks the argument as not required.
func Optional() ArgumentOption {
	return func(a Argument) Argument {
		a.required = false

		return a
	}
}

// Required marks the argument as required. Arguments are required unless
// [Optional] is given, and a required argument fails when absent even if it
// has a default.
func Required() ArgumentOption {
	return func(a Argument) Argument {
		a.required = true

		return a
	}
}

// Raw keeps tokens as [Constant] values instead of compiling them.
func Raw() ArgumentOption {
	return func(a Argument) Argument {
		a.resolve = false

		return a
	}
}

// WithChoices restricts a keyword argument to the given values.
func WithChoices(choices ...any) ArgumentOption {
	return func(a Argument) Argument {
		a.choices = slices.Clone(choices)

		return a
	}
}

func (a Argument) Name() string { return a.name }

func (a Argument) Kind() Kind { return a.kind }

func (a Argument) Type() Type { return a.typ }

// Default returns the default value, if any.
func (a Argument) Default() (any, bool) { return a.def, a.def != nil }

func (a Argument) IsRequired() bool { return a.required }

// Resolves reports whether tokens are compiled into expressions.
func (a Argument) Resolves() bool { return a.resolve }

func (a Argument) Choices() []any { return slices.Clone(a.choices) }

// onError prepares the value substituted for an invalid choice: the default
// when it is truthy or the argument is optional, else the first choice.
// A string default is compiled like any other default token.
func (a Argument) onError(c Compiler) (Expression, error) {
	if !Truthy(a.def) && a.required {
		return Literal{Value: a.choices[0]}, nil
	}

	if s, ok := a.def.(string); ok {
		return compileToken(c, s, a.resolve)
	}

	return Literal{Value: a.def}, nil
}

func (a Argument) value(p *parser, token string, e Expression) (*Value, error) {
	v := &Value{
		tag:   p.inv.Name,
		name:  a.name,
		token: token,
		typ:   a.typ,
		expr:  e,
	}

	if len(a.choices) > 0 {
		fallback, err := a.onError(p.inv.Compiler)
		if err != nil {
			return nil, err
		}

		v.choice = &choice{options: a.choices, onError: fallback}
	}

	return v, nil
}

// parse compiles token and stores the resulting [Value] in kwargs.
func (a Argument) parse(p *parser, token string, kwargs Kwargs) error {
	if _, dup := kwargs[a.name]; dup {
		return p.duplicate(a.name)
	}

	e, err := compileToken(p.inv.Compiler, token, a.resolve)
	if err != nil {
		return err
	}

	v, err := a.value(p, token, e)
	if err != nil {
		return err
	}

	kwargs[a.name] = v

	return nil
}

// parseValue stores a prebuilt value in kwargs.
func (a Argument) parseValue(p *parser, v any, kwargs Kwargs) error {
	if _, dup := kwargs[a.name]; dup {
		return p.duplicate(a.name)
	}

	val, err := a.value(p, fmt.Sprint(v), Literal{Value: v})
	if err != nil {
		return err
	}

	kwargs[a.name] = val

	return nil
}

// parseDefault stores the default value in kwargs.
func (a Argument) parseDefault(p *parser, kwargs Kwargs) error {
	if s, ok := a.def.(string); ok {
		return a.parse(p, s, kwargs)
	}

	return a.parseValue(p, a.def, kwargs)
}
