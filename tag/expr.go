package tag

import "strings"

// Vars is the runtime context values are resolved against.
type Vars map[string]any

// Lookup returns the value bound to key.
// The boolean distinguishes a missing key from a key bound to nil.
func (v Vars) Lookup(key string) (any, bool) {
	val, ok := v[key]

	return val, ok
}

// Expression is a token prepared for resolution against [Vars].
type Expression interface {
	Resolve(vars Vars) (any, error)
}

// Compiler turns a token into an [Expression].
type Compiler interface {
	Compile(token string) (Expression, error)
}

// CompilerFunc adapts a function to the [Compiler] interface.
type CompilerFunc func(token string) (Expression, error)

// Compile calls f(token).
func (f CompilerFunc) Compile(token string) (Expression, error) { return f(token) }

// Constant is a token that resolves to itself.
//
// Surrounding quote characters are stripped first. The stripped text is then
// looked up in the variables. When absent, an unquoted token is read as a
// literal (numbers, booleans, nil, and list or map literals of those) and
// anything else is returned as the plain string. A quoted token is never read
// as a literal.
type Constant string

// Resolve implements [Expression].
func (c Constant) Resolve(vars Vars) (any, error) {
	token := string(c)
	text := strings.Trim(token, `"'`)

	if v, ok := vars.Lookup(text); ok {
		return v, nil
	}

	if text == token {
		if v, ok := ParseLiteral(text); ok {
			return v, nil
		}
	}

	return text, nil
}

// Literal is a Go value used as an [Expression].
type Literal struct{ Value any }

// Resolve implements [Expression].
func (l Literal) Resolve(Vars) (any, error) { return l.Value, nil }

// compileToken prepares token according to the resolve mode of an argument.
func compileToken(c Compiler, token string, resolve bool) (Expression, error) {
	if !resolve || c == nil {
		return Constant(token), nil
	}

	e, err := c.Compile(token)
	if err != nil {
		return nil, ErrCompile.Wrap(err)
	}

	return e, nil
}
