package tag

import (
	"fmt"
	"strings"

	"github.com/ardnew/tagargs/pkg"
)

var (
	// ErrArgumentRequired reports a required argument with no matching token.
	ErrArgumentRequired = pkg.NewError("argument required")
	// ErrDuplicateArgument reports two arguments sharing one name.
	ErrDuplicateArgument = pkg.NewError("duplicate argument")
	// ErrTooManyArguments reports tokens left over after every argument
	// has been matched.
	ErrTooManyArguments = pkg.NewError("too many arguments")
	// ErrTemplateSyntax reports a value that could not be coerced while
	// [Policy.Debug] is set, or a malformed block sequence.
	ErrTemplateSyntax = pkg.NewError("template syntax error")
	// ErrUnknownType reports an unrecognized value type name.
	ErrUnknownType = pkg.NewError("unknown value type")
	// ErrCompile reports a token rejected by the [Compiler].
	ErrCompile = pkg.NewError("invalid token")
)

// quoteList renders tokens the way they appear in error messages: 'a', 'b'.
func quoteList(tokens []string) string {
	q := make([]string, len(tokens))
	for i, t := range tokens {
		q[i] = "'" + t + "'"
	}

	return strings.Join(q, ", ")
}

// describe renders a runtime value for a coercion message.
func describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
