package compile

import "github.com/ardnew/tagargs/pkg"

var (
	// ErrCompile reports a token that is not a valid expression.
	ErrCompile = pkg.NewError("compile expression")
	// ErrEvaluate reports an expression that failed at run time.
	ErrEvaluate = pkg.NewError("evaluate expression")
)
