// Package tag parses the arguments and blocks of template tag invocations.
//
// A tag is declared once with [NewOptions]:
//
//	opts := tag.NewOptions([]tag.Argument{
//		tag.Positional("title", tag.WithType(tag.String)),
//		tag.Keyword("size", tag.WithChoices("sm", "md", "lg"), tag.WithDefault("'md'"), tag.Optional()),
//		tag.Flag("dismissible"),
//	}, tag.Block("endcard", "body"))
//
// Each invocation is then matched with [Options.Parse], which returns a
// [Value] per argument and the captured content of each block. Values are
// resolved later, against the variables in effect, by [Value.Resolve]. A
// [Policy] decides whether a value of the wrong type is an error or a logged
// warning with a fallback.
//
// Tokens are turned into expressions by a [Compiler]. Without one, or for
// arguments declared [Raw], tokens become [Constant] values, which only
// look up variables and read plain data literals (see [ParseLiteral]).
package tag
