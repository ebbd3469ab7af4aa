// Package markup reads template source into elements of registered tags.
//
// Tags are written {% name token token ... %}. Tokens are split on
// whitespace with quoted sections kept together ([SplitContents]). Comments
// are written {# ... #} and discarded. All other text is kept verbatim.
//
// Tags must be registered with a [Library] before parsing. A tag that
// declares blocks captures the content up to its terminator tags, and tags
// nested in that content are parsed as elements too:
//
//	lib := markup.NewLibrary()
//	lib.Register("card", tag.NewOptions(
//		[]tag.Argument{tag.Positional("title")},
//		tag.Block("endcard", "body")))
//
//	nodes, err := markup.Parse(ctx, lib, `{% card 'Hi' %}text{% endcard %}`, nil)
//
// Rendering is left to the caller. [Element.Resolve] produces an inspection
// form with resolved arguments and the source text of each block.
package markup
