package schema

import "github.com/ardnew/tagargs/pkg"

// ErrInvalidSchema reports a document that does not describe valid tags.
var ErrInvalidSchema = pkg.NewError("invalid schema")
