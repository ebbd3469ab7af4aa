package markup

import "github.com/ardnew/tagargs/pkg"

var (
	ErrUnterminatedTag   = pkg.NewError("unterminated tag")
	ErrEmptyTag          = pkg.NewError("empty tag")
	ErrUnknownTag        = pkg.NewError("unknown tag")
	ErrUnclosedBlock     = pkg.NewError("unclosed block")
	ErrAlreadyRegistered = pkg.NewError("tag already registered")
	ErrInvalidTagName    = pkg.NewError("invalid tag name")
)
