package cmd

import "github.com/ardnew/tagargs/pkg"

var (
	ErrReadSource  = pkg.NewError("read template")
	ErrLoadSchema  = pkg.NewError("load schema")
	ErrLoadVars    = pkg.NewError("load variables")
	ErrParse       = pkg.NewError("parse template")
	ErrResolve     = pkg.NewError("resolve arguments")
	ErrEncode      = pkg.NewError("encode output")
	ErrUnknownTag  = pkg.NewError("tag not declared")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
)
