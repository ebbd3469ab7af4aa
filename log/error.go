package log

import "github.com/ardnew/tagargs/pkg"

var (
	ErrUnknownLevel  = pkg.NewError("unknown log level")
	ErrUnknownFormat = pkg.NewError("unknown log format")
)
