package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/tagargs/cli"
	"github.com/ardnew/tagargs/log"
	"github.com/ardnew/tagargs/pkg"
)

func main() {
	if err := cli.Run(context.Background(), os.Exit, os.Args[1:]...); err != nil {
		log.Error("run failed", slog.Any("error", pkg.WrapError(err)))
		os.Exit(1)
	}
}
