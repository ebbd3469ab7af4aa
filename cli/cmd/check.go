package cmd

import (
	"context"
	"fmt"
)

// Check parses a template without resolving it and reports the first fault.
type Check struct {
	Schema

	Source string `arg:"" default:"-" help:"Template file or '-' for stdin." name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context, stdio *IO) error {
	lib, err := c.library(ctx)
	if err != nil {
		return err
	}

	nodes, err := parse(ctx, lib, stdio.In, c.Source)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdio.Out, "%s: ok (%d elements)\n", c.Source, countElements(nodes))

	return err
}
