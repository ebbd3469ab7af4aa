package cli

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tagargs/cli/cmd"
	"github.com/ardnew/tagargs/pkg"
)

// CLI is the top-level command-line interface for tagargs.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Parse    cmd.Parse    `cmd:"" help:"Parse a template and print resolved arguments."`
	Check    cmd.Check    `cmd:"" help:"Parse a template and report the first fault."`
	Describe cmd.Describe `cmd:"" help:"Print the declared arguments and blocks of tags."`
	Init     cmd.Init     `cmd:"" help:"Write the current flag values to the configuration file."`
}

type runner struct {
	stdio  *cmd.IO
	config string
	exit   func(code int)
}

// Run executes the tagargs CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when kong exits
// early, as with --help.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	return runner{
		stdio:  &cmd.IO{In: os.Stdin, Out: os.Stdout},
		config: pkg.ConfigFile(),
		exit:   exit,
	}.run(ctx, args)
}

func (r runner) run(ctx context.Context, args []string) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports anything, regardless of their
	// position on the command line.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(r.exit),
		kong.Writers(r.stdio.Out, os.Stderr),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.Bind(r.stdio),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(resolve, r.config),
		kong.Vars{cmd.ConfigIdentifier: r.config}.
			CloneWith(cli.Log.vars()).
			CloneWith(cli.Pprof.vars()),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
