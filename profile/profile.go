package profile

import "github.com/ardnew/tagargs/pkg"

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

type config struct {
	mode  string
	path  string
	quiet bool
}

// Option configures a profiling session.
type Option = pkg.Option[config]

// WithMode selects the profile to record. See [Modes].
func WithMode(mode string) Option {
	return func(c config) config {
		c.mode = mode

		return c
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(c config) config {
		c.path = path

		return c
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(c config) config {
		c.quiet = quiet

		return c
	}
}

// Start begins profiling. Both Start and the returned Stop are always safe to
// call; with no mode, an unknown mode, or without the build tag, they do
// nothing.
func Start(opts ...Option) Stopper {
	c := pkg.Apply(config{}, opts...)
	if c.mode == "" {
		return ignore{}
	}

	return start(c)
}

type ignore struct{}

func (ignore) Stop() {}
