package markup

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/ardnew/tagargs/log"
	"github.com/ardnew/tagargs/pkg"
	"github.com/ardnew/tagargs/tag"
)

// Library maps tag names to their declarations.
// Registration is explicit; nothing is registered implicitly.
type Library struct {
	mu     sync.RWMutex
	tags   map[string]*tag.Options
	logger log.Logger
}

// LibraryOption configures a [Library].
type LibraryOption = pkg.Option[*Library]

// NewLibrary returns an empty Library.
func NewLibrary(opts ...LibraryOption) *Library {
	return pkg.Apply(&Library{tags: map[string]*tag.Options{}}, opts...)
}

// WithLogger sets the logger receiving parse trace records and coercion
// warnings of elements parsed with the library.
func WithLogger(logger log.Logger) LibraryOption {
	return func(l *Library) *Library {
		l.logger = logger

		return l
	}
}

// Logger returns the configured logger.
func (l *Library) Logger() log.Logger { return l.logger }

// Register adds a tag. The declaration is validated first.
func (l *Library) Register(name string, opts *tag.Options) error {
	if !validName(name) {
		return ErrInvalidTagName.Wrapf("%q", name)
	}

	if err := opts.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.tags[name]; ok {
		return ErrAlreadyRegistered.Wrapf("%q", name).With(slog.String("tag", name))
	}

	l.tags[name] = opts

	l.logger.Debug("registered tag",
		slog.String("tag", name),
		slog.Any("arguments", opts.ArgumentNames()))

	return nil
}

// Lookup returns the declaration of the named tag.
func (l *Library) Lookup(name string) (*tag.Options, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	opts, ok := l.tags[name]

	return opts, ok
}

// Names returns the registered tag names in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Sorted(maps.Keys(l.tags))
}

func validName(name string) bool {
	return name != "" && strings.IndexFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '%' || r == '{' || r == '}'
	}) < 0
}
