package symbol

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/ardnew/px/log"
)

// Library is a named group of symbols contributed to the default tier.
type Library struct {
	Name    string
	Symbols map[string]any
}

// Builder assembles a [Table] from the builtins, a list of libraries, and
// user symbol files.
type Builder struct {
	libraries []Library
	files     []string
	rng       *rand.Rand
	logger    log.Logger
}

// Option configures a [Builder].
type Option func(*Builder)

// WithLibraries replaces the default libraries. Libraries are registered in
// the order given.
func WithLibraries(libs ...Library) Option {
	return func(b *Builder) {
		b.libraries = libs
	}
}

// WithFiles appends user symbol files, loaded in the order given. A name
// defined by a later file replaces the same name from an earlier one.
func WithFiles(paths ...string) Option {
	return func(b *Builder) {
		for _, p := range paths {
			if p = strings.TrimSpace(p); p != "" {
				b.files = append(b.files, p)
			}
		}
	}
}

// WithSeed seeds the random source used by the random library, making its
// results reproducible.
func WithSeed(seed uint64) Option {
	return func(b *Builder) {
		b.rng = rand.New(rand.NewPCG(seed, seed)) //nolint:gosec
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder with the default libraries.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}

	for _, opt := range opts {
		opt(b)
	}

	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec
	}

	if b.libraries == nil {
		b.libraries = DefaultLibraries(b.rng)
	}

	return b
}

// Build loads the user symbol files and returns the completed table.
// A file that cannot be read or decoded into a mapping is an
// [ErrSymbolFile] error.
func (b *Builder) Build(ctx context.Context) (*Table, error) {
	t := &Table{
		user:     make(map[string]any),
		builtins: Builtins(),
		defaults: make(map[string]any),
	}

	for _, lib := range b.libraries {
		added := register(t.defaults, lib)

		b.logger.TraceContext(ctx, "register library",
			slog.String("library", lib.Name),
			slog.Int("symbols", added))
	}

	for _, path := range b.files {
		syms, err := LoadFile(path)
		if err != nil {
			return nil, err
		}

		for name, v := range syms {
			t.user[name] = v
		}

		b.logger.DebugContext(ctx, "load symbol file",
			slog.String("path", path),
			slog.Int("symbols", len(syms)))
	}

	return t, nil
}

// register adds the public symbols of lib to tier under their
// underscore-prefixed names and returns how many were added. A name already
// claimed by an earlier library is kept.
func register(tier map[string]any, lib Library) int {
	added := 0

	for name, v := range lib.Symbols {
		if name == "" || strings.HasPrefix(name, "_") {
			continue
		}

		key := "_" + name
		if _, ok := tier[key]; ok {
			continue
		}

		tier[key] = v
		added++
	}

	return added
}

// DefaultLibraries returns the default libraries in registration order.
// The random library draws from rng.
func DefaultLibraries(rng *rand.Rand) []Library {
	return []Library{
		Container(),
		Path(),
		Math(),
		Pretty(),
		Random(rng),
		Strings(),
		Textwrap(),
		System(),
	}
}
