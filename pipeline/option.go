package pipeline

import (
	"github.com/ardnew/px/log"
	"github.com/ardnew/px/module"
)

// config holds the settings shared by a Compiler, Executor, and Reporter.
type config struct {
	logger    log.Logger
	resolver  *module.Resolver
	showError bool
	showBool  bool
}

// Option configures a Compiler, Executor, or Reporter. Each constructor
// reads only the settings that apply to it.
type Option func(*config)

func makeConfig(opts ...Option) config {
	var c config

	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithResolver sets the resolver used for names that are neither assigned
// nor in the symbol table. The default resolves the standard modules.
func WithResolver(r *module.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithShowError enables writing row errors to the error stream.
func WithShowError(enable bool) Option {
	return func(c *config) { c.showError = enable }
}

// WithShowBool prints boolean outcomes as True or False instead of using
// them to filter rows.
func WithShowBool(enable bool) Option {
	return func(c *config) { c.showBool = enable }
}
