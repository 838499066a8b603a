package module

import (
	"context"
	"log/slog"
	"maps"
	"reflect"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/px/log"
)

// maxSuggestions limits the close matches logged for an undefined name.
const maxSuggestions = 3

// Resolver imports modules from a [Registry] on demand.
//
// Each imported module is exposed as a map of its members. A submodule is
// added to its parent's map when imported, so the value resolved for a root
// name grows as deeper paths are used. Imports are cached for the lifetime
// of the Resolver.
type Resolver struct {
	registry *Registry
	logger   log.Logger

	mu       sync.Mutex
	imported map[string]map[string]any
}

// Option configures a [Resolver].
type Option func(*Resolver)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver returns a Resolver importing from reg. A nil reg imports from
// the [Standard] registry.
func NewResolver(reg *Registry, opts ...Option) *Resolver {
	if reg == nil {
		reg = Standard()
	}

	r := &Resolver{
		registry: reg,
		imported: make(map[string]map[string]any),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the value of the free name, importing whatever modules the
// given dotted paths require. Each path starts with name; a nil or empty
// list is treated as the bare name.
//
// For every path, successively longer prefixes are imported until one is
// not a registered module. The remaining segments must then be attributes
// of the last imported module. If name itself is not importable the error
// is [ErrUndefinedName]; a missing attribute is [ErrMissingAttribute].
func (r *Resolver) Resolve(ctx context.Context, name string, paths [][]string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(paths) == 0 {
		paths = [][]string{{name}}
	}

	for _, path := range paths {
		if len(path) == 0 || path[0] != name {
			path = append([]string{name}, path...)
		}

		depth := r.importPrefixes(ctx, path)
		if depth == 0 {
			r.suggest(ctx, name)

			return nil, ErrUndefinedName.Wrapf("name '%s' is not defined", name).
				With(slog.String("name", name))
		}

		if err := r.checkAttributes(path, depth); err != nil {
			return nil, err
		}
	}

	return r.imported[name], nil
}

// importPrefixes imports successively longer prefixes of path and returns
// how many segments were imported.
func (r *Resolver) importPrefixes(ctx context.Context, path []string) int {
	for depth := 1; depth <= len(path); depth++ {
		if !r.importModule(ctx, strings.Join(path[:depth], ".")) {
			return depth - 1
		}
	}

	return len(path)
}

// importModule imports the module at path, whose parent must already be
// imported, and reports whether it exists.
func (r *Resolver) importModule(ctx context.Context, path string) bool {
	if _, ok := r.imported[path]; ok {
		return true
	}

	mod, ok := r.registry.Lookup(path)
	if !ok {
		return false
	}

	ns := maps.Clone(mod.Members)
	r.imported[path] = ns

	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		r.imported[path[:i]][mod.Name()] = ns
	}

	r.logger.DebugContext(ctx, "import module",
		slog.String("module", path),
		slog.Int("members", len(ns)))

	return true
}

// checkAttributes walks the segments of path beyond the imported depth.
func (r *Resolver) checkAttributes(path []string, depth int) error {
	owner := strings.Join(path[:depth], ".")

	var v any = r.imported[owner]

	for _, seg := range path[depth:] {
		next, ok := Attribute(v, seg)
		if !ok {
			return ErrMissingAttribute.
				Wrapf("module '%s' has no attribute '%s'", owner, seg).
				With(slog.String("module", owner), slog.String("attribute", seg))
		}

		v = next
		owner += "." + seg
	}

	return nil
}

// suggest logs top-level module names that fuzzily match name. Only roots
// are candidates since an undefined name is always the first segment.
func (r *Resolver) suggest(ctx context.Context, name string) {
	if !r.logger.Enabled(ctx, log.LevelDebug) {
		return
	}

	matches := fuzzy.Find(name, r.registry.Roots())

	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}

		suggestions = append(suggestions, m.Str)
	}

	r.logger.DebugContext(ctx, "undefined name",
		slog.String("name", name),
		slog.Any("suggestions", suggestions))
}

// Attribute returns the member of v named name: a map entry, an exported
// struct field, or a method.
func Attribute(v any, name string) (any, bool) {
	if m, ok := v.(map[string]any); ok {
		a, ok := m[name]

		return a, ok
	}

	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)

	if m := rv.MethodByName(name); m.IsValid() {
		return m.Interface(), true
	}

	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			if e := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key())); e.IsValid() {
				return e.Interface(), true
			}
		}

	case reflect.Struct:
		if f, ok := rv.Type().FieldByName(name); ok && f.IsExported() {
			return rv.FieldByIndex(f.Index).Interface(), true
		}
	}

	return nil, false
}
