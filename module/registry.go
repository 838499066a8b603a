package module

import (
	"maps"
	"slices"
	"strings"
)

// Module is an importable namespace.
type Module struct {
	Path    string
	Members map[string]any
}

// Name returns the last segment of the module path.
func (m *Module) Name() string {
	return m.Path[strings.LastIndexByte(m.Path, '.')+1:]
}

// Registry holds the modules available for import, keyed by dotted path.
type Registry struct {
	modules map[string]*Module
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Register adds a module at path, merging members into any module already
// registered there. Missing parent modules are registered empty, so
// registering "a.b.c" makes "a" and "a.b" importable.
func (r *Registry) Register(path string, members map[string]any) *Registry {
	parts := strings.Split(path, ".")

	for i := range parts {
		p := strings.Join(parts[:i+1], ".")
		if _, ok := r.modules[p]; !ok {
			r.modules[p] = &Module{Path: p, Members: make(map[string]any)}
		}
	}

	maps.Copy(r.modules[path].Members, members)

	return r
}

// Lookup returns the module registered at path.
func (r *Registry) Lookup(path string) (*Module, bool) {
	m, ok := r.modules[path]

	return m, ok
}

// Paths returns every registered module path in sorted order.
func (r *Registry) Paths() []string {
	return slices.Sorted(maps.Keys(r.modules))
}

// Roots returns the sorted top-level module names.
func (r *Registry) Roots() []string {
	var roots []string

	for p := range r.modules {
		if !strings.Contains(p, ".") {
			roots = append(roots, p)
		}
	}

	slices.Sort(roots)

	return roots
}
