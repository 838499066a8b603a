package symbol

import (
	"maps"
	"slices"
)

// Table is the read-only set of names available to pipeline stages.
type Table struct {
	user     map[string]any
	builtins map[string]any
	defaults map[string]any
}

// Lookup returns the value bound to name, searching the user tier, the
// builtins, and then the default tier.
func (t *Table) Lookup(name string) (any, bool) {
	if t == nil {
		return nil, false
	}

	for _, tier := range []map[string]any{t.user, t.builtins, t.defaults} {
		if v, ok := tier[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Has reports whether name is bound in any tier.
func (t *Table) Has(name string) bool {
	_, ok := t.Lookup(name)

	return ok
}

// Defines reports whether name is bound in the user tier.
func (t *Table) Defines(name string) bool {
	if t == nil {
		return false
	}

	_, ok := t.user[name]

	return ok
}

// Names returns every bound name in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}

	seen := make(map[string]struct{}, t.Len())
	for _, tier := range []map[string]any{t.user, t.builtins, t.defaults} {
		for name := range tier {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Len returns the number of distinct names in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	n := len(t.builtins) + len(t.defaults)

	for name := range t.user {
		if _, ok := t.builtins[name]; ok {
			continue
		}

		if _, ok := t.defaults[name]; ok {
			continue
		}

		n++
	}

	return n
}
