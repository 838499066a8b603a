package pipeline

// scope holds assigned names. Lookups fall through to the parent scope.
type scope struct {
	parent *scope
	vars   map[string]any
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]any)}
}

func (s *scope) lookup(name string) (any, bool) {
	for c := s; c != nil; c = c.parent {
		if v, ok := c.vars[name]; ok {
			return v, true
		}
	}

	return nil, false
}

func (s *scope) set(name string, v any) {
	s.vars[name] = v
}
