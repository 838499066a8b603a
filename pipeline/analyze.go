package pipeline

import (
	"maps"
	"slices"
	"strings"

	"github.com/expr-lang/expr/ast"
)

// analyzer collects the free names and member paths of a parsed expression.
type analyzer struct {
	names    map[string]struct{}
	declared map[string]struct{}
	members  map[string][][]string
}

func newAnalyzer() *analyzer {
	return &analyzer{
		names:    make(map[string]struct{}),
		declared: make(map[string]struct{}),
		members:  make(map[string][][]string),
	}
}

// Visit implements ast.Visitor for analyzer.
func (a *analyzer) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if !strings.HasPrefix(n.Value, "$") {
			a.names[n.Value] = struct{}{}
		}

	case *ast.VariableDeclaratorNode:
		a.declared[n.Name] = struct{}{}

	case *ast.MemberNode:
		if path, ok := extractMemberPath(n); ok {
			a.members[path[0]] = append(a.members[path[0]], path)
		}
	}
}

// free returns the referenced names not declared by a let binding.
func (a *analyzer) free() []string {
	names := make([]string, 0, len(a.names))

	for name := range a.names {
		if _, ok := a.declared[name]; !ok {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}

// paths returns the longest member paths rooted at each free name.
func (a *analyzer) paths(names []string) map[string][][]string {
	out := make(map[string][][]string)

	for _, name := range names {
		if found := maximal(a.members[name]); len(found) > 0 {
			out[name] = found
		}
	}

	return out
}

// extractMemberPath walks a MemberNode chain with constant properties to
// produce its path segments, e.g. ["os", "path", "join"].
func extractMemberPath(node ast.Node) ([]string, bool) {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		return []string{n.Value}, true

	case *ast.MemberNode:
		prop, ok := n.Property.(*ast.StringNode)
		if !ok {
			return nil, false
		}

		base, ok := extractMemberPath(n.Node)
		if !ok {
			return nil, false
		}

		return append(base, prop.Value), true

	default:
		return nil, false
	}
}

// maximal drops duplicate paths and paths that prefix another path.
func maximal(paths [][]string) [][]string {
	seen := make(map[string][]string, len(paths))

	for _, p := range paths {
		seen[strings.Join(p, ".")] = p
	}

	out := make([][]string, 0, len(seen))

	for _, key := range slices.Sorted(maps.Keys(seen)) {
		p := seen[key]

		covered := false

		for _, q := range seen {
			if len(q) > len(p) && slices.Equal(q[:len(p)], p) {
				covered = true

				break
			}
		}

		if !covered {
			out = append(out, p)
		}
	}

	return out
}
