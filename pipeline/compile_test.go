package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		source string
		kind   Kind
		target string
		expr   string
	}{
		{"x + 1", KindExpr, "", "x + 1"},
		{"xargs", KindAggregate, "", ""},
		{" unxargs ", KindFlatten, "", ""},
		{"a=0", KindAssign, "a", "0"},
		{"  total = x * 2", KindAssign, "total", " x * 2"},
		{"a == b", KindExpr, "", "a == b"},
		{"a <= b", KindExpr, "", "a <= b"},
		{"a != b", KindExpr, "", "a != b"},
		{"f(a=1)", KindExpr, "", "f(a=1)"},
		{"xargs2", KindExpr, "", "xargs2"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			st := classify(0, tt.source)

			if st.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", st.Kind, tt.kind)
			}

			if st.Target != tt.target {
				t.Errorf("Target = %q, want %q", st.Target, tt.target)
			}

			if st.Expr != tt.expr {
				t.Errorf("Expr = %q, want %q", st.Expr, tt.expr)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindExpr:      "expr",
		KindAssign:    "assign",
		KindAggregate: "xargs",
		KindFlatten:   "unxargs",
		Kind(9):       "Kind(9)",
	}

	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestCompile_Analysis(t *testing.T) {
	table := newTable(t)

	tests := []struct {
		source      string
		names       []string
		paths       map[string][][]string
		refsBinding bool
		eager       bool
	}{
		{source: "int", names: []string{"int"}, eager: true},
		{source: "5 / 0", names: []string{}, eager: true},
		{source: "x", names: []string{"x"}, refsBinding: true},
		{source: "foo", names: []string{"foo"}},
		{source: "k", names: []string{"k"}},
		{source: "len(_pi)", names: []string{"_pi", "len"}, eager: true},
		{source: "let y = 2; y * x", names: []string{"x"}, refsBinding: true},
		{
			source: "os.path.join(x, 'a') + os.sep",
			names:  []string{"os", "x"},
			paths: map[string][][]string{
				"os": {{"os", "path", "join"}, {"os", "sep"}},
				"x":  nil,
			},
			refsBinding: true,
		},
		{
			source: "map(x, # * 2)",
			names:  []string{"x"},
			refsBinding: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			p, err := Compile(context.Background(), table, []string{"k=1", tt.source})
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}

			st := p.Stages[1]

			if !slices.Equal(st.Names, tt.names) {
				t.Errorf("Names = %q, want %q", st.Names, tt.names)
			}

			for name, want := range tt.paths {
				got := st.Paths[name]
				if !slices.EqualFunc(got, want, slices.Equal[[]string]) {
					t.Errorf("Paths[%q] = %q, want %q", name, got, want)
				}
			}

			if st.RefsBinding != tt.refsBinding {
				t.Errorf("RefsBinding = %v, want %v", st.RefsBinding, tt.refsBinding)
			}

			if st.Eager != tt.eager {
				t.Errorf("Eager = %v, want %v", st.Eager, tt.eager)
			}
		})
	}
}

func TestCompile_UntypedNames(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
	}{
		{"binding arithmetic", []string{"x + 5"}},
		{"binding comparison", []string{"x > 4"}},
		{"assigned operand", []string{"k=1000", "x * k"}},
		{"assigned left operand", []string{"a=2", "a * x"}},
		{"module member", []string{"json.decode(x)"}},
		{"module member value", []string{"strings.upper"}},
		{"binding index", []string{"x['a'] + 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(context.Background(), newTable(t), tt.sources)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.sources, err)
			}

			for _, st := range p.Stages {
				if st.program == nil {
					t.Errorf("stage %d (%q) has no program", st.Index, st.Source)
				}
			}
		})
	}
}

func TestCompile_Targets(t *testing.T) {
	p, err := Compile(context.Background(), newTable(t), []string{"b=1", "a=x", "xargs", "a"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if !slices.Equal(p.Targets, []string{"a", "b"}) {
		t.Errorf("Targets = %q", p.Targets)
	}

	segs := p.segments()
	if len(segs) != 2 || len(segs[0]) != 2 || len(segs[1]) != 1 {
		t.Errorf("segments = %v", segs)
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
	}{
		{"none", nil},
		{"syntax", []string{"x", "5 +"}},
		{"empty", []string{""}},
		{"empty assignment", []string{"a= "}},
		{"unbalanced", []string{"(x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(context.Background(), newTable(t), tt.sources)
			if !errors.Is(err, ErrCompile) {
				t.Errorf("Compile(%q) error = %v, want %v", tt.sources, err, ErrCompile)
			}
		})
	}
}

func TestCompile_CachesPrograms(t *testing.T) {
	c := NewCompiler(newTable(t))

	p, err := c.Compile(context.Background(), []string{"1 / x", "1 / x", "2 / x"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if p.Stages[0].program != p.Stages[1].program {
		t.Error("identical expressions compiled twice")
	}

	if p.Stages[0].program == p.Stages[2].program {
		t.Error("distinct expressions share a program")
	}
}

func TestMaximal(t *testing.T) {
	got := maximal([][]string{
		{"a"},
		{"a", "b"},
		{"a", "b", "c"},
		{"a", "d"},
		{"a", "b", "c"},
	})

	want := [][]string{{"a", "b", "c"}, {"a", "d"}}
	if !slices.EqualFunc(got, want, slices.Equal[[]string]) {
		t.Errorf("maximal() = %q, want %q", got, want)
	}
}
