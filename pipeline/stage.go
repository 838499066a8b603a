package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/vm"
)

// Kind identifies how a stage transforms the rows passing through it.
type Kind int

const (
	KindExpr      Kind = iota // expression
	KindAssign                // name = expression
	KindAggregate             // xargs
	KindFlatten               // unxargs
)

// Keywords that select the aggregate and flatten stage kinds.
const (
	AggregateKeyword = "xargs"
	FlattenKeyword   = "unxargs"
)

// bindingName is the name under which a row's current value is visible.
const bindingName = "x"

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindExpr:
		return "expr"
	case KindAssign:
		return "assign"
	case KindAggregate:
		return AggregateKeyword
	case KindFlatten:
		return FlattenKeyword
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// assignPattern matches "name = expr" without matching comparisons such as
// "a == b", "a <= b", or "a != b".
var assignPattern = regexp.MustCompile(`(?s)^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=([^=].*)$`)

// Stage is one compiled element of a pipeline.
type Stage struct {
	Index  int    // position in the pipeline
	Kind   Kind   // how the stage transforms rows
	Source string // text as given on the command line
	Expr   string // expression text; the right-hand side for assignments
	Target string // assigned name, for KindAssign

	// Names lists the free names referenced by Expr in sorted order.
	Names []string
	// Paths maps each free name to the member paths rooted at it, such as
	// ["os", "path", "join"] for os.path.join.
	Paths map[string][][]string
	// RefsBinding reports whether Expr references the row binding x. It is
	// false when a user symbol named x shadows the binding.
	RefsBinding bool
	// Eager reports whether Expr depends only on symbol table names, so its
	// value is computed once per run.
	Eager bool

	program *vm.Program
}

// classify determines the kind of the stage given by source.
func classify(index int, source string) *Stage {
	st := &Stage{Index: index, Source: source, Expr: source}

	switch strings.TrimSpace(source) {
	case AggregateKeyword:
		st.Kind = KindAggregate
		st.Expr = ""

	case FlattenKeyword:
		st.Kind = KindFlatten
		st.Expr = ""

	default:
		if m := assignPattern.FindStringSubmatch(source); m != nil {
			st.Kind = KindAssign
			st.Target = m[1]
			st.Expr = m[2]
		}
	}

	return st
}

// evaluates reports whether the stage has an expression to evaluate.
func (s *Stage) evaluates() bool {
	return s.Kind == KindExpr || s.Kind == KindAssign
}

// Pipeline is an ordered, compiled sequence of stages.
type Pipeline struct {
	Stages []*Stage
	// Targets lists every name assigned by some stage, in sorted order.
	Targets []string

	compiler *Compiler
}

// segments splits the stages at each aggregate stage. The aggregate stages
// themselves are not included; a pipeline with n aggregates has n+1
// segments, any of which may be empty.
func (p *Pipeline) segments() [][]*Stage {
	segs := [][]*Stage{{}}

	for _, st := range p.Stages {
		if st.Kind == KindAggregate {
			segs = append(segs, []*Stage{})

			continue
		}

		segs[len(segs)-1] = append(segs[len(segs)-1], st)
	}

	return segs
}
