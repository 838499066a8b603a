package pipeline

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/conf"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/px/log"
	"github.com/ardnew/px/symbol"
)

// Compiler turns source strings into a [Pipeline] evaluated against a
// symbol table.
//
// Programs are cached by a hash of their expression text, so repeated
// stages such as "1 / x" "1 / x" are compiled once.
type Compiler struct {
	table  *symbol.Table
	logger log.Logger
	cache  sync.Map // uint64 -> *vm.Program
}

// NewCompiler returns a Compiler for the given symbol table.
// A nil table is treated as empty.
func NewCompiler(table *symbol.Table, opts ...Option) *Compiler {
	cfg := makeConfig(opts...)

	return &Compiler{table: table, logger: cfg.logger}
}

// Compile is a convenience for NewCompiler(table, opts...).Compile.
func Compile(
	ctx context.Context,
	table *symbol.Table,
	sources []string,
	opts ...Option,
) (*Pipeline, error) {
	return NewCompiler(table, opts...).Compile(ctx, sources)
}

// Compile classifies and compiles each source string as one stage.
//
// Every expression is parsed and type-checked up front; a syntax error in
// any stage fails the whole pipeline before input is read.
func (c *Compiler) Compile(ctx context.Context, sources []string) (*Pipeline, error) {
	if len(sources) == 0 {
		return nil, ErrCompile.Wrapf("no expressions given")
	}

	stages := make([]*Stage, len(sources))
	targets := make(map[string]bool)

	for i, source := range sources {
		st := classify(i, source)
		if st.Kind == KindAssign {
			targets[st.Target] = true
		}

		stages[i] = st
	}

	env := c.environment(targets)

	for _, st := range stages {
		if !st.evaluates() {
			continue
		}

		if err := c.compileStage(ctx, st, env, targets); err != nil {
			return nil, err
		}
	}

	c.logger.DebugContext(
		ctx,
		"compiled pipeline",
		slog.Int("stages", len(stages)),
		slog.Int("targets", len(targets)),
	)

	return &Pipeline{
		Stages:   stages,
		Targets:  slices.Sorted(maps.Keys(targets)),
		compiler: c,
	}, nil
}

// environment returns the names visible to every stage at compile time.
// Symbol table names carry their values so calls are type-checked. Assigned
// names and the row binding are left out unless the user symbol tier
// defines them; the checker treats them as untyped and they are supplied
// when the stage runs.
func (c *Compiler) environment(targets map[string]bool) map[string]any {
	env := make(map[string]any, c.table.Len()+2)

	for _, name := range c.table.Names() {
		if targets[name] && !c.table.Defines(name) {
			continue
		}

		env[name], _ = c.table.Lookup(name)
	}

	return arithHelpers(env)
}

func (c *Compiler) compileStage(
	ctx context.Context,
	st *Stage,
	env map[string]any,
	targets map[string]bool,
) error {
	fail := func(err error) error {
		return ErrCompile.Wrap(err).With(
			slog.Int("stage", st.Index),
			slog.String("source", st.Source),
		)
	}

	if strings.TrimSpace(st.Expr) == "" {
		return fail(ErrCompile.Wrapf("empty expression"))
	}

	cfg := conf.CreateNew()
	expr.Env(env)(cfg)

	tree, err := parser.ParseWithConfig(st.Expr, cfg)
	if err != nil {
		return fail(err)
	}

	a := newAnalyzer()
	ast.Walk(&tree.Node, a)

	st.Names = a.free()
	st.Paths = a.paths(st.Names)
	st.RefsBinding = slices.Contains(st.Names, bindingName) &&
		!c.table.Defines(bindingName)
	st.Eager = !slices.ContainsFunc(st.Names, func(name string) bool {
		return targets[name] || !c.table.Has(name)
	})

	program, err := c.program(st, env)
	if err != nil {
		return fail(err)
	}

	st.program = program

	c.logger.TraceContext(
		ctx,
		"compiled stage",
		slog.Int("stage", st.Index),
		slog.String("kind", st.Kind.String()),
		slog.Any("names", st.Names),
		slog.Bool("eager", st.Eager),
		slog.Bool("refs_binding", st.RefsBinding),
	)

	return nil
}

// program returns the cached program for the stage expression, compiling
// it on first use. Free names missing from env are untyped until the stage
// runs, when they are bound from the scope or the resolver.
func (c *Compiler) program(st *Stage, env map[string]any) (*vm.Program, error) {
	key := xxh3.HashString(st.Expr)

	if cached, ok := c.cache.Load(key); ok {
		return cached.(*vm.Program), nil //nolint:forcetypeassert
	}

	program, err := expr.Compile(
		st.Expr,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.Patch(&arithPatcher{logger: c.logger}),
	)
	if err != nil {
		return nil, err
	}

	actual, _ := c.cache.LoadOrStore(key, program)

	return actual.(*vm.Program), nil //nolint:forcetypeassert
}
