package pipeline

import (
	"context"
	"iter"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/px/log"
	"github.com/ardnew/px/module"
	"github.com/ardnew/px/symbol"
	"github.com/ardnew/px/value"
)

// binding is the value of x for a row, along with the value it replaced.
type binding struct {
	value    any
	prior    any
	bound    bool
	hasPrior bool
}

// advance returns b with v as the new bound value.
func (b binding) advance(v any) binding {
	return binding{value: v, prior: b.value, bound: true, hasPrior: b.bound}
}

func (b binding) outcome() Outcome {
	return Outcome{Value: b.value, Prior: b.prior, Bound: b.bound, HasPrior: b.hasPrior}
}

// emitFunc receives the outcome of each row leaving a segment.
type emitFunc func(Outcome) error

// Executor runs a compiled pipeline over its input.
type Executor struct {
	pipeline *Pipeline
	table    *symbol.Table
	resolver *module.Resolver
	reporter *Reporter
	logger   log.Logger
	eager    map[int]any // stage index -> value
}

// NewExecutor returns an Executor for p that reports through rep.
func NewExecutor(p *Pipeline, rep *Reporter, opts ...Option) *Executor {
	cfg := makeConfig(opts...)

	if cfg.resolver == nil {
		cfg.resolver = module.NewResolver(nil, module.WithLogger(cfg.logger))
	}

	if rep == nil {
		rep = NewReporter(nil, nil, opts...)
	}

	e := &Executor{
		pipeline: p,
		resolver: cfg.resolver,
		reporter: rep,
		logger:   cfg.logger,
		eager:    make(map[int]any),
	}

	if p.compiler != nil {
		e.table = p.compiler.table
	}

	return e
}

// Run evaluates the pipeline over in.
//
// Eager stages are evaluated first; if one fails, the error is reported
// and no input is read. The first segment then receives one row per input
// line, or a single unbound row when the input is interactive. Each later
// segment receives exactly one row: the list of values collected at the
// aggregate stage that precedes it.
//
// Run returns [ErrRowFailed] if any row error was reported, and returns
// early on context cancellation or when output cannot be written.
func (e *Executor) Run(ctx context.Context, in *Input) error {
	run := newScope(nil)

	ok, err := e.evalEager(ctx, run)
	if err != nil {
		return err
	}

	if !ok {
		return ErrRowFailed
	}

	segs := e.pipeline.segments()

	e.logger.DebugContext(
		ctx,
		"run pipeline",
		slog.Int("segments", len(segs)),
		slog.Bool("interactive", in.Interactive()),
	)

	rows := e.firstRows(in, len(segs) > 1)

	for i, seg := range segs {
		sc := newScope(run)
		last := i == len(segs)-1

		var collected []any

		emit := func(o Outcome) error {
			if last || o.Err != nil {
				return e.reporter.Report(ctx, o)
			}

			if v, ok := o.Result(e.reporter.showBool); ok {
				collected = append(collected, v)
			}

			return nil
		}

		n := 0

		for b := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}

			e.logger.TraceContext(ctx, "row", slog.Int("segment", i), slog.Int("row", n))
			n++

			if err := e.runStages(ctx, seg, sc, b, emit); err != nil {
				return err
			}
		}

		if i == 0 {
			if err := in.Err(); err != nil {
				return err
			}
		}

		if !last {
			if collected == nil {
				collected = []any{}
			}

			rows = single(binding{value: collected, bound: true})
		}
	}

	if e.reporter.Failed() {
		return ErrRowFailed
	}

	return nil
}

// firstRows returns the rows of the first segment.
func (e *Executor) firstRows(in *Input, aggregates bool) iter.Seq[binding] {
	if in.Interactive() {
		if aggregates {
			return func(func(binding) bool) {}
		}

		return single(binding{})
	}

	return func(yield func(binding) bool) {
		for line := range in.Lines() {
			if !yield(binding{value: line, bound: true}) {
				return
			}
		}
	}
}

func single(b binding) iter.Seq[binding] {
	return func(yield func(binding) bool) { yield(b) }
}

// evalEager evaluates every eager stage once, storing eager assignments in
// the run scope. It reports whether all of them succeeded.
func (e *Executor) evalEager(ctx context.Context, run *scope) (bool, error) {
	for _, st := range e.pipeline.Stages {
		if !st.evaluates() || !st.Eager {
			continue
		}

		v, err := e.eval(ctx, st, run, binding{})
		if err != nil {
			return false, e.reporter.Report(ctx, Outcome{Err: err})
		}

		e.logger.TraceContext(ctx, "eager stage", slog.Int("stage", st.Index))

		e.eager[st.Index] = v

		if st.Kind == KindAssign {
			run.set(st.Target, v)
		}
	}

	return true, nil
}

// runStages passes one row through stages and emits its outcome. A flatten
// stage runs the remaining stages once per element instead.
func (e *Executor) runStages(
	ctx context.Context,
	stages []*Stage,
	sc *scope,
	b binding,
	emit emitFunc,
) error {
	for i, st := range stages {
		switch st.Kind {
		case KindFlatten:
			return e.flatten(ctx, stages[i+1:], sc, b, emit)

		case KindAssign:
			v, err := e.value(ctx, st, sc, b)
			if err != nil {
				return emit(Outcome{Err: err})
			}

			sc.set(st.Target, v)

		case KindExpr:
			v, err := e.value(ctx, st, sc, b)
			if err != nil {
				return emit(Outcome{Err: err})
			}

			if !st.RefsBinding && value.Callable(v) {
				v, err = e.call(v, b)
				if err != nil {
					return emit(Outcome{Err: err})
				}
			}

			if v != nil {
				b = b.advance(v)
			}
		}
	}

	return emit(b.outcome())
}

func (e *Executor) flatten(
	ctx context.Context,
	stages []*Stage,
	sc *scope,
	b binding,
	emit emitFunc,
) error {
	if !b.bound || b.value == nil {
		return nil
	}

	seq, err := value.Iterate(b.value)
	if err != nil {
		return emit(Outcome{Err: err})
	}

	for elem := range seq {
		if err := e.runStages(ctx, stages, sc, binding{value: elem, bound: true}, emit); err != nil {
			return err
		}
	}

	return nil
}

// call applies fn to the row binding, or calls it without arguments when
// the row is unbound.
func (e *Executor) call(fn any, b binding) (any, error) {
	if !b.bound {
		return value.Call(fn)
	}

	return value.Call(fn, b.value)
}

// value returns the result of the stage expression, reusing the value of
// an eager stage.
func (e *Executor) value(ctx context.Context, st *Stage, sc *scope, b binding) (any, error) {
	if st.Eager {
		if v, ok := e.eager[st.Index]; ok {
			return v, nil
		}
	}

	return e.eval(ctx, st, sc, b)
}

// eval runs the stage program with its free names bound.
func (e *Executor) eval(ctx context.Context, st *Stage, sc *scope, b binding) (any, error) {
	env := arithHelpers(make(map[string]any, len(st.Names)+2))

	for _, name := range st.Names {
		v, err := e.lookup(ctx, st, name, sc, b)
		if err != nil {
			return nil, err
		}

		env[name] = v
	}

	return expr.Run(st.program, env)
}

// lookup binds a free name. User symbols take precedence over the row
// binding, which takes precedence over assigned names, the remaining symbol
// tiers, and finally modules.
func (e *Executor) lookup(
	ctx context.Context,
	st *Stage,
	name string,
	sc *scope,
	b binding,
) (any, error) {
	if e.table.Defines(name) {
		v, _ := e.table.Lookup(name)

		return v, nil
	}

	if name == bindingName {
		if !b.bound {
			return nil, module.ErrUndefinedName.
				Wrapf("name '%s' is not defined", name).
				With(slog.String("name", name))
		}

		return b.value, nil
	}

	if v, ok := sc.lookup(name); ok {
		return v, nil
	}

	if v, ok := e.table.Lookup(name); ok {
		return v, nil
	}

	return e.resolver.Resolve(ctx, name, st.Paths[name])
}
