// Package pipeline compiles and runs sequences of expression stages.
//
// A pipeline is built from an ordered list of source strings. Each string
// becomes one [Stage]:
//
//   - "xargs" aggregates every value that reaches it into a single list,
//   - "unxargs" flattens an iterable value into one row per element,
//   - "name = expr" evaluates expr and binds the result to name,
//   - anything else is an expression whose result replaces the current
//     value of x, the binding of the row being processed.
//
// A [Compiler] parses every expression once with expr-lang, records the
// free names each stage references, and marks a stage eager when every one
// of those names comes from the symbol table. An [Executor] evaluates eager
// stages a single time before any input is read, then streams each input
// row through the remaining stages. Names that are neither assigned nor in
// the symbol table are resolved as modules on first use.
//
// Results and row errors are written by a [Reporter], which also decides
// how boolean outcomes are displayed.
package pipeline
