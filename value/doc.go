// Package value implements the dynamic value model shared by stage
// expressions, builtins, and the result reporter.
//
// Values flowing through a pipeline are plain Go values produced by
// expr-lang programs, decoders, and builtin functions: numbers, strings,
// booleans, []any, map[string]any, and functions. This package renders them
// ([Format], [Repr]), converts between them ([ToInt], [ToFloat], [Truthy]),
// orders them ([Compare]), iterates them ([Iterate]), and calls them
// ([Call]).
package value
