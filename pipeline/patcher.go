package pipeline

import (
	"log/slog"

	"github.com/expr-lang/expr/ast"

	"github.com/ardnew/px/log"
	"github.com/ardnew/px/value"
)

// Names of the helpers that implement true division and modulo.
const (
	divName = "__div__"
	modName = "__mod__"
)

// arithPatcher rewrites the "/" and "%" operators into calls of the
// division helpers, which report a zero divisor as an error and give the
// remainder the sign of the divisor.
type arithPatcher struct {
	logger log.Logger
}

// Visit implements ast.Visitor for arithPatcher.
func (p *arithPatcher) Visit(node *ast.Node) {
	bin, ok := (*node).(*ast.BinaryNode)
	if !ok {
		return
	}

	var callee string

	switch bin.Operator {
	case "/":
		callee = divName
	case "%":
		callee = modName
	default:
		return
	}

	p.logger.Trace(
		"patch operator",
		slog.String("operator", bin.Operator),
		slog.String("callee", callee),
	)

	ast.Patch(node, &ast.CallNode{
		Callee:    &ast.IdentifierNode{Value: callee},
		Arguments: []ast.Node{bin.Left, bin.Right},
	})
}

// arithHelpers adds the division helpers to env.
func arithHelpers(env map[string]any) map[string]any {
	env[divName] = value.Div
	env[modName] = value.Mod

	return env
}
