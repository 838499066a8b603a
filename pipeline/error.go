package pipeline

import (
	"errors"

	"github.com/expr-lang/expr/file"

	"github.com/ardnew/px/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrCompile   = pkg.NewError("invalid expression")
	ErrRowFailed = pkg.NewError("one or more rows failed")
	ErrInput     = pkg.NewError("failed to read input")
	ErrOutput    = pkg.NewError("failed to write output")
)

// Message returns the text printed for a row error: the innermost cause of
// err without the sentinel prefixes accumulated while it was wrapped.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var pe *pkg.Error
	if errors.As(err, &pe) {
		return pe.Detail()
	}

	var fe *file.Error
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}

	return err.Error()
}
