package cli

import (
	"errors"

	"github.com/ardnew/px/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrUsage  = pkg.NewError("invalid command line")
	ErrConfig = pkg.NewError("invalid configuration file")
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ExitCode returns the process exit code for the result of [Run].
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitError
	}
}
