package module

import "github.com/ardnew/px/pkg"

// Predefined errors (sentinel values).
var (
	ErrUndefinedName    = pkg.NewError("name is not defined")
	ErrMissingAttribute = pkg.NewError("missing attribute")
)
