package symbol

import "github.com/ardnew/px/pkg"

// Predefined errors (sentinel values).
var (
	ErrSymbolFile = pkg.NewError("invalid symbol file")
)
