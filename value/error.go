package value

import "github.com/ardnew/px/pkg"

// Predefined errors (sentinel values).
var (
	ErrConvert        = pkg.NewError("invalid conversion")
	ErrDivisionByZero = pkg.NewError("division by zero")
	ErrNotCallable    = pkg.NewError("object is not callable")
	ErrNotIterable    = pkg.NewError("object is not iterable")
	ErrUnorderable    = pkg.NewError("values are not comparable")
	ErrOperand        = pkg.NewError("unsupported operand type")
	ErrArgument       = pkg.NewError("invalid argument")
)
