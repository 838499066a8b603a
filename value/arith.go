package value

import "math"

// Div returns the true quotient a / b as a float64.
// A zero divisor is an [ErrDivisionByZero] error.
func Div(a, b any) (any, error) {
	x, y, err := operands("/", a, b)
	if err != nil {
		return nil, err
	}

	if y == 0 {
		return nil, ErrDivisionByZero
	}

	return x / y, nil
}

// Mod returns the remainder of a / b with the sign of the divisor. Integer
// operands produce an int; otherwise the result is a float64.
// A zero divisor is an [ErrDivisionByZero] error.
func Mod(a, b any) (any, error) {
	if IsInteger(a) && IsInteger(b) {
		x, _ := ToInt(a)
		y, _ := ToInt(b)

		if y == 0 {
			return nil, ErrDivisionByZero
		}

		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}

		return r, nil
	}

	x, y, err := operands("%", a, b)
	if err != nil {
		return nil, err
	}

	if y == 0 {
		return nil, ErrDivisionByZero
	}

	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}

	return r, nil
}

func operands(op string, a, b any) (float64, float64, error) {
	if !IsNumber(a) || !IsNumber(b) {
		return 0, 0, ErrOperand.Wrapf(
			"unsupported operand type(s) for %s: '%s' and '%s'", op, TypeName(a), TypeName(b))
	}

	x, _ := ToFloat(a)
	y, _ := ToFloat(b)

	return x, y, nil
}
