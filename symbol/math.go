package symbol

import (
	"math"

	"github.com/ardnew/px/value"
)

// Math returns mathematical constants and functions. Functions accept any
// numeric argument and report domain errors instead of returning NaN.
func Math() Library {
	syms := map[string]any{
		"pi":  math.Pi,
		"e":   math.E,
		"tau": 2 * math.Pi,
		"inf": math.Inf(1),
		"nan": math.NaN(),

		"floor":     value.Func(mathFloor),
		"ceil":      value.Func(mathCeil),
		"trunc":     value.Func(mathTrunc),
		"pow":       binary("pow", math.Pow),
		"hypot":     binary("hypot", math.Hypot),
		"atan2":     binary("atan2", math.Atan2),
		"fmod":      binary("fmod", math.Mod),
		"copysign":  binary("copysign", math.Copysign),
		"gcd":       value.Func(mathGCD),
		"lcm":       value.Func(mathLCM),
		"factorial": value.Func(mathFactorial),
		"isnan":     predicate("isnan", math.IsNaN),
		"isinf":     predicate("isinf", func(f float64) bool { return math.IsInf(f, 0) }),
		"isfinite": predicate("isfinite", func(f float64) bool {
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		}),
		"log": value.Func(mathLog),
	}

	for name, fn := range map[string]func(float64) float64{
		"sqrt":    math.Sqrt,
		"exp":     math.Exp,
		"log2":    math.Log2,
		"log10":   math.Log10,
		"sin":     math.Sin,
		"cos":     math.Cos,
		"tan":     math.Tan,
		"asin":    math.Asin,
		"acos":    math.Acos,
		"atan":    math.Atan,
		"sinh":    math.Sinh,
		"cosh":    math.Cosh,
		"tanh":    math.Tanh,
		"fabs":    math.Abs,
		"degrees": func(r float64) float64 { return r * 180 / math.Pi },
		"radians": func(d float64) float64 { return d * math.Pi / 180 },
	} {
		syms[name] = unary(name, fn)
	}

	return Library{Name: "math", Symbols: syms}
}

var errMathDomain = value.ErrArgument.Wrapf("math domain error")

// floats converts every argument of fn to float64.
func floats(fn string, args []any, n int) ([]float64, error) {
	if err := arity(fn, args, n, n); err != nil {
		return nil, err
	}

	out := make([]float64, n)

	for i, a := range args {
		f, err := value.ToFloat(a)
		if err != nil {
			return nil, err
		}

		out[i] = f
	}

	return out, nil
}

// checked returns f unless it is NaN produced from non-NaN input.
func checked(f float64, in ...float64) (any, error) {
	if math.IsNaN(f) {
		for _, x := range in {
			if math.IsNaN(x) {
				return f, nil
			}
		}

		return nil, errMathDomain
	}

	return f, nil
}

func unary(name string, fn func(float64) float64) value.Func {
	return func(args ...any) (any, error) {
		x, err := floats(name, args, 1)
		if err != nil {
			return nil, err
		}

		return checked(fn(x[0]), x[0])
	}
}

func binary(name string, fn func(float64, float64) float64) value.Func {
	return func(args ...any) (any, error) {
		x, err := floats(name, args, 2)
		if err != nil {
			return nil, err
		}

		return checked(fn(x[0], x[1]), x...)
	}
}

func predicate(name string, fn func(float64) bool) value.Func {
	return func(args ...any) (any, error) {
		x, err := floats(name, args, 1)
		if err != nil {
			return nil, err
		}

		return fn(x[0]), nil
	}
}

// integral rounds x with fn and returns an int, passing integers through.
func integral(name string, args []any, fn func(float64) float64) (any, error) {
	if err := arity(name, args, 1, 1); err != nil {
		return nil, err
	}

	if value.IsInteger(args[0]) {
		return value.ToInt(args[0])
	}

	f, err := value.ToFloat(args[0])
	if err != nil {
		return nil, err
	}

	return value.ToInt(fn(f))
}

func mathFloor(args ...any) (any, error) { return integral("floor", args, math.Floor) }

func mathCeil(args ...any) (any, error) { return integral("ceil", args, math.Ceil) }

func mathTrunc(args ...any) (any, error) { return integral("trunc", args, math.Trunc) }

// mathLog returns the natural logarithm, or the logarithm in the given base.
func mathLog(args ...any) (any, error) {
	if err := arity("log", args, 1, 2); err != nil {
		return nil, err
	}

	x, err := floats("log", args, len(args))
	if err != nil {
		return nil, err
	}

	if x[0] <= 0 || (len(x) == 2 && (x[1] <= 0 || x[1] == 1)) {
		return nil, errMathDomain
	}

	if len(x) == 2 {
		return math.Log(x[0]) / math.Log(x[1]), nil
	}

	return math.Log(x[0]), nil
}

func ints(fn string, args []any) ([]int, error) {
	out := make([]int, len(args))

	for i, a := range args {
		if !value.IsInteger(a) {
			return nil, value.ErrArgument.Wrapf(
				"%s() '%s' object cannot be interpreted as an integer", fn, value.TypeName(a))
		}

		out[i], _ = value.ToInt(a)
	}

	return out, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	if a < 0 {
		return -a
	}

	return a
}

func mathGCD(args ...any) (any, error) {
	n, err := ints("gcd", args)
	if err != nil {
		return nil, err
	}

	g := 0
	for _, v := range n {
		g = gcd(g, v)
	}

	return g, nil
}

func mathLCM(args ...any) (any, error) {
	n, err := ints("lcm", args)
	if err != nil {
		return nil, err
	}

	l := 1

	for _, v := range n {
		if v == 0 {
			return 0, nil
		}

		l = l / gcd(l, v) * v
		if l < 0 {
			l = -l
		}
	}

	return l, nil
}

func mathFactorial(args ...any) (any, error) {
	if err := arity("factorial", args, 1, 1); err != nil {
		return nil, err
	}

	n, err := ints("factorial", args)
	if err != nil {
		return nil, err
	}

	if n[0] < 0 {
		return nil, value.ErrArgument.Wrapf("factorial() not defined for negative values")
	}

	f := 1
	for i := 2; i <= n[0]; i++ {
		f *= i
	}

	return f, nil
}
