package symbol

import (
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/px/value"
)

// Builtins returns the bare-named conversion and sequence functions.
// Each call returns a new map.
func Builtins() map[string]any {
	return maps.Clone(builtins)
}

//nolint:gochecknoglobals
var builtins = map[string]any{
	"int":       value.Func(builtinInt),
	"float":     value.Func(builtinFloat),
	"str":       value.Func(builtinStr),
	"bool":      value.Func(builtinBool),
	"len":       value.Func(builtinLen),
	"range":     value.Func(builtinRange),
	"sum":       value.Func(builtinSum),
	"sorted":    value.Func(builtinSorted),
	"sort":      value.Func(builtinSort),
	"reversed":  value.Func(builtinReversed),
	"min":       value.Func(builtinMin),
	"max":       value.Func(builtinMax),
	"abs":       value.Func(builtinAbs),
	"round":     value.Func(builtinRound),
	"list":      value.Func(builtinList),
	"dict":      value.Func(builtinDict),
	"set":       value.Func(builtinSet),
	"enumerate": value.Func(builtinEnumerate),
	"zip":       value.Func(builtinZip),
	"repr":      value.Func(builtinRepr),
	"type":      value.Func(builtinType),
	"chr":       value.Func(builtinChr),
	"ord":       value.Func(builtinOrd),
	"hex":       value.Func(builtinHex),
	"oct":       value.Func(builtinOct),
	"bin":       value.Func(builtinBin),
	"divmod":    value.Func(builtinDivmod),
	"pow":       value.Func(builtinPow),
}

// arity checks that args has between lo and hi elements. A negative hi has
// no upper bound.
func arity(name string, args []any, lo, hi int) error {
	n := len(args)

	switch {
	case lo == hi && n != lo:
		return value.ErrArgument.Wrapf("%s() takes %d arguments (%d given)", name, lo, n)
	case n < lo:
		return value.ErrArgument.Wrapf("%s() takes at least %d arguments (%d given)", name, lo, n)
	case hi >= 0 && n > hi:
		return value.ErrArgument.Wrapf("%s() takes at most %d arguments (%d given)", name, hi, n)
	}

	return nil
}

func builtinInt(args ...any) (any, error) {
	if err := arity("int", args, 0, 2); err != nil {
		return nil, err
	}

	switch len(args) {
	case 0:
		return 0, nil
	case 1:
		return value.ToInt(args[0])
	}

	s, ok := args[0].(string)
	if !ok {
		return nil, value.ErrArgument.Wrapf("int() can't convert non-string with explicit base")
	}

	base, err := value.ToInt(args[1])
	if err != nil {
		return nil, err
	}

	return value.ParseInt(s, base)
}

func builtinFloat(args ...any) (any, error) {
	if err := arity("float", args, 0, 1); err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return 0.0, nil
	}

	return value.ToFloat(args[0])
}

func builtinStr(args ...any) (any, error) {
	if err := arity("str", args, 0, 1); err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return "", nil
	}

	return value.Format(args[0]), nil
}

func builtinBool(args ...any) (any, error) {
	if err := arity("bool", args, 0, 1); err != nil {
		return nil, err
	}

	return len(args) == 1 && value.Truthy(args[0]), nil
}

func builtinLen(args ...any) (any, error) {
	if err := arity("len", args, 1, 1); err != nil {
		return nil, err
	}

	if s, ok := args[0].(string); ok {
		return utf8.RuneCountInString(s), nil
	}

	if args[0] != nil {
		rv := reflect.ValueOf(args[0])

		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
			return rv.Len(), nil
		}
	}

	return nil, value.ErrArgument.Wrapf(
		"object of type '%s' has no len()", value.TypeName(args[0]))
}

func builtinRange(args ...any) (any, error) {
	if err := arity("range", args, 1, 3); err != nil {
		return nil, err
	}

	bounds := make([]int, len(args))

	for i, a := range args {
		if !value.IsInteger(a) {
			return nil, value.ErrArgument.Wrapf(
				"'%s' object cannot be interpreted as an integer", value.TypeName(a))
		}

		bounds[i], _ = value.ToInt(a)
	}

	start, stop, step := 0, 0, 1

	switch len(bounds) {
	case 1:
		stop = bounds[0]
	case 2:
		start, stop = bounds[0], bounds[1]
	default:
		start, stop, step = bounds[0], bounds[1], bounds[2]
	}

	if step == 0 {
		return nil, value.ErrArgument.Wrapf("range() arg 3 must not be zero")
	}

	out := []any{}

	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		out = append(out, i)
	}

	return out, nil
}

func builtinSum(args ...any) (any, error) {
	if err := arity("sum", args, 1, 2); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	var total any = 0
	if len(args) == 2 {
		total = args[1]
	}

	for _, e := range elems {
		if total, err = add(total, e); err != nil {
			return nil, err
		}
	}

	return total, nil
}

// add returns a + b, keeping an int result when both operands are integers.
func add(a, b any) (any, error) {
	if !value.IsNumber(a) || !value.IsNumber(b) {
		return nil, value.ErrOperand.Wrapf(
			"unsupported operand type(s) for +: '%s' and '%s'",
			value.TypeName(a), value.TypeName(b))
	}

	if value.IsInteger(a) && value.IsInteger(b) {
		x, _ := value.ToInt(a)
		y, _ := value.ToInt(b)

		return x + y, nil
	}

	x, _ := value.ToFloat(a)
	y, _ := value.ToFloat(b)

	return x + y, nil
}

// sortValues sorts list in place, returning the first comparison error.
func sortValues(list []any) error {
	var err error

	slices.SortStableFunc(list, func(a, b any) int {
		c, cerr := value.Compare(a, b)
		if cerr != nil && err == nil {
			err = cerr
		}

		return c
	})

	return err
}

func builtinSorted(args ...any) (any, error) {
	if err := arity("sorted", args, 1, 1); err != nil {
		return nil, err
	}

	list, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	if list == nil {
		list = []any{}
	}

	if err := sortValues(list); err != nil {
		return nil, err
	}

	return list, nil
}

// builtinSort sorts a list in place and returns nothing, so a pipeline stage
// calling it passes its input through.
func builtinSort(args ...any) (any, error) {
	if err := arity("sort", args, 1, 1); err != nil {
		return nil, err
	}

	list, ok := args[0].([]any)
	if !ok {
		return nil, value.ErrArgument.Wrapf(
			"sort() requires a list, not '%s'", value.TypeName(args[0]))
	}

	return nil, sortValues(list)
}

func builtinReversed(args ...any) (any, error) {
	if err := arity("reversed", args, 1, 1); err != nil {
		return nil, err
	}

	list, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	slices.Reverse(list)

	if list == nil {
		list = []any{}
	}

	return list, nil
}

// extremum implements min and max: with one argument it scans an iterable,
// with more it scans the arguments. want is the sign of a winning
// comparison.
func extremum(name string, want int, args []any) (any, error) {
	if err := arity(name, args, 1, -1); err != nil {
		return nil, err
	}

	elems := args
	if len(args) == 1 {
		var err error
		if elems, err = value.List(args[0]); err != nil {
			return nil, err
		}
	}

	if len(elems) == 0 {
		return nil, value.ErrArgument.Wrapf("%s() arg is an empty sequence", name)
	}

	best := elems[0]

	for _, e := range elems[1:] {
		c, err := value.Compare(e, best)
		if err != nil {
			return nil, err
		}

		if c == want {
			best = e
		}
	}

	return best, nil
}

func builtinMin(args ...any) (any, error) { return extremum("min", -1, args) }

func builtinMax(args ...any) (any, error) { return extremum("max", 1, args) }

func builtinAbs(args ...any) (any, error) {
	if err := arity("abs", args, 1, 1); err != nil {
		return nil, err
	}

	switch {
	case value.IsInteger(args[0]):
		n, err := value.ToInt(args[0])
		if n < 0 {
			n = -n
		}

		return n, err

	case value.IsNumber(args[0]):
		f, err := value.ToFloat(args[0])

		return math.Abs(f), err
	}

	return nil, value.ErrOperand.Wrapf(
		"bad operand type for abs(): '%s'", value.TypeName(args[0]))
}

// builtinRound rounds half to even. Without a digit count the result is an
// int.
func builtinRound(args ...any) (any, error) {
	if err := arity("round", args, 1, 2); err != nil {
		return nil, err
	}

	if value.IsInteger(args[0]) && len(args) == 1 {
		return value.ToInt(args[0])
	}

	f, err := value.ToFloat(args[0])
	if err != nil {
		return nil, err
	}

	if len(args) == 1 {
		return int(math.RoundToEven(f)), nil
	}

	digits, err := value.ToInt(args[1])
	if err != nil {
		return nil, err
	}

	scale := math.Pow(10, float64(digits))

	return math.RoundToEven(f*scale) / scale, nil
}

func builtinList(args ...any) (any, error) {
	if err := arity("list", args, 0, 1); err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return []any{}, nil
	}

	list, err := value.List(args[0])
	if list == nil && err == nil {
		list = []any{}
	}

	return list, err
}

// builtinDict builds a mapping from another mapping or from a list of
// key-value pairs. Keys are converted to their display text.
func builtinDict(args ...any) (any, error) {
	if err := arity("dict", args, 0, 1); err != nil {
		return nil, err
	}

	out := map[string]any{}
	if len(args) == 0 || args[0] == nil {
		return out, nil
	}

	if m, ok := value.Normalize(args[0]).(map[string]any); ok {
		return m, nil
	}

	pairs, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	for i, p := range pairs {
		kv, err := value.List(p)
		if err != nil || len(kv) != 2 {
			return nil, value.ErrArgument.Wrapf(
				"dictionary update sequence element #%d has wrong length", i)
		}

		out[value.Format(kv[0])] = kv[1]
	}

	return out, nil
}

// builtinSet returns the distinct elements of an iterable in first-seen
// order.
func builtinSet(args ...any) (any, error) {
	if err := arity("set", args, 0, 1); err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return []any{}, nil
	}

	return unique(args[0])
}

func unique(v any) ([]any, error) {
	elems, err := value.List(v)
	if err != nil {
		return nil, err
	}

	out := []any{}

	for _, e := range elems {
		if !slices.ContainsFunc(out, func(o any) bool { return value.Equal(o, e) }) {
			out = append(out, e)
		}
	}

	return out, nil
}

func builtinEnumerate(args ...any) (any, error) {
	if err := arity("enumerate", args, 1, 2); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	start := 0
	if len(args) == 2 {
		if start, err = value.ToInt(args[1]); err != nil {
			return nil, err
		}
	}

	out := make([]any, len(elems))
	for i, e := range elems {
		out[i] = []any{start + i, e}
	}

	return out, nil
}

func builtinZip(args ...any) (any, error) {
	lists := make([][]any, len(args))
	size := math.MaxInt

	for i, a := range args {
		l, err := value.List(a)
		if err != nil {
			return nil, err
		}

		lists[i] = l
		size = min(size, len(l))
	}

	if len(lists) == 0 {
		return []any{}, nil
	}

	out := make([]any, size)

	for i := range size {
		tuple := make([]any, len(lists))
		for j, l := range lists {
			tuple[j] = l[i]
		}

		out[i] = tuple
	}

	return out, nil
}

func builtinRepr(args ...any) (any, error) {
	if err := arity("repr", args, 1, 1); err != nil {
		return nil, err
	}

	return value.Repr(args[0]), nil
}

func builtinType(args ...any) (any, error) {
	if err := arity("type", args, 1, 1); err != nil {
		return nil, err
	}

	return value.TypeName(args[0]), nil
}

func builtinChr(args ...any) (any, error) {
	if err := arity("chr", args, 1, 1); err != nil {
		return nil, err
	}

	n, err := value.ToInt(args[0])
	if err != nil {
		return nil, err
	}

	if n < 0 || n > utf8.MaxRune {
		return nil, value.ErrArgument.Wrapf("chr() arg not in range(0x110000)")
	}

	return string(rune(n)), nil
}

func builtinOrd(args ...any) (any, error) {
	if err := arity("ord", args, 1, 1); err != nil {
		return nil, err
	}

	s, ok := args[0].(string)
	if !ok || utf8.RuneCountInString(s) != 1 {
		return nil, value.ErrArgument.Wrapf(
			"ord() expected a character, but got %s", value.Repr(args[0]))
	}

	r, _ := utf8.DecodeRuneInString(s)

	return int(r), nil
}

// radix formats an integer with a Python-style base prefix.
func radix(name, prefix string, base int) value.Func {
	return func(args ...any) (any, error) {
		if err := arity(name, args, 1, 1); err != nil {
			return nil, err
		}

		if !value.IsInteger(args[0]) {
			return nil, value.ErrArgument.Wrapf(
				"'%s' object cannot be interpreted as an integer", value.TypeName(args[0]))
		}

		n, _ := value.ToInt(args[0])

		sign := ""
		if n < 0 {
			sign, n = "-", -n
		}

		return sign + prefix + strconv.FormatInt(int64(n), base), nil
	}
}

//nolint:gochecknoglobals
var (
	builtinHex = radix("hex", "0x", 16)
	builtinOct = radix("oct", "0o", 8)
	builtinBin = radix("bin", "0b", 2)
)

// floorDiv returns the floored quotient of a and b.
func floorDiv(a, b any) (any, error) {
	if value.IsInteger(a) && value.IsInteger(b) {
		x, _ := value.ToInt(a)
		y, _ := value.ToInt(b)

		if y == 0 {
			return nil, value.ErrDivisionByZero
		}

		q := x / y
		if (x%y != 0) && ((x < 0) != (y < 0)) {
			q--
		}

		return q, nil
	}

	q, err := value.Div(a, b)
	if err != nil {
		return nil, err
	}

	return math.Floor(q.(float64)), nil //nolint:forcetypeassert
}

func builtinDivmod(args ...any) (any, error) {
	if err := arity("divmod", args, 2, 2); err != nil {
		return nil, err
	}

	q, err := floorDiv(args[0], args[1])
	if err != nil {
		return nil, err
	}

	r, err := value.Mod(args[0], args[1])
	if err != nil {
		return nil, err
	}

	return []any{q, r}, nil
}

func builtinPow(args ...any) (any, error) {
	if err := arity("pow", args, 2, 3); err != nil {
		return nil, err
	}

	if value.IsInteger(args[0]) && value.IsInteger(args[1]) {
		base, _ := value.ToInt(args[0])
		exp, _ := value.ToInt(args[1])

		if exp >= 0 {
			mod := 0
			if len(args) == 3 {
				var err error
				if mod, err = value.ToInt(args[2]); err != nil {
					return nil, err
				}

				if mod == 0 {
					return nil, value.ErrArgument.Wrapf("pow() 3rd argument cannot be 0")
				}
			}

			return intPow(base, exp, mod), nil
		}
	}

	if len(args) == 3 {
		return nil, value.ErrArgument.Wrapf(
			"pow() 3rd argument not allowed unless all arguments are integers")
	}

	x, err := value.ToFloat(args[0])
	if err != nil {
		return nil, err
	}

	y, err := value.ToFloat(args[1])
	if err != nil {
		return nil, err
	}

	return math.Pow(x, y), nil
}

// intPow computes base**exp by squaring, reducing modulo mod when mod is
// non-zero.
func intPow(base, exp, mod int) int {
	result := 1

	reduce := func(n int) int {
		if mod == 0 {
			return n
		}

		n %= mod
		if n != 0 && (n < 0) != (mod < 0) {
			n += mod
		}

		return n
	}

	base = reduce(base)

	for exp > 0 {
		if exp&1 == 1 {
			result = reduce(result * base)
		}

		base = reduce(base * base)
		exp >>= 1
	}

	return reduce(result)
}

// textOf returns v as a string, or an argument error naming fn.
func textOf(fn string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}

	return "", value.ErrArgument.Wrapf("%s() expected str, got '%s'", fn, value.TypeName(v))
}

// joinLines joins lines with newlines.
func joinLines(lines []string) string { return strings.Join(lines, "\n") }
