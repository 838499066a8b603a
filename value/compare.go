package value

import (
	"cmp"
	"reflect"
	"strings"
)

// Compare orders a and b, returning -1, 0, or +1.
//
// Numbers compare numerically across integer and float types, strings
// lexically, booleans as false < true, and lists element by element. Any
// other pairing is an [ErrUnorderable] error.
func Compare(a, b any) (int, error) {
	switch {
	case IsInteger(a) && IsInteger(b):
		return compareIntegers(a, b), nil

	case IsNumber(a) && IsNumber(b):
		x, _ := ToFloat(a)
		y, _ := ToFloat(b)

		return cmp.Compare(x, y), nil
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}

	case bool:
		if y, ok := b.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y)), nil
		}
	}

	if isList(a) && isList(b) {
		return compareLists(a, b)
	}

	return 0, ErrUnorderable.Wrapf(
		"'<' not supported between instances of '%s' and '%s'", TypeName(a), TypeName(b))
}

// Equal reports whether a and b are equal, treating numbers of different
// types as equal when their values are.
func Equal(a, b any) bool {
	if IsNumber(a) && IsNumber(b) {
		c, err := Compare(a, b)

		return err == nil && c == 0
	}

	return reflect.DeepEqual(a, b)
}

func compareIntegers(a, b any) int {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	sa, sb := isSigned(ra.Kind()), isSigned(rb.Kind())

	switch {
	case sa && sb:
		return cmp.Compare(ra.Int(), rb.Int())
	case !sa && !sb:
		return cmp.Compare(ra.Uint(), rb.Uint())
	case sa:
		if ra.Int() < 0 {
			return -1
		}

		return cmp.Compare(uint64(ra.Int()), rb.Uint())
	default:
		if rb.Int() < 0 {
			return 1
		}

		return cmp.Compare(ra.Uint(), uint64(rb.Int()))
	}
}

func compareLists(a, b any) (int, error) {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)

	for i := range min(ra.Len(), rb.Len()) {
		c, err := Compare(ra.Index(i).Interface(), rb.Index(i).Interface())
		if err != nil || c != 0 {
			return c, err
		}
	}

	return cmp.Compare(ra.Len(), rb.Len()), nil
}

// compareKeys orders map keys for display, falling back to their text when
// they are not mutually comparable.
func compareKeys(a, b any) int {
	if c, err := Compare(a, b); err == nil {
		return c
	}

	return strings.Compare(Repr(a), Repr(b))
}

func isList(v any) bool {
	if v == nil {
		return false
	}

	k := reflect.TypeOf(v).Kind()

	return k == reflect.Slice || k == reflect.Array
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}

	return 0
}
