package value

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Format returns the display text of v, as printed for a result row.
//
// Strings are returned verbatim; booleans render as True and False, nil as
// None, and integral floats keep a trailing ".0". Elements of lists and
// maps are rendered with [Repr].
func Format(v any) string {
	switch val := v.(type) {
	case string:
		return val

	case []byte:
		return string(val)

	case error:
		return val.Error()
	}

	return Repr(v)
}

// Repr returns the literal-like representation of v, used for elements of
// containers. It differs from [Format] only in quoting strings.
func Repr(v any) string {
	var sb strings.Builder

	writeRepr(&sb, v)

	return sb.String()
}

func writeRepr(sb *strings.Builder, v any) {
	switch val := v.(type) {
	case nil:
		sb.WriteString("None")

	case bool:
		if val {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}

	case string:
		sb.WriteString(quote(val))

	case []byte:
		sb.WriteString("b" + quote(string(val)))

	case int:
		sb.WriteString(strconv.Itoa(val))

	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))

	case uint64:
		sb.WriteString(strconv.FormatUint(val, 10))

	case float64:
		sb.WriteString(FormatFloat(val))

	case float32:
		sb.WriteString(FormatFloat(float64(val)))

	case []any:
		writeList(sb, val)

	case map[string]any:
		writeMap(sb, reflect.ValueOf(val))

	case Func:
		sb.WriteString("<function>")

	case error:
		sb.WriteString(val.Error())

	case fmt.Stringer:
		sb.WriteString(val.String())

	default:
		writeReflect(sb, v)
	}
}

func writeReflect(sb *strings.Builder, v any) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sb.WriteString(strconv.FormatInt(rv.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr:
		sb.WriteString(strconv.FormatUint(rv.Uint(), 10))

	case reflect.Float32, reflect.Float64:
		sb.WriteString(FormatFloat(rv.Float()))

	case reflect.String:
		sb.WriteString(quote(rv.String()))

	case reflect.Bool:
		writeRepr(sb, rv.Bool())

	case reflect.Slice, reflect.Array:
		list := make([]any, rv.Len())
		for i := range list {
			list[i] = rv.Index(i).Interface()
		}

		writeList(sb, list)

	case reflect.Map:
		writeMap(sb, rv)

	case reflect.Func:
		sb.WriteString("<function>")

	case reflect.Pointer:
		if rv.IsNil() {
			sb.WriteString("None")
		} else {
			writeRepr(sb, rv.Elem().Interface())
		}

	default:
		fmt.Fprintf(sb, "%+v", v)
	}
}

func writeList(sb *strings.Builder, list []any) {
	sb.WriteByte('[')

	for i, elem := range list {
		if i > 0 {
			sb.WriteString(", ")
		}

		writeRepr(sb, elem)
	}

	sb.WriteByte(']')
}

// writeMap writes the entries of a map in key order.
func writeMap(sb *strings.Builder, rv reflect.Value) {
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return compareKeys(a.Interface(), b.Interface())
	})

	sb.WriteByte('{')

	for i, key := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}

		writeRepr(sb, key.Interface())
		sb.WriteString(": ")
		writeRepr(sb, rv.MapIndex(key).Interface())
	}

	sb.WriteByte('}')
}

// FormatFloat renders f with the shortest representation that round-trips,
// keeping a fractional part on integral values ("4.0") and switching to
// exponent notation for very large or very small magnitudes.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	if abs := math.Abs(f); abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// quote returns s in single quotes unless it contains a single quote and no
// double quote, in which case double quotes are used.
func quote(s string) string {
	q := strconv.Quote(s)
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return q
	}

	inner := q[1 : len(q)-1]
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, `'`, `\'`)

	return "'" + inner + "'"
}
