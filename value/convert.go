package value

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// TypeName returns a short name for the dynamic type of v.
func TypeName(v any) string {
	if v == nil {
		return "NoneType"
	}

	switch v.(type) {
	case bool:
		return "bool"
	case string:
		return "str"
	case []any:
		return "list"
	case map[string]any:
		return "dict"
	case Func:
		return "function"
	}

	rt := reflect.TypeOf(v)

	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map:
		return "dict"
	case reflect.Func:
		return "function"
	default:
		return rt.String()
	}
}

// IsNumber reports whether v is an integer or floating-point value.
func IsNumber(v any) bool {
	if v == nil {
		return false
	}

	return isNumericKind(reflect.TypeOf(v).Kind())
}

// IsInteger reports whether v is a signed or unsigned integer value.
func IsInteger(v any) bool {
	if v == nil {
		return false
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// ToInt converts v to an int.
//
// Floats are truncated toward zero, booleans become 0 or 1, and strings are
// parsed as base-10 integers after trimming surrounding space.
func ToInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil

	case bool:
		if val {
			return 1, nil
		}

		return 0, nil

	case string:
		return ParseInt(val, 10)

	case json.Number:
		return ParseInt(string(val), 10)
	}

	if v == nil {
		return 0, ErrConvert.Wrapf("int() argument must be a string or a number, not 'NoneType'")
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), nil //nolint:gosec

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, ErrConvert.Wrapf("cannot convert float %s to integer", FormatFloat(f))
		}

		return int(f), nil

	case reflect.String:
		return ParseInt(rv.String(), 10)

	default:
		return 0, ErrConvert.Wrapf(
			"int() argument must be a string or a number, not '%s'", TypeName(v))
	}
}

// ParseInt parses s as an integer in the given base. Base 0 infers the base
// from a 0b, 0o, or 0x prefix. Underscores between digits are accepted.
func ParseInt(s string, base int) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), base, 0)
	if err != nil {
		return 0, ErrConvert.Wrapf(
			"invalid literal for int() with base %d: %s", base, quote(s))
	}

	return int(n), nil
}

// ToFloat converts v to a float64.
//
// Strings are parsed after trimming surrounding space and accept "inf",
// "-inf", and "nan".
func ToFloat(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil

	case int:
		return float64(val), nil

	case bool:
		if val {
			return 1, nil
		}

		return 0, nil

	case string:
		return parseFloat(val)

	case json.Number:
		return parseFloat(string(val))
	}

	if v == nil {
		return 0, ErrConvert.Wrapf("float() argument must be a string or a number, not 'NoneType'")
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil

	case reflect.String:
		return parseFloat(rv.String())

	default:
		return 0, ErrConvert.Wrapf(
			"float() argument must be a string or a number, not '%s'", TypeName(v))
	}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrConvert.Wrapf("could not convert string to float: %s", quote(s))
	}

	return f, nil
}

// Truthy reports the truth value of v: nil, false, numeric zero, and empty
// strings and containers are false; everything else is true.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case float64:
		return val != 0
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// Normalize converts decoded documents into the canonical dynamic shapes:
// json.Number becomes int or float64, integral unsigned and sized integers
// become int, and nested maps and slices become map[string]any and []any.
func Normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(string(val), 10, 0); err == nil {
			return int(n)
		}

		if f, err := val.Float64(); err == nil {
			return f
		}

		return string(val)

	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = Normalize(e)
		}

		return out

	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = Normalize(e)
		}

		return out

	case int64:
		return int(val)

	case uint64:
		if val <= math.MaxInt {
			return int(val)
		}

		return val
	}

	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		out := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			out[Format(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}

		return out
	}

	return v
}
