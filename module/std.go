package module

import (
	"fmt"

	"github.com/ardnew/px/value"
)

// Standard returns a new registry holding the standard modules.
func Standard() *Registry {
	r := NewRegistry()

	for path, members := range map[string]map[string]any{
		"json":            jsonModule(),
		"yaml":            yamlModule(),
		"toml":            tomlModule(),
		"dotenv":          dotenvModule(),
		"markdown":        markdownModule(),
		"jq":              jqModule(),
		"strings":         stringsModule(),
		"strconv":         strconvModule(),
		"regexp":          regexpModule(),
		"time":            timeModule(),
		"url":             urlModule(),
		"encoding.base64": base64Module(),
		"encoding.hex":    hexModule(),
		"encoding.csv":    csvModule(),
		"hash.xxh3":       xxh3Module(),
		"hash.sha256":     sha256Module(),
		"uuid":            uuidModule(),
		"ksuid":           ksuidModule(),
		"fuzzy":           fuzzyModule(),
		"mung":            mungModule(),
		"locale":          localeModule(),
	} {
		r.Register(path, members)
	}

	return r
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

// text returns v as a string. Byte slices are converted; any other type is
// an argument error naming fn.
func text(fn string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case fmt.Stringer:
		return s.String(), nil
	}

	return "", value.ErrArgument.Wrapf("%s() expected str, got '%s'", fn, value.TypeName(v))
}

// textArgs checks the arity of args and converts each to a string.
func textArgs(fn string, args []any, n int) ([]string, error) {
	if err := arity(fn, args, n, n); err != nil {
		return nil, err
	}

	out := make([]string, n)

	for i, a := range args {
		s, err := text(fn, a)
		if err != nil {
			return nil, err
		}

		out[i] = s
	}

	return out, nil
}

// unaryText adapts a string transformation to a [value.Func].
func unaryText(fn string, f func(string) (any, error)) value.Func {
	return func(args ...any) (any, error) {
		s, err := textArgs(fn, args, 1)
		if err != nil {
			return nil, err
		}

		return f(s[0])
	}
}

// stringList converts elements of a list to strings.
func stringList(fn string, v any) ([]string, error) {
	elems, err := value.List(v)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(elems))

	for i, e := range elems {
		if out[i], err = text(fn, e); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// anyList converts a string slice to a list.
func anyList(s []string) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = e
	}

	return out
}
