package value

import (
	"iter"
	"reflect"
	"slices"
)

// Iterate returns a sequence over the elements of v.
//
// Lists and arrays yield their elements, strings yield one string per
// character, maps yield their keys in sorted order, and iterator sequences
// are passed through. Anything else is an [ErrNotIterable] error.
func Iterate(v any) (iter.Seq[any], error) {
	switch val := v.(type) {
	case []any:
		return slices.Values(val), nil

	case string:
		return func(yield func(any) bool) {
			for _, r := range val {
				if !yield(string(r)) {
					return
				}
			}
		}, nil

	case iter.Seq[any]:
		return val, nil

	case func(func(any) bool):
		return val, nil

	case iter.Seq[string]:
		return func(yield func(any) bool) {
			for s := range val {
				if !yield(s) {
					return
				}
			}
		}, nil

	case iter.Seq[int]:
		return func(yield func(any) bool) {
			for n := range val {
				if !yield(n) {
					return
				}
			}
		}, nil
	}

	if v == nil {
		return nil, ErrNotIterable.Wrapf("'NoneType' object is not iterable")
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return func(yield func(any) bool) {
			for i := range rv.Len() {
				if !yield(rv.Index(i).Interface()) {
					return
				}
			}
		}, nil

	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return compareKeys(a.Interface(), b.Interface())
		})

		return func(yield func(any) bool) {
			for _, k := range keys {
				if !yield(k.Interface()) {
					return
				}
			}
		}, nil

	case reflect.String:
		return Iterate(rv.String())

	default:
		return nil, ErrNotIterable.Wrapf("'%s' object is not iterable", TypeName(v))
	}
}

// List collects the elements of v into a new slice.
func List(v any) ([]any, error) {
	seq, err := Iterate(v)
	if err != nil {
		return nil, err
	}

	return slices.Collect(seq), nil
}
