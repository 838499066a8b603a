package symbol

import (
	"github.com/ardnew/px/value"
)

// Container returns helpers for counting, slicing, and reshaping sequences
// and mappings.
func Container() Library {
	return Library{
		Name: "container",
		Symbols: map[string]any{
			"counter": value.Func(containerCounter),
			"chain":   value.Func(containerChain),
			"chunk":   value.Func(containerChunk),
			"flatten": value.Func(containerFlatten),
			"unique":  value.Func(containerUnique),
			"first":   value.Func(containerFirst),
			"last":    value.Func(containerLast),
			"take":    value.Func(containerTake),
			"drop":    value.Func(containerDrop),
			"keys":    value.Func(containerKeys),
			"values":  value.Func(containerValues),
			"items":   value.Func(containerItems),
			"get":     value.Func(containerGet),
			"merge":   value.Func(containerMerge),
			"count":   value.Func(containerCount),
		},
	}
}

// mapping returns v as a map[string]any.
func mapping(fn string, v any) (map[string]any, error) {
	if m, ok := value.Normalize(v).(map[string]any); ok {
		return m, nil
	}

	return nil, value.ErrArgument.Wrapf(
		"%s() expected a mapping, got '%s'", fn, value.TypeName(v))
}

// countArg returns the non-negative integer argument n of fn.
func countArg(fn string, v any) (int, error) {
	n, err := value.ToInt(v)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, value.ErrArgument.Wrapf("%s() count must be non-negative", fn)
	}

	return n, nil
}

// containerCounter counts occurrences of each element, keyed by the
// element's display text.
func containerCounter(args ...any) (any, error) {
	if err := arity("counter", args, 1, 1); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	counts := map[string]any{}

	for _, e := range elems {
		k := value.Format(e)
		n, _ := counts[k].(int)
		counts[k] = n + 1
	}

	return counts, nil
}

func containerChain(args ...any) (any, error) {
	out := []any{}

	for _, a := range args {
		elems, err := value.List(a)
		if err != nil {
			return nil, err
		}

		out = append(out, elems...)
	}

	return out, nil
}

func containerChunk(args ...any) (any, error) {
	if err := arity("chunk", args, 2, 2); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	size, err := value.ToInt(args[1])
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		return nil, value.ErrArgument.Wrapf("chunk() size must be positive")
	}

	out := []any{}

	for i := 0; i < len(elems); i += size {
		out = append(out, append([]any{}, elems[i:min(i+size, len(elems))]...))
	}

	return out, nil
}

// containerFlatten removes one level of nesting. Strings are kept whole.
func containerFlatten(args ...any) (any, error) {
	if err := arity("flatten", args, 1, 1); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	out := []any{}

	for _, e := range elems {
		if _, ok := e.(string); ok {
			out = append(out, e)

			continue
		}

		inner, err := value.List(e)
		if err != nil {
			out = append(out, e)

			continue
		}

		out = append(out, inner...)
	}

	return out, nil
}

func containerUnique(args ...any) (any, error) {
	if err := arity("unique", args, 1, 1); err != nil {
		return nil, err
	}

	return unique(args[0])
}

func containerFirst(args ...any) (any, error) {
	if err := arity("first", args, 1, 1); err != nil {
		return nil, err
	}

	seq, err := value.Iterate(args[0])
	if err != nil {
		return nil, err
	}

	for e := range seq {
		return e, nil
	}

	return nil, nil
}

func containerLast(args ...any) (any, error) {
	if err := arity("last", args, 1, 1); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil || len(elems) == 0 {
		return nil, err
	}

	return elems[len(elems)-1], nil
}

func containerTake(args ...any) (any, error) {
	if err := arity("take", args, 2, 2); err != nil {
		return nil, err
	}

	n, err := countArg("take", args[1])
	if err != nil {
		return nil, err
	}

	seq, err := value.Iterate(args[0])
	if err != nil {
		return nil, err
	}

	out := []any{}

	for e := range seq {
		if len(out) >= n {
			break
		}

		out = append(out, e)
	}

	return out, nil
}

func containerDrop(args ...any) (any, error) {
	if err := arity("drop", args, 2, 2); err != nil {
		return nil, err
	}

	n, err := countArg("drop", args[1])
	if err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	return append([]any{}, elems[min(n, len(elems)):]...), nil
}

func containerKeys(args ...any) (any, error) {
	if err := arity("keys", args, 1, 1); err != nil {
		return nil, err
	}

	m, err := mapping("keys", args[0])
	if err != nil {
		return nil, err
	}

	return value.List(m)
}

func containerValues(args ...any) (any, error) {
	if err := arity("values", args, 1, 1); err != nil {
		return nil, err
	}

	m, err := mapping("values", args[0])
	if err != nil {
		return nil, err
	}

	keys, _ := value.List(m)

	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = m[k.(string)] //nolint:forcetypeassert
	}

	return out, nil
}

func containerItems(args ...any) (any, error) {
	if err := arity("items", args, 1, 1); err != nil {
		return nil, err
	}

	m, err := mapping("items", args[0])
	if err != nil {
		return nil, err
	}

	keys, _ := value.List(m)

	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = []any{k, m[k.(string)]} //nolint:forcetypeassert
	}

	return out, nil
}

// containerGet indexes a mapping by key or a list by position, returning the
// optional default when the key or index is absent.
func containerGet(args ...any) (any, error) {
	if err := arity("get", args, 2, 3); err != nil {
		return nil, err
	}

	var fallback any
	if len(args) == 3 {
		fallback = args[2]
	}

	if m, ok := value.Normalize(args[0]).(map[string]any); ok {
		if v, ok := m[value.Format(args[1])]; ok {
			return v, nil
		}

		return fallback, nil
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	i, err := value.ToInt(args[1])
	if err != nil {
		return nil, err
	}

	if i < 0 {
		i += len(elems)
	}

	if i < 0 || i >= len(elems) {
		return fallback, nil
	}

	return elems[i], nil
}

// containerMerge combines mappings left to right; later keys win.
func containerMerge(args ...any) (any, error) {
	out := map[string]any{}

	for _, a := range args {
		m, err := mapping("merge", a)
		if err != nil {
			return nil, err
		}

		for k, v := range m {
			out[k] = v
		}
	}

	return out, nil
}

func containerCount(args ...any) (any, error) {
	if err := arity("count", args, 2, 2); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	n := 0

	for _, e := range elems {
		if value.Equal(e, args[1]) {
			n++
		}
	}

	return n, nil
}
