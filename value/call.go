package value

import (
	"fmt"
	"reflect"
)

// Func is the calling convention of every builtin and module function.
//
// expr-lang calls Func values through reflection and converts a non-nil
// error into an evaluation error for the current row.
type Func func(args ...any) (any, error)

// Callable reports whether v can be invoked with [Call].
func Callable(v any) bool {
	if v == nil {
		return false
	}

	return reflect.TypeOf(v).Kind() == reflect.Func
}

//nolint:gochecknoglobals
var errorType = reflect.TypeFor[error]()

// Call invokes fn with args.
//
// Func values are called directly. Any other function is called through
// reflection: numeric arguments are converted to the parameter type, nil
// arguments become zero values, and a trailing error result is returned as
// the error. A panic raised by fn is returned as an error.
func Call(fn any, args ...any) (result any, err error) {
	switch f := fn.(type) {
	case Func:
		return f(args...)

	case func(...any) (any, error):
		return f(args...)

	case func(...any) any:
		return f(args...), nil
	}

	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, ErrNotCallable.Wrapf("'%s' object is not callable", TypeName(fn))
	}

	in, err := callArgs(rv.Type(), args)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()

	return callResult(rv.Call(in))
}

// callArgs converts args to the parameter types of a function type.
func callArgs(rt reflect.Type, args []any) ([]reflect.Value, error) {
	n := rt.NumIn()

	switch {
	case rt.IsVariadic() && len(args) < n-1:
		return nil, ErrArgument.Wrapf("expected at least %d arguments, got %d", n-1, len(args))

	case !rt.IsVariadic() && len(args) != n:
		return nil, ErrArgument.Wrapf("expected %d arguments, got %d", n, len(args))
	}

	in := make([]reflect.Value, len(args))

	for i, arg := range args {
		var pt reflect.Type
		if rt.IsVariadic() && i >= n-1 {
			pt = rt.In(n - 1).Elem()
		} else {
			pt = rt.In(i)
		}

		if arg == nil {
			in[i] = reflect.Zero(pt)

			continue
		}

		av := reflect.ValueOf(arg)

		switch {
		case av.Type().AssignableTo(pt):
			in[i] = av

		case isNumericKind(av.Kind()) && isNumericKind(pt.Kind()):
			in[i] = av.Convert(pt)

		case av.Kind() == pt.Kind() && av.Type().ConvertibleTo(pt):
			in[i] = av.Convert(pt)

		default:
			return nil, ErrArgument.Wrapf(
				"argument %d: cannot use %s as %s", i+1, TypeName(arg), pt)
		}
	}

	return in, nil
}

// callResult maps reflected results to a value and an error.
func callResult(out []reflect.Value) (any, error) {
	if len(out) == 0 {
		return nil, nil
	}

	last := out[len(out)-1]
	if last.Type().Implements(errorType) {
		if !last.IsNil() {
			return nil, last.Interface().(error) //nolint:forcetypeassert
		}

		out = out[:len(out)-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		list := make([]any, len(out))
		for i, v := range out {
			list[i] = v.Interface()
		}

		return list, nil
	}
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
