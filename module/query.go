package module

import (
	"errors"

	"github.com/itchyny/gojq"

	"github.com/ardnew/px/value"
)

// jqModule runs jq filters over decoded documents.
//
// jq.compile returns a function of one document, so a stage such as
// jq.compile('.items[].name') applies the filter to each row.
func jqModule() map[string]any {
	return map[string]any{
		"query": value.Func(func(args ...any) (any, error) {
			code, doc, err := jqArgs("jq.query", args)
			if err != nil {
				return nil, err
			}

			return jqRun(code, doc)
		}),
		"first": value.Func(func(args ...any) (any, error) {
			code, doc, err := jqArgs("jq.first", args)
			if err != nil {
				return nil, err
			}

			iter := code.Run(value.Normalize(doc))

			v, ok := iter.Next()
			if !ok {
				return nil, nil
			}

			if err, ok := v.(error); ok {
				return nil, value.ErrConvert.Wrap(err)
			}

			return v, nil
		}),
		"compile": value.Func(func(args ...any) (any, error) {
			if err := arity("jq.compile", args, 1, 1); err != nil {
				return nil, err
			}

			code, err := jqCompile("jq.compile", args[0])
			if err != nil {
				return nil, err
			}

			return value.Func(func(in ...any) (any, error) {
				if err := arity("jq filter", in, 1, 1); err != nil {
					return nil, err
				}

				return jqRun(code, in[0])
			}), nil
		}),
	}
}

func jqCompile(fn string, filter any) (*gojq.Code, error) {
	src, err := text(fn, filter)
	if err != nil {
		return nil, err
	}

	q, err := gojq.Parse(src)
	if err != nil {
		return nil, value.ErrArgument.Wrap(err)
	}

	code, err := gojq.Compile(q)
	if err != nil {
		return nil, value.ErrArgument.Wrap(err)
	}

	return code, nil
}

func jqArgs(fn string, args []any) (*gojq.Code, any, error) {
	if err := arity(fn, args, 2, 2); err != nil {
		return nil, nil, err
	}

	code, err := jqCompile(fn, args[0])
	if err != nil {
		return nil, nil, err
	}

	return code, args[1], nil
}

// jqRun collects every output of code applied to doc. A filter producing a
// single output returns it directly.
func jqRun(code *gojq.Code, doc any) (any, error) {
	iter := code.Run(value.Normalize(doc))

	var out []any

	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if err, ok := v.(error); ok {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}

			return nil, value.ErrConvert.Wrap(err)
		}

		out = append(out, v)
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0], nil
	default:
		return out, nil
	}
}
