package symbol

import (
	"encoding/json"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/px/value"
)

// Pretty returns functions that render values as indented documents.
func Pretty() Library {
	return Library{
		Name: "pretty",
		Symbols: map[string]any{
			"pformat": value.Func(prettyFormat),
			"pjson":   value.Func(prettyJSON),
		},
	}
}

// prettyFormat renders a value as a block-style YAML document.
func prettyFormat(args ...any) (any, error) {
	if err := arity("pformat", args, 1, 1); err != nil {
		return nil, err
	}

	out, err := yaml.MarshalWithOptions(value.Normalize(args[0]),
		yaml.Indent(2), //nolint:mnd
		yaml.IndentSequence(true),
	)
	if err != nil {
		return nil, value.ErrConvert.Wrap(err)
	}

	return strings.TrimSuffix(string(out), "\n"), nil
}

// prettyJSON renders a value as indented JSON. The optional second argument
// sets the indent width.
func prettyJSON(args ...any) (any, error) {
	if err := arity("pjson", args, 1, 2); err != nil {
		return nil, err
	}

	width := 2
	if len(args) == 2 {
		var err error
		if width, err = value.ToInt(args[1]); err != nil {
			return nil, err
		}
	}

	out, err := json.MarshalIndent(value.Normalize(args[0]), "", strings.Repeat(" ", max(width, 0)))
	if err != nil {
		return nil, value.ErrConvert.Wrap(err)
	}

	return string(out), nil
}
