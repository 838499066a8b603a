package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/px/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML configuration files.
//
// Nested mappings are flattened by joining keys with hyphens, so
//
//	show-error: true
//	log:
//	  level: debug
//	  pretty: true
//	symbols: [~/.config/px/symbols.yaml]
//
// sets --show-error, --log-level, --log-pretty, and --symbols. Underscores
// may be used in place of hyphens. A file that cannot be decoded is logged
// and ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignored configuration file",
					slog.Any("error", ErrConfig.Wrap(err)))
			}

			return config{}, nil
		}

		out := make(config)
		out.flatten("", doc)

		return out, nil
	}
}

// config implements [kong.Resolver] over a flattened configuration file.
type config map[string]any

// flatten adds the entries of m to c under prefix.
func (c config) flatten(prefix string, m map[string]any) {
	for key, v := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if sub, ok := v.(map[string]any); ok {
			c.flatten(name, sub)

			continue
		}

		c[name] = flagText(v)
	}
}

// flagText converts a decoded value to the form kong parses: numbers become
// strings and lists become lists of strings.
func flagText(v any) any {
	switch val := v.(type) {
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = flagText(e)
		}

		return out
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil //nolint:nilnil
}
