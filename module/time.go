package module

import (
	"net/url"
	"strings"
	"time"

	"github.com/ardnew/px/value"
)

// layouts maps layout names accepted by time.format and time.parse to their
// reference layouts. Any other layout string is used verbatim.
//
//nolint:gochecknoglobals
var layouts = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"rfc1123":     time.RFC1123,
	"rfc822":      time.RFC822,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"date":        time.DateOnly,
	"time":        time.TimeOnly,
}

func layout(s string) string {
	if l, ok := layouts[strings.ToLower(s)]; ok {
		return l
	}

	return s
}

// timeModule works with Unix timestamps in seconds.
func timeModule() map[string]any {
	return map[string]any{
		"now": value.Func(func(args ...any) (any, error) {
			if err := arity("time.now", args, 0, 0); err != nil {
				return nil, err
			}

			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		}),
		"unix": value.Func(func(args ...any) (any, error) {
			if err := arity("time.unix", args, 0, 0); err != nil {
				return nil, err
			}

			return int(time.Now().Unix()), nil
		}),
		"format": value.Func(timeFormat),
		"parse": value.Func(func(args ...any) (any, error) {
			s, err := textArgs("time.parse", args, 2)
			if err != nil {
				return nil, err
			}

			t, err := time.Parse(layout(s[0]), strings.TrimSpace(s[1]))
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return int(t.Unix()), nil
		}),
		"duration": unaryText("time.duration", func(s string) (any, error) {
			d, err := time.ParseDuration(strings.TrimSpace(s))
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return d.Seconds(), nil
		}),
	}
}

// timeFormat formats a Unix timestamp in UTC with the optional layout,
// RFC 3339 by default.
func timeFormat(args ...any) (any, error) {
	if err := arity("time.format", args, 1, 2); err != nil {
		return nil, err
	}

	secs, err := value.ToFloat(args[0])
	if err != nil {
		return nil, err
	}

	l := time.RFC3339
	if len(args) == 2 {
		s, err := text("time.format", args[1])
		if err != nil {
			return nil, err
		}

		l = layout(s)
	}

	t := time.Unix(0, int64(secs*float64(time.Second))).UTC()

	return t.Format(l), nil
}

func urlModule() map[string]any {
	return map[string]any{
		"parse": unaryText("url.parse", urlParse),
		"query": unaryText("url.query", func(s string) (any, error) {
			q, err := url.ParseQuery(strings.TrimPrefix(s, "?"))
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return queryMap(q), nil
		}),
		"quote": unaryText("url.quote", func(s string) (any, error) {
			return url.QueryEscape(s), nil
		}),
		"unquote": unaryText("url.unquote", func(s string) (any, error) {
			u, err := url.QueryUnescape(s)
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return u, nil
		}),
		"join": value.Func(func(args ...any) (any, error) {
			if err := arity("url.join", args, 1, -1); err != nil {
				return nil, err
			}

			s, err := textArgs("url.join", args, len(args))
			if err != nil {
				return nil, err
			}

			u, err := url.JoinPath(s[0], s[1:]...)
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return u, nil
		}),
	}
}

// urlParse splits a URL into a mapping of its components.
func urlParse(s string) (any, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, value.ErrConvert.Wrap(err)
	}

	return map[string]any{
		"scheme":   u.Scheme,
		"user":     u.User.Username(),
		"host":     u.Hostname(),
		"port":     u.Port(),
		"path":     u.Path,
		"query":    queryMap(u.Query()),
		"fragment": u.Fragment,
	}, nil
}

// queryMap converts query values to a mapping; keys with one value map to a
// string, keys with several to a list.
func queryMap(q url.Values) map[string]any {
	out := make(map[string]any, len(q))

	for k, v := range q {
		if len(v) == 1 {
			out[k] = v[0]
		} else {
			out[k] = anyList(v)
		}
	}

	return out
}
