package module

import (
	"bytes"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ardnew/mung"
	"github.com/sahilm/fuzzy"
	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ardnew/px/value"
)

func stringsModule() map[string]any {
	title := cases.Title(language.Und)

	return map[string]any{
		"upper":      unaryText("strings.upper", func(s string) (any, error) { return strings.ToUpper(s), nil }),
		"lower":      unaryText("strings.lower", func(s string) (any, error) { return strings.ToLower(s), nil }),
		"title":      unaryText("strings.title", func(s string) (any, error) { return title.String(s), nil }),
		"strip":      value.Func(stripper("strip", strings.Trim, strings.TrimSpace)),
		"lstrip":     value.Func(stripper("lstrip", strings.TrimLeft, leftSpace)),
		"rstrip":     value.Func(stripper("rstrip", strings.TrimRight, rightSpace)),
		"fields":     unaryText("strings.fields", func(s string) (any, error) { return anyList(strings.Fields(s)), nil }),
		"splitlines": unaryText("strings.splitlines", splitLines),
		"split":      value.Func(stringsSplit),
		"join":       value.Func(stringsJoin),
		"replace":    value.Func(stringsReplace),
		"repeat":     value.Func(stringsRepeat),
		"reverse":    unaryText("strings.reverse", reverseString),
		"contains":   binaryText("contains", func(s, t string) any { return strings.Contains(s, t) }),
		"startswith": binaryText("startswith", func(s, t string) any { return strings.HasPrefix(s, t) }),
		"endswith":   binaryText("endswith", func(s, t string) any { return strings.HasSuffix(s, t) }),
		"find":       binaryText("find", runeIndex),
		"count":      binaryText("count", func(s, t string) any { return strings.Count(s, t) }),
	}
}

func leftSpace(s string) string { return strings.TrimLeft(s, " \t\n\r\v\f") }

func rightSpace(s string) string { return strings.TrimRight(s, " \t\n\r\v\f") }

// stripper removes the optional cutset, or whitespace, from s.
func stripper(
	name string,
	trim func(string, string) string,
	space func(string) string,
) func(args ...any) (any, error) {
	return func(args ...any) (any, error) {
		if err := arity("strings."+name, args, 1, 2); err != nil {
			return nil, err
		}

		s, err := text("strings."+name, args[0])
		if err != nil {
			return nil, err
		}

		if len(args) == 1 || args[1] == nil {
			return space(s), nil
		}

		cut, err := text("strings."+name, args[1])
		if err != nil {
			return nil, err
		}

		return trim(s, cut), nil
	}
}

func binaryText(name string, f func(s, t string) any) value.Func {
	return func(args ...any) (any, error) {
		s, err := textArgs("strings."+name, args, 2)
		if err != nil {
			return nil, err
		}

		return f(s[0], s[1]), nil
	}
}

// runeIndex returns the character index of t in s, or -1.
func runeIndex(s, t string) any {
	i := strings.Index(s, t)
	if i < 0 {
		return -1
	}

	return utf8.RuneCountInString(s[:i])
}

func splitLines(s string) (any, error) {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	return anyList(lines), nil
}

func reverseString(s string) (any, error) {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}

	return string(r), nil
}

// stringsSplit splits on whitespace runs, or on the separator when given,
// at most n times when n is given.
func stringsSplit(args ...any) (any, error) {
	if err := arity("strings.split", args, 1, 3); err != nil {
		return nil, err
	}

	s, err := text("strings.split", args[0])
	if err != nil {
		return nil, err
	}

	if len(args) == 1 || args[1] == nil {
		return anyList(strings.Fields(s)), nil
	}

	sep, err := text("strings.split", args[1])
	if err != nil {
		return nil, err
	}

	if sep == "" {
		return nil, value.ErrArgument.Wrapf("strings.split() empty separator")
	}

	n := -1
	if len(args) == 3 {
		if n, err = value.ToInt(args[2]); err != nil {
			return nil, err
		}

		if n >= 0 {
			n++
		}
	}

	return anyList(strings.SplitN(s, sep, n)), nil
}

// stringsJoin joins the elements of a list, converting each to text.
func stringsJoin(args ...any) (any, error) {
	if err := arity("strings.join", args, 1, 2); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	sep := ""
	if len(args) == 2 {
		if sep, err = text("strings.join", args[1]); err != nil {
			return nil, err
		}
	}

	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = value.Format(e)
	}

	return strings.Join(parts, sep), nil
}

func stringsReplace(args ...any) (any, error) {
	if err := arity("strings.replace", args, 3, 4); err != nil {
		return nil, err
	}

	s, err := textArgs("strings.replace", args[:3], 3)
	if err != nil {
		return nil, err
	}

	n := -1
	if len(args) == 4 {
		if n, err = value.ToInt(args[3]); err != nil {
			return nil, err
		}
	}

	return strings.Replace(s[0], s[1], s[2], n), nil
}

func stringsRepeat(args ...any) (any, error) {
	if err := arity("strings.repeat", args, 2, 2); err != nil {
		return nil, err
	}

	s, err := text("strings.repeat", args[0])
	if err != nil {
		return nil, err
	}

	n, err := value.ToInt(args[1])
	if err != nil {
		return nil, err
	}

	return strings.Repeat(s, max(n, 0)), nil
}

func strconvModule() map[string]any {
	return map[string]any{
		"quote": unaryText("strconv.quote", func(s string) (any, error) {
			return strconv.Quote(s), nil
		}),
		"unquote": unaryText("strconv.unquote", func(s string) (any, error) {
			u, err := strconv.Unquote(s)
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return u, nil
		}),
		"atoi": unaryText("strconv.atoi", func(s string) (any, error) {
			return value.ParseInt(s, 0)
		}),
		"itoa": value.Func(func(args ...any) (any, error) {
			if err := arity("strconv.itoa", args, 1, 2); err != nil {
				return nil, err
			}

			n, err := value.ToInt(args[0])
			if err != nil {
				return nil, err
			}

			base := 10
			if len(args) == 2 {
				if base, err = value.ToInt(args[1]); err != nil {
					return nil, err
				}
			}

			if base < 2 || base > 36 {
				return nil, value.ErrArgument.Wrapf("strconv.itoa() base must be in [2, 36]")
			}

			return strconv.FormatInt(int64(n), base), nil
		}),
		"parse_bool": unaryText("strconv.parse_bool", func(s string) (any, error) {
			b, err := strconv.ParseBool(strings.TrimSpace(s))
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return b, nil
		}),
	}
}

// patterns caches compiled regular expressions by source.
//
//nolint:gochecknoglobals
var patterns sync.Map

func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil //nolint:forcetypeassert
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, value.ErrArgument.Wrap(err)
	}

	patterns.Store(pattern, re)

	return re, nil
}

// regexpFunc adapts a function of a compiled pattern and a subject string.
func regexpFunc(name string, f func(re *regexp.Regexp, s string) any) value.Func {
	return func(args ...any) (any, error) {
		s, err := textArgs("regexp."+name, args, 2)
		if err != nil {
			return nil, err
		}

		re, err := compile(s[0])
		if err != nil {
			return nil, err
		}

		return f(re, s[1]), nil
	}
}

func regexpModule() map[string]any {
	return map[string]any{
		"match": regexpFunc("match", func(re *regexp.Regexp, s string) any {
			return re.MatchString(s)
		}),
		"find": regexpFunc("find", func(re *regexp.Regexp, s string) any {
			if m := re.FindStringIndex(s); m != nil {
				return s[m[0]:m[1]]
			}

			return nil
		}),
		"findall": regexpFunc("findall", func(re *regexp.Regexp, s string) any {
			return anyList(re.FindAllString(s, -1))
		}),
		"groups": regexpFunc("groups", func(re *regexp.Regexp, s string) any {
			m := re.FindStringSubmatch(s)
			if m == nil {
				return nil
			}

			return anyList(m[1:])
		}),
		"split": regexpFunc("split", func(re *regexp.Regexp, s string) any {
			return anyList(re.Split(s, -1))
		}),
		"sub": value.Func(func(args ...any) (any, error) {
			s, err := textArgs("regexp.sub", args, 3)
			if err != nil {
				return nil, err
			}

			re, err := compile(s[0])
			if err != nil {
				return nil, err
			}

			return re.ReplaceAllString(s[2], s[1]), nil
		}),
	}
}

func markdownModule() map[string]any {
	return map[string]any{
		"html": unaryText("markdown.html", func(s string) (any, error) {
			var buf bytes.Buffer
			if err := goldmark.Convert([]byte(s), &buf); err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return strings.TrimSuffix(buf.String(), "\n"), nil
		}),
	}
}

// localeModule formats numbers with the grouping and decimal conventions of
// a BCP 47 language tag, English by default.
func localeModule() map[string]any {
	format := func(name string, wrap func(v any) any) value.Func {
		return func(args ...any) (any, error) {
			if err := arity("locale."+name, args, 1, 2); err != nil {
				return nil, err
			}

			if !value.IsNumber(args[0]) {
				return nil, value.ErrArgument.Wrapf(
					"locale.%s() expected a number, got '%s'", name, value.TypeName(args[0]))
			}

			tag := language.English

			if len(args) == 2 {
				s, err := text("locale."+name, args[1])
				if err != nil {
					return nil, err
				}

				if tag, err = language.Parse(s); err != nil {
					return nil, value.ErrArgument.Wrap(err)
				}
			}

			return message.NewPrinter(tag).Sprint(wrap(args[0])), nil
		}
	}

	return map[string]any{
		"number":  format("number", func(v any) any { return number.Decimal(v) }),
		"percent": format("percent", func(v any) any { return number.Percent(v) }),
		"title": value.Func(func(args ...any) (any, error) {
			if err := arity("locale.title", args, 1, 2); err != nil {
				return nil, err
			}

			s, err := text("locale.title", args[0])
			if err != nil {
				return nil, err
			}

			tag := language.Und

			if len(args) == 2 {
				t, err := text("locale.title", args[1])
				if err != nil {
					return nil, err
				}

				if tag, err = language.Parse(t); err != nil {
					return nil, value.ErrArgument.Wrap(err)
				}
			}

			return cases.Title(tag).String(s), nil
		}),
	}
}

func fuzzyModule() map[string]any {
	return map[string]any{
		"find": value.Func(func(args ...any) (any, error) {
			if err := arity("fuzzy.find", args, 2, 2); err != nil {
				return nil, err
			}

			pattern, err := text("fuzzy.find", args[0])
			if err != nil {
				return nil, err
			}

			data, err := stringList("fuzzy.find", args[1])
			if err != nil {
				return nil, err
			}

			matches := fuzzy.Find(pattern, data)

			out := make([]any, len(matches))
			for i, m := range matches {
				out[i] = m.Str
			}

			return out, nil
		}),
		"match": binaryText("match", func(pattern, s string) any {
			return len(fuzzy.Find(pattern, []string{s})) > 0
		}),
	}
}

// mungModule manipulates PATH-like lists delimited by the OS path list
// separator.
func mungModule() map[string]any {
	return map[string]any{
		"prefix": value.Func(func(args ...any) (any, error) {
			if err := arity("mung.prefix", args, 1, -1); err != nil {
				return nil, err
			}

			s, err := textArgs("mung.prefix", args, len(args))
			if err != nil {
				return nil, err
			}

			return mungPrefix(s[0], s[1:]...), nil
		}),
		"prefixif": value.Func(func(args ...any) (any, error) {
			if err := arity("mung.prefixif", args, 2, -1); err != nil {
				return nil, err
			}

			subject, err := text("mung.prefixif", args[0])
			if err != nil {
				return nil, err
			}

			if !value.Callable(args[1]) {
				return nil, value.ErrNotCallable.Wrapf(
					"'%s' object is not callable", value.TypeName(args[1]))
			}

			items, err := textArgs("mung.prefixif", args[2:], len(args)-2)
			if err != nil {
				return nil, err
			}

			pred := func(item string) bool {
				ok, err := value.Call(args[1], item)

				return err == nil && value.Truthy(ok)
			}

			return mungPrefixIf(subject, pred, items...), nil
		}),
		"split": unaryText("mung.split", func(s string) (any, error) {
			return anyList(strings.FieldsFunc(s, func(r rune) bool {
				return r == os.PathListSeparator
			})), nil
		}),
	}
}

func mungPrefix(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	subject string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
