package symbol

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/ardnew/px/value"
)

const defaultWrapWidth = 70

// Textwrap returns paragraph wrapping, indentation, and display-width
// functions. Widths are measured in terminal cells and ignore ANSI escape
// sequences.
func Textwrap() Library {
	return Library{
		Name: "textwrap",
		Symbols: map[string]any{
			"wrap":    value.Func(textWrap),
			"fill":    value.Func(textFill),
			"dedent":  value.Func(textDedent),
			"indent":  value.Func(textIndent),
			"shorten": value.Func(textShorten),
			"width":   value.Func(textWidth),
		},
	}
}

// widthArg returns the optional width argument at index i.
func widthArg(fn string, args []any, i, fallback int) (int, error) {
	if len(args) <= i || args[i] == nil {
		return fallback, nil
	}

	w, err := value.ToInt(args[i])
	if err != nil {
		return 0, err
	}

	if w <= 0 {
		return 0, value.ErrArgument.Wrapf("%s() invalid width %d (must be > 0)", fn, w)
	}

	return w, nil
}

// wrapLines collapses whitespace in s and breaks it into lines of at most
// width cells.
func wrapLines(fn string, args []any) ([]string, error) {
	if err := arity(fn, args, 1, 2); err != nil {
		return nil, err
	}

	s, err := textOf(fn, args[0])
	if err != nil {
		return nil, err
	}

	width, err := widthArg(fn, args, 1, defaultWrapWidth)
	if err != nil {
		return nil, err
	}

	text := strings.Join(strings.Fields(s), " ")
	if text == "" {
		return nil, nil
	}

	return strings.Split(ansi.Wrap(text, width, ""), "\n"), nil
}

func textWrap(args ...any) (any, error) {
	lines, err := wrapLines("wrap", args)
	if err != nil {
		return nil, err
	}

	out := make([]any, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(l)
	}

	return out, nil
}

func textFill(args ...any) (any, error) {
	lines, err := wrapLines("fill", args)
	if err != nil {
		return nil, err
	}

	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}

	return joinLines(lines), nil
}

// textDedent removes the longest common leading whitespace from every
// non-blank line.
func textDedent(args ...any) (any, error) {
	if err := arity("dedent", args, 1, 1); err != nil {
		return nil, err
	}

	s, err := textOf("dedent", args[0])
	if err != nil {
		return nil, err
	}

	lines := strings.Split(s, "\n")

	var margin *string

	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}

		lead := l[:len(l)-len(strings.TrimLeft(l, " \t"))]

		switch {
		case margin == nil:
			margin = &lead
		case strings.HasPrefix(lead, *margin):
		case strings.HasPrefix(*margin, lead):
			margin = &lead
		default:
			common := commonPrefix(*margin, lead)
			margin = &common
		}
	}

	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
		} else if margin != nil {
			lines[i] = strings.TrimPrefix(l, *margin)
		}
	}

	return joinLines(lines), nil
}

func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}

	return a[:n]
}

// textIndent adds prefix to the start of every non-blank line.
func textIndent(args ...any) (any, error) {
	if err := arity("indent", args, 2, 2); err != nil {
		return nil, err
	}

	s, err := textOf("indent", args[0])
	if err != nil {
		return nil, err
	}

	prefix, err := textOf("indent", args[1])
	if err != nil {
		return nil, err
	}

	lines := strings.SplitAfter(s, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = prefix + l
		}
	}

	return strings.Join(lines, ""), nil
}

// textShorten collapses whitespace and truncates to width cells, ending with
// the placeholder when text was removed.
func textShorten(args ...any) (any, error) {
	if err := arity("shorten", args, 2, 3); err != nil {
		return nil, err
	}

	s, err := textOf("shorten", args[0])
	if err != nil {
		return nil, err
	}

	width, err := widthArg("shorten", args, 1, defaultWrapWidth)
	if err != nil {
		return nil, err
	}

	placeholder := " [...]"
	if len(args) == 3 {
		if placeholder, err = textOf("shorten", args[2]); err != nil {
			return nil, err
		}
	}

	text := strings.Join(strings.Fields(s), " ")
	if ansi.StringWidth(text) <= width {
		return text, nil
	}

	if ansi.StringWidth(placeholder) > width {
		return nil, value.ErrArgument.Wrapf("shorten() placeholder too large for max width")
	}

	cut := ansi.Truncate(text, width-ansi.StringWidth(placeholder), "")
	if i := strings.LastIndexByte(cut, ' '); i >= 0 && len(cut) < len(text) && text[len(cut)] != ' ' {
		cut = cut[:i]
	}

	return strings.TrimRight(cut, " ") + placeholder, nil
}

func textWidth(args ...any) (any, error) {
	if err := arity("width", args, 1, 1); err != nil {
		return nil, err
	}

	s, err := textOf("width", args[0])
	if err != nil {
		return nil, err
	}

	return ansi.StringWidth(s), nil
}
