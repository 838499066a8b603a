package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler holds the state shared by the pretty text and JSON handlers:
// the options, the output writer, and attributes added with WithAttrs.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func (h prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// withAttrs returns a copy of h carrying attrs, qualified by open groups.
func (h prettyHandler) withAttrs(attrs []slog.Attr) prettyHandler {
	prefix := strings.Join(h.groups, ".")

	merged := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(merged, h.attrs)

	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}

		merged = append(merged, a)
	}

	h.attrs = merged

	return h
}

func (h prettyHandler) withGroup(name string) prettyHandler {
	h.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return h
}

// header returns the time, level, source, and message of r as attributes,
// honoring the configured time formatting via ReplaceAttr.
func (h prettyHandler) header(r slog.Record) []slog.Attr {
	out := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		if a := h.replace(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			out = append(out, a)
		}
	}

	out = append(out, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			out = append(out,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	return append(out, slog.String(slog.MessageKey, r.Message))
}

// body returns the handler attributes followed by the record attributes.
func (h prettyHandler) body(r slog.Record) []slog.Attr {
	prefix := strings.Join(h.groups, ".")
	out := append([]slog.Attr{}, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}

		out = append(out, a)

		return true
	})

	return out
}

func (h prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h prettyHandler) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct{ prettyHandler }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}}
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.header(r) {
		writeTextAttr(buf, a)
	}

	for _, a := range h.body(r) {
		writeTextAttr(buf, a)
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func writeTextAttr(buf *bytes.Buffer, a slog.Attr) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')

	writeColorValue(buf, a.Value.Resolve())
}

// prettyJSONHandler implements a pretty-printed JSON handler for log messages.
type prettyJSONHandler struct{ prettyHandler }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}}
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{")

	attrs := append(h.header(r), h.body(r)...)
	for i, a := range attrs {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString("\n  ")
		buf.WriteString(colorGray)
		buf.WriteString(strconv.Quote(a.Key))
		buf.WriteString(colorReset)
		buf.WriteString(": ")

		writeColorValue(buf, a.Value.Resolve())
	}

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func writeColorValue(buf *bytes.Buffer, v slog.Value) {
	color, text := colorize(v)

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}

// colorize returns the color and rendered text of v.
func colorize(v slog.Value) (color, text string) {
	switch v.Kind() {
	case slog.KindString:
		return colorCyan, v.String()

	case slog.KindInt64:
		return colorYellow, strconv.FormatInt(v.Int64(), 10)

	case slog.KindUint64:
		return colorYellow, strconv.FormatUint(v.Uint64(), 10)

	case slog.KindFloat64:
		return colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case slog.KindBool:
		if v.Bool() {
			return colorGreen, "true"
		}

		return colorRed, "false"

	case slog.KindDuration:
		return colorMagenta, v.Duration().String()

	case slog.KindTime:
		return colorBlue, v.Time().Format(time.RFC3339)

	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			_, s := colorize(a.Value.Resolve())
			parts = append(parts, a.Key+"="+s)
		}

		return colorCyan, "{" + strings.Join(parts, " ") + "}"

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			name := strings.ToUpper(Level(level).String())

			switch {
			case level >= slog.LevelError:
				return colorRed, name
			case level >= slog.LevelWarn:
				return colorYellow, name
			case level >= slog.LevelInfo:
				return colorGreen, name
			default:
				return colorBlue, name
			}
		}

		return colorCyan, fmt.Sprint(v.Any())

	default:
		return colorCyan, v.String()
	}
}
