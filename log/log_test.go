package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level %v, got %v", DefaultLevel, logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected default format %v, got %v", DefaultFormat, logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestLogger_DefaultLevel_KeepsWarnings(t *testing.T) {
	if DefaultLevel != LevelWarn {
		t.Fatalf("DefaultLevel = %v, want %v", DefaultLevel, LevelWarn)
	}

	var buf bytes.Buffer

	logger := Make(&buf)
	logger.Debug("compiled")
	logger.Info("row")
	logger.Warn("config ignored")

	out := buf.String()
	if strings.Contains(out, "compiled") || strings.Contains(out, "row") {
		t.Errorf("messages below warn were written: %q", out)
	}

	if !strings.Contains(out, "config ignored") {
		t.Errorf("warning missing: %q", out)
	}

	var zero Logger
	if zero.Level() != LevelWarn {
		t.Errorf("zero Logger level = %v, want %v", zero.Level(), LevelWarn)
	}
}

func TestLogger_ZeroValue_IsNoop(t *testing.T) {
	var logger Logger

	logger.Error("dropped", slog.String("k", "v"))
	logger.With(slog.Int("n", 1)).Trace("dropped")

	if logger.Enabled(t.Context(), LevelError) {
		t.Error("zero logger must not be enabled")
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		log    func(Logger)
		logged bool
	}{
		{"trace_at_trace", LevelTrace, func(l Logger) { l.Trace("msg") }, true},
		{"debug_at_info", LevelInfo, func(l Logger) { l.Debug("msg") }, false},
		{"info_at_info", LevelInfo, func(l Logger) { l.Info("msg") }, true},
		{"warn_at_error", LevelError, func(l Logger) { l.Warn("msg") }, false},
		{"error_at_error", LevelError, func(l Logger) { l.Error("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level)))

			if got := strings.Contains(buf.String(), "msg"); got != tt.logged {
				t.Errorf("logged = %v, want %v: %q", got, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON)).Trace("deep")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if rec["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", rec["level"])
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithLevel(LevelInfo)).Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller to reference log_test.go, got: %s", buf.String())
	}
}

func TestLogger_WithTimeLayoutNone_OmitsTime(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithTimeLayout("none"), WithFormat(FormatJSON), WithLevel(LevelInfo)).
		Info("timeless")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, ok := rec["time"]; ok {
		t.Errorf("expected no time key, got %v", rec)
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer

		logger := Make(&buf, WithLevel(LevelInfo), WithPretty(pretty)).
			With(slog.String("stage", "x+1"))
		logger.Info("evaluated", slog.Int("row", 2))

		out := buf.String()
		for _, want := range []string{"stage", "x+1", "row", "evaluated"} {
			if !strings.Contains(out, want) {
				t.Errorf("pretty=%v: output missing %q: %q", pretty, want, out)
			}
		}
	}
}

func TestLogger_Wrap_OverridesConfig(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError {
		t.Errorf("base level changed to %v", base.Level())
	}

	if wrapped.Level() != LevelDebug {
		t.Errorf("wrapped level = %v, want debug", wrapped.Level())
	}

	wrapped.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Error("wrapped logger did not write to base output")
	}
}

func TestPrettyJSON_Format(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelInfo), WithFormat(FormatJSON), WithPretty(true)).
		Info("hello", slog.Bool("ok", true))

	out := buf.String()
	if !strings.HasPrefix(out, "{\n") || !strings.HasSuffix(out, "\n}\n") {
		t.Errorf("unexpected pretty JSON framing: %q", out)
	}

	if !strings.Contains(out, colorGreen+"true") {
		t.Errorf("expected colored boolean: %q", out)
	}
}
