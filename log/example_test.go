package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/px/log"
)

func Example_basic() {
	logger := log.Make(os.Stderr)
	logger.Warn("symbol file skipped", slog.String("path", "symbols.yaml"))
}

func Example_configuration() {
	logger := log.Make(os.Stderr,
		log.WithLevel(log.LevelDebug),
		log.WithTimeLayout("RFC3339Nano"),
		log.WithCaller(true))

	logger.Debug("debug message with caller info")
}

func Example_withAttributes() {
	logger := log.Make(os.Stderr, log.WithLevel(log.LevelTrace))
	logger = logger.With(slog.Int("stage", 2))

	logger.Trace("evaluate", slog.String("source", "x * 2"))
}

func Example_withContext() {
	ctx := context.Background()

	logger := log.Make(os.Stderr, log.WithFormat(log.FormatJSON))
	logger.WarnContext(ctx, "row failed", slog.Int("row", 7))
}
