package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/px/cli"
	"github.com/ardnew/px/log"
	"github.com/ardnew/px/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, cli.Std(), os.Args[1:]...)

	stop()

	// Row errors and usage errors have already been reported.
	if err != nil && !errors.Is(err, pipeline.ErrRowFailed) && !errors.Is(err, cli.ErrUsage) {
		log.Error(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
	}

	os.Exit(cli.ExitCode(err))
}
