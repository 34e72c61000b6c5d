package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"stockquotes-ingestor/internal/application"
	"stockquotes-ingestor/internal/bootstrap"
	"stockquotes-ingestor/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap.InitIngest(ctx)
	if err != nil {
		log.Fatal("init ingest", zap.Error(err))
	}
	defer cleanup()

	out, err := app.Run(ctx)
	switch {
	case errors.Is(err, application.ErrBatchInProgress):
		log.Warn("ingest skipped: another batch holds the lock")
		return
	case err != nil:
		log.Error("ingest not started", zap.Error(err))
		cleanup()
		os.Exit(1)
	}

	log.Info("ingest done",
		zap.Strings("succeeded", out.Succeeded()),
		zap.Any("failed", out.FailedKinds()),
	)
}
