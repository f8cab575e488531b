package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/quiz-client/internal/app"
	"github.com/spec-kit/quiz-client/internal/config"
	"github.com/spec-kit/quiz-client/internal/observability"
	"github.com/spec-kit/quiz-client/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application := app.New(cfg, logger)
	application.Start()

	terminal := view.NewTerminal(application, os.Stdin, os.Stdout)
	if err := terminal.Run(ctx); err != nil {
		logger.Fatal("terminal loop failed", zap.Error(err))
	}
}
