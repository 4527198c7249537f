package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"CompetitorScout/internal/app"
	"CompetitorScout/internal/config"
	"CompetitorScout/internal/logging"
)

func main() {
	_ = godotenv.Load()

	website := flag.String("website", "", "run one discovery for this website id and exit")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	if *website != "" {
		if err := application.RunOnce(ctx, *website); err != nil {
			logger.Error("discovery run failed", "error", err)
			_ = application.Close()
			os.Exit(1)
		}
		return
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		_ = application.Close()
		os.Exit(1)
	}
}
