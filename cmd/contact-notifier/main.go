package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/studio-portfolio/internal/app/notifier"
	"github.com/magabrotheeeer/studio-portfolio/internal/config"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
)

func main() {
	cfg := config.MustLoadNotifier()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting contact notifier", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := notifier.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize notifier", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("notifier stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("contact notifier stopped gracefully")
}
