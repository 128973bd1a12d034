// Package main Studio Portfolio API
//
// @title           Studio Portfolio API
// @version         1.0
// @description     API сайта студии: портфолио проектов, услуги и контактная форма
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@studio.example

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/magabrotheeeer/studio-portfolio/docs"
	"github.com/magabrotheeeer/studio-portfolio/internal/app/portfolio"
	"github.com/magabrotheeeer/studio-portfolio/internal/config"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting studio-portfolio", slog.String("env", cfg.Env))
	logger.Debug("loaded config", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := portfolio.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("studio-portfolio stopped gracefully")
}
