// Команда migrate применяет миграции схемы и заполняет пустые таблицы начальными данными.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/studio-portfolio/internal/config"
	"github.com/magabrotheeeer/studio-portfolio/internal/fixtures"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
	"github.com/magabrotheeeer/studio-portfolio/internal/migrations"
	"github.com/magabrotheeeer/studio-portfolio/internal/storage/postgresql"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	if cfg.Driver != config.StoragePostgres {
		logger.Error("migrations require postgres storage", slog.String("driver", cfg.Driver))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgresql.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to postgres", sl.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to apply migrations", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("migrations applied", slog.String("path", cfg.MigrationsPath))

	if err := db.SeedFixtures(ctx, fixtures.Projects(), fixtures.Services()); err != nil {
		logger.Error("failed to seed fixtures", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("fixtures seeded")
}
