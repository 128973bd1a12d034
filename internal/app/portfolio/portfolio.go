// Package portfolio собирает HTTP API сайта студии: хранилище, кеш, брокер и маршруты.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/studio-portfolio/internal/cache"
	"github.com/magabrotheeeer/studio-portfolio/internal/config"
	"github.com/magabrotheeeer/studio-portfolio/internal/fixtures"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/jwt"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
	"github.com/magabrotheeeer/studio-portfolio/internal/metrics"
	"github.com/magabrotheeeer/studio-portfolio/internal/migrations"
	authservice "github.com/magabrotheeeer/studio-portfolio/internal/services/auth"
	contactservice "github.com/magabrotheeeer/studio-portfolio/internal/services/contact"
	portfolioservice "github.com/magabrotheeeer/studio-portfolio/internal/services/portfolio"
	"github.com/magabrotheeeer/studio-portfolio/internal/storage/memory"
	"github.com/magabrotheeeer/studio-portfolio/internal/storage/postgresql"
)

const shutdownTimeout = 15 * time.Second

// Store - полный набор операций хранилища записей.
type Store interface {
	portfolioservice.Repository
	contactservice.Repository
	authservice.UserRepository
	Close() error
}

// Cache - кеш каталога с возможностью закрыть соединение.
type Cache interface {
	portfolioservice.Cache
	Close() error
}

type App struct {
	server  *http.Server
	handler http.Handler
	logger  *slog.Logger
	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.portfolio.New"
	a := &App{logger: logger}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.closers = append(a.closers, store.Close)

	c, err := openCache(ctx, cfg, logger)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.closers = append(a.closers, c.Close)

	var publisher contactservice.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, conn.Close)

		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetContactQueues())
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pub := rabbitmq.NewPublisher(ch, rabbitmq.ContactsExchange, rabbitmq.NewContactRoutingKey)
		// канал закрывается раньше соединения
		a.closers = append(a.closers, pub.Close)
		publisher = pub
		logger.Info("contact notifications enabled")
	} else {
		logger.Info("rabbitmq url is empty, contact notifications disabled")
	}

	authService := authservice.New(store, jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL), logger)
	if cfg.AdminPasswordHash != "" {
		if _, err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPasswordHash); err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		logger.Warn("admin password hash is not configured, project management is unavailable")
	}

	catalog := portfolioservice.New(store, c, cfg.CacheTTL, logger)
	if cfg.Driver != config.StoragePostgres {
		catalog.ResetCache(ctx)
	}

	deps := Dependencies{
		Portfolio: catalog,
		Contact:   contactservice.New(store, publisher, logger),
		Auth:      authService,
		Metrics:   metrics.New(),
		Limiter:   rate.NewLimiter(rate.Limit(cfg.ContactRPS), cfg.ContactBurst),
		StaticDir: cfg.StaticDir,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, deps)
	a.handler = router

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.StoragePostgres:
		db, err := postgresql.New(ctx, cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := db.SeedFixtures(ctx, fixtures.Projects(), fixtures.Services()); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("using postgres storage")
		return db, nil
	default:
		logger.Info("using in-memory storage, data is lost on restart")
		return memory.New(fixtures.Projects(), fixtures.Services()), nil
	}
}

func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Cache, error) {
	if cfg.AddressRedis == "" {
		logger.Info("redis address is empty, caching disabled")
		return cache.Noop{}, nil
	}
	c, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	logger.Info("redis cache enabled", slog.String("address", cfg.AddressRedis))
	return c, nil
}

// Handler возвращает корневой обработчик со всеми маршрутами.
func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает ресурсы в обратном порядке открытия.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}
