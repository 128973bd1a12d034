package portfolio

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/studio-portfolio/internal/http/handlers/auth/login"
	contactcreate "github.com/magabrotheeeer/studio-portfolio/internal/http/handlers/contact/create"
	"github.com/magabrotheeeer/studio-portfolio/internal/http/handlers/health"
	projectcreate "github.com/magabrotheeeer/studio-portfolio/internal/http/handlers/project/create"
	projectlist "github.com/magabrotheeeer/studio-portfolio/internal/http/handlers/project/list"
	"github.com/magabrotheeeer/studio-portfolio/internal/http/handlers/project/remove"
	"github.com/magabrotheeeer/studio-portfolio/internal/http/handlers/project/update"
	servicelist "github.com/magabrotheeeer/studio-portfolio/internal/http/handlers/service/list"
	"github.com/magabrotheeeer/studio-portfolio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/studio-portfolio/internal/http/response"
	"github.com/magabrotheeeer/studio-portfolio/internal/metrics"
	authservice "github.com/magabrotheeeer/studio-portfolio/internal/services/auth"
	contactservice "github.com/magabrotheeeer/studio-portfolio/internal/services/contact"
	portfolioservice "github.com/magabrotheeeer/studio-portfolio/internal/services/portfolio"
)

// Dependencies - собранные сервисы, которые нужны маршрутам.
type Dependencies struct {
	Portfolio *portfolioservice.Service
	Contact   *contactservice.Service
	Auth      *authservice.Service
	Metrics   *metrics.Metrics
	Limiter   *rate.Limiter
	StaticDir string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Dependencies) {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Compress(5),
		middlewarectx.RequestLogger(logger),
		middlewarectx.CacheControl,
		middlewarectx.Metrics(deps.Metrics),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New().ServeHTTP)
		r.Get("/projects", projectlist.New(logger, deps.Portfolio).ServeHTTP)
		r.Get("/services", servicelist.New(logger, deps.Portfolio).ServeHTTP)
		r.Post("/admin/login", login.New(logger, deps.Auth).ServeHTTP)

		r.With(middlewarectx.RateLimitMiddleware(logger, deps.Limiter)).
			Post("/contact", contactcreate.New(logger, deps.Contact, deps.Metrics.ContactsTotal).ServeHTTP)

		// Управление проектами только для администратора
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.Auth, logger))
			updateHandler := update.New(logger, deps.Portfolio)
			r.Post("/projects", projectcreate.New(logger, deps.Portfolio).ServeHTTP)
			r.Put("/projects/{id}", updateHandler.ServeHTTP)
			r.Patch("/projects/{id}", updateHandler.ServeHTTP)
			r.Delete("/projects/{id}", remove.New(logger, deps.Portfolio).ServeHTTP)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("not found"))
		})
	})

	r.Handle("/metrics", deps.Metrics.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

	if deps.StaticDir != "" {
		r.Get("/*", spaHandler(deps.StaticDir))
	}
}
