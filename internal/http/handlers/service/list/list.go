// Package list реализует HTTP-обработчик каталога услуг студии.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/studio-portfolio/internal/http/response"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
	"github.com/magabrotheeeer/studio-portfolio/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ListServices(ctx context.Context) ([]models.Service, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список услуг
// @Tags Services
// @Produce  json
// @Success 200 {object} response.Response{data=[]models.Service}
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /services [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.service.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	services, err := h.service.ListServices(r.Context())
	if err != nil {
		log.Error("failed to list services", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch services"))
		return
	}
	if services == nil {
		services = []models.Service{}
	}

	render.JSON(w, r, response.StatusOKWithData(services))
}
