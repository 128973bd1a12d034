// Package list реализует HTTP-обработчик списка проектов портфолио.
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
	ListProjects(ctx context.Context) ([]models.Project, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список проектов
// @Description Возвращает все проекты портфолио в порядке добавления.
// @Tags Projects
// @Produce  json
// @Success 200 {object} response.Response{data=[]models.Project}
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /projects [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		log.Error("failed to list projects", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch projects"))
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	log.Debug("projects listed", slog.Int("count", len(projects)))
	render.JSON(w, r, response.StatusOKWithData(projects))
}
