// Package remove реализует HTTP-обработчик удаления проекта.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/studio-portfolio/internal/http/response"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	DeleteProject(ctx context.Context, id int) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить проект
// @Tags Projects
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID проекта"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный id"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Проект не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /projects/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid project id"))
		return
	}

	deleted, err := h.service.DeleteProject(r.Context(), id)
	if err != nil {
		log.Error("failed to delete project", slog.Int("id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete project"))
		return
	}
	if !deleted {
		log.Info("project not found", slog.Int("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("project not found"))
		return
	}

	log.Info("project deleted", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted": true,
	}))
}
