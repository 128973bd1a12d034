// Package update реализует HTTP-обработчик частичного обновления проекта.
// PUT и PATCH обрабатываются одинаково: меняются только переданные поля.
package update

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/studio-portfolio/internal/http/response"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/validation"
	"github.com/magabrotheeeer/studio-portfolio/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	UpdateProject(ctx context.Context, id int, patch models.ProjectPatch) (models.Project, bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить проект
// @Description Меняет переданные поля проекта. Пустая строка в link или githubLink удаляет ссылку.
// @Tags Projects
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID проекта"
// @Param request body models.ProjectPatch true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.Project}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или id"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Проект не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /projects/{id} [put]
// @Router /projects/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.update"

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

	var patch models.ProjectPatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(patch); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err))
		return
	}

	project, found, err := h.service.UpdateProject(r.Context(), id, patch)
	if err != nil {
		log.Error("failed to update project", slog.Int("id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update project"))
		return
	}
	if !found {
		log.Info("project not found", slog.Int("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("project not found"))
		return
	}

	log.Info("project updated", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(project))
}
