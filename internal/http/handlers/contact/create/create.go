// Package create реализует HTTP-обработчик контактной формы.
package create

import (
	"context"
	"log/slog"
	"net/http"

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
	counter  Counter
	validate *validator.Validate
}

type Service interface {
	Submit(ctx context.Context, in models.ContactInput) (models.Contact, error)
}

// Counter считает принятые заявки. prometheus.Counter подходит без обертки.
type Counter interface {
	Inc()
}

// New создает обработчик. counter может быть nil.
func New(log *slog.Logger, service Service, counter Counter) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		counter:  counter,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправить заявку
// @Description Сохраняет сообщение с контактной формы. Время создания проставляет сервер.
// @Tags Contact
// @Accept  json
// @Produce  json
// @Param request body models.ContactInput true "Данные формы"
// @Success 201 {object} response.Response{data=models.Contact}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /contact [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ContactInput
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err))
		return
	}

	contact, err := h.service.Submit(r.Context(), req)
	if err != nil {
		log.Error("failed to save contact", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save message"))
		return
	}
	if h.counter != nil {
		h.counter.Inc()
	}

	log.Info("contact saved", slog.Int("id", contact.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(contact))
}
