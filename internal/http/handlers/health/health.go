// Package health реализует проверку живости API.
package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/studio-portfolio/internal/http/response"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка доступности
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
