// Package health реализует HTTP-обработчик проверки работоспособности сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
)

// Checker проверяет готовность хранилища.
type Checker interface {
	Ready() error
}

// Handler управляет HTTP-запросами на проверку здоровья.
type Handler struct {
	log *slog.Logger
	db  Checker
}

// New создает новый Handler с переданными логгером и проверкой базы.
func New(log *slog.Logger, db Checker) *Handler {
	return &Handler{
		log: log,
		db:  db,
	}
}

// ServeHTTP godoc
// @Summary Проверка здоровья
// @Description Возвращает статус сервиса и готовность базы данных.
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response "Сервис работает"
// @Failure 503 {object} response.ErrorResponse "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.db.Ready(); err != nil {
		h.log.Error("database is not ready", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error(response.CodeInternal, "database is not available"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status":   "ok",
		"database": "ok",
	}))
}
