// Package logout реализует HTTP-обработчик выхода из системы.
package logout

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, sessionToken string) error
}

// Handler управляет HTTP-запросами на выход.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выйти из системы
// @Description Отзывает текущую сессию. Неизвестный токен не считается ошибкой.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Сессия отозвана"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionToken := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.service.Logout(r.Context(), sessionToken); err != nil {
		log.Error("logout failed", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("session revoked")

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "logged out successfully",
	}))
}
