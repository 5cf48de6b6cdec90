// Package status реализует HTTP-обработчик просмотра статуса подписки.
package status

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Handler управляет HTTP-запросами на просмотр статуса подписки.
// Статус выводится из записи пользователя без обращения к базе.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Статус подписки
// @Description Возвращает производное состояние подписки текущего пользователя.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Статус подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /subscription/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing from context")
		response.Err(w, r, models.ErrUnauthenticated)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": user.GetSubscriptionStatus(),
	}))
}
