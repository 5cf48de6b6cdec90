// Package me реализует HTTP-обработчик просмотра собственного профиля.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Handler управляет HTTP-запросами на просмотр профиля.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль владельца сессии, включая границы подписки.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"
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
		"user": user.View(true),
	}))
}
