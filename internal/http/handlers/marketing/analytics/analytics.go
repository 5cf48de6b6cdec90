// Package analytics реализует HTTP-обработчик сводной аналитики
// по кампаниям текущего пользователя.
package analytics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
	"github.com/magabrotheeeer/realty-platform/internal/services/marketing"
)

// Service описывает интерфейс бизнес-логики аналитики.
type Service interface {
	UserAnalytics(ctx context.Context, user *models.User) (*marketing.Analytics, error)
}

// Handler управляет HTTP-запросами на аналитику.
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
// @Summary Аналитика кампаний
// @Description Возвращает суммарные показатели и средние CTR и стоимость лида по кампаниям пользователя.
// @Tags Marketing
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Сводная аналитика"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /marketing/analytics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.marketing.analytics"
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

	analytics, err := h.service.UserAnalytics(r.Context(), user)
	if err != nil {
		log.Error("failed to build analytics", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"analytics": analytics,
	}))
}
