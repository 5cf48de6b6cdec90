// Package trial реализует HTTP-обработчик включения пробного периода.
package trial

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
)

// Service описывает интерфейс бизнес-логики пробного периода.
type Service interface {
	StartTrial(ctx context.Context, userUID string) (*models.User, error)
}

// Handler управляет HTTP-запросами на включение пробного периода.
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
// @Summary Включить пробный период
// @Description Активирует недельный пробный период. Доступно один раз за всю жизнь учетной записи.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Пробный период включен"
// @Failure 400 {object} response.ErrorResponse "Пробный период уже использован"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /subscription/trial [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.trial"
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

	updated, err := h.service.StartTrial(r.Context(), user.UID)
	if err != nil {
		log.Info("trial rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("free trial started", slog.String("uid", user.UID))

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":         updated.View(true),
		"subscription": updated.GetSubscriptionStatus(),
	}))
}
