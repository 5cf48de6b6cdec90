// Package payments реализует HTTP-обработчик истории платежей.
package payments

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

// Service описывает интерфейс бизнес-логики истории платежей.
type Service interface {
	ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error)
}

// Handler управляет HTTP-запросами на просмотр истории платежей.
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
// @Summary История платежей
// @Description Возвращает платежи текущего пользователя, новые первыми.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список платежей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.payments"
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

	payments, err := h.service.ListPayments(r.Context(), user.UID)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	views := make([]models.PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, p.View())
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payments": views,
	}))
}
