// Package plans реализует HTTP-обработчик каталога тарифов.
package plans

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога тарифов.
type Service interface {
	ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error)
}

// Handler управляет HTTP-запросами на просмотр каталога тарифов.
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
// @Summary Каталог тарифов
// @Description Возвращает активные тарифные планы с ценами в дирхамах.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} response.Response "Список тарифов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.plans"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	views := make([]models.PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, p.View())
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": views,
	}))
}
