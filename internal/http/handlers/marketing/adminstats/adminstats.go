// Package adminstats реализует HTTP-обработчик сводной статистики
// маркетинга по всей платформе. Доступен только администраторам.
package adminstats

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

// Service описывает интерфейс бизнес-логики платформенной статистики.
type Service interface {
	AdminStats(ctx context.Context) (*models.CampaignStats, error)
}

// Handler управляет HTTP-запросами на статистику маркетинга.
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
// @Summary Статистика маркетинга
// @Description Возвращает агрегированные показатели всех кампаний платформы. Только для администраторов.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Сводная статистика"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /admin/marketing/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.marketing.adminstats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.AdminStats(r.Context())
	if err != nil {
		log.Error("failed to load marketing stats", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": stats,
	}))
}
