// Package admincampaigns реализует HTTP-обработчик списка кампаний всех
// пользователей. Доступен только администраторам.
package admincampaigns

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/campaignlist"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики админского списка кампаний.
type Service interface {
	AdminCampaigns(ctx context.Context, f models.CampaignFilter) ([]*models.MarketingCampaign, int, error)
}

// Handler управляет HTTP-запросами на админский список кампаний.
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
// @Summary Все кампании
// @Description Возвращает страницу кампаний всех пользователей. Только для администраторов.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param platform query string false "Фильтр по платформе"
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Список кампаний"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /admin/campaigns [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.marketing.admincampaigns"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	campaigns, total, err := h.service.AdminCampaigns(r.Context(), campaignlist.ParseFilter(r))
	if err != nil {
		log.Error("failed to list campaigns", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	views := make([]models.CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		views = append(views, c.View())
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"campaigns": views,
		"total":     total,
	}))
}
