// Package campaignlist реализует HTTP-обработчик списка кампаний пользователя.
package campaignlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики списка кампаний.
type Service interface {
	List(ctx context.Context, user *models.User, f models.CampaignFilter) ([]*models.MarketingCampaign, int, error)
}

// Handler управляет HTTP-запросами на список кампаний.
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

// ParseFilter извлекает параметры выборки кампаний из query-строки.
func ParseFilter(r *http.Request) models.CampaignFilter {
	q := r.URL.Query()
	f := models.CampaignFilter{
		Platform: q.Get("platform"),
		Status:   q.Get("status"),
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		f.Offset = v
	}
	return f
}

// ServeHTTP godoc
// @Summary Список кампаний
// @Description Возвращает страницу кампаний текущего пользователя с актуальными показателями.
// @Tags Marketing
// @Produce  json
// @Security BearerAuth
// @Param platform query string false "Фильтр по платформе"
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Список кампаний"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /marketing/campaigns [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.marketing.campaignlist"
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

	campaigns, total, err := h.service.List(r.Context(), user, ParseFilter(r))
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
