// Package launch реализует HTTP-обработчик запуска кампании.
// Запуск переводит черновик в активное состояние и назначает
// идентификатор кампании на внешней платформе.
package launch

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики запуска кампании.
type Service interface {
	Launch(ctx context.Context, user *models.User, id int64) (*models.MarketingCampaign, error)
}

// Handler управляет HTTP-запросами на запуск кампании.
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
// @Summary Запустить кампанию
// @Description Переводит черновик в статус active и назначает внешний идентификатор кампании.
// @Tags Marketing
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID кампании"
// @Success 200 {object} response.Response "Запущенная кампания"
// @Failure 400 {object} response.ErrorResponse "Кампания не в статусе draft"
// @Failure 403 {object} response.ErrorResponse "Нет прав на запуск"
// @Failure 404 {object} response.ErrorResponse "Кампания не найдена"
// @Router /marketing/campaigns/{id}/launch [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.marketing.launch"
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

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid campaign id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidation, "invalid campaign id"))
		return
	}

	campaign, err := h.service.Launch(r.Context(), user, id)
	if err != nil {
		log.Info("campaign launch rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	platformCampaignID := ""
	if campaign.PlatformCampaignID != nil {
		platformCampaignID = *campaign.PlatformCampaignID
	}
	log.Info("campaign launched",
		slog.Int64("campaign_id", id),
		slog.String("platform_campaign_id", platformCampaignID),
	)

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"campaign": campaign.View(),
		"message":  "campaign launched successfully",
	}))
}
