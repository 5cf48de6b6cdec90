// Package campaignupdate реализует HTTP-обработчик частичного изменения кампании.
package campaignupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики изменения кампании.
type Service interface {
	Update(ctx context.Context, user *models.User, id int64, dto models.DummyCampaignUpdate) (*models.MarketingCampaign, error)
}

// Handler управляет HTTP-запросами на изменение кампании.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить кампанию
// @Description Меняет переданные поля кампании, включая статус. Отсутствующие поля не трогаются.
// @Tags Marketing
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID кампании"
// @Param request body models.DummyCampaignUpdate true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновленная кампания"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Нет прав на изменение"
// @Failure 404 {object} response.ErrorResponse "Кампания не найдена"
// @Router /marketing/campaigns/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.marketing.campaignupdate"
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

	var req models.DummyCampaignUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidation, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	campaign, err := h.service.Update(r.Context(), user, id, req)
	if err != nil {
		log.Info("campaign update rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("campaign updated", slog.Int64("campaign_id", id))

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"campaign": campaign.View(),
	}))
}
