// Package campaigncreate реализует HTTP-обработчик создания черновика
// рекламной кампании.
package campaigncreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики создания кампаний.
type Service interface {
	Create(ctx context.Context, user *models.User, dto models.DummyCampaign) (*models.MarketingCampaign, error)
}

// Handler управляет HTTP-запросами на создание кампаний.
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
// @Summary Создать кампанию
// @Description Создает черновик рекламной кампании. Требуется действующая подписка и доступ к платформе.
// @Tags Marketing
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyCampaign true "Данные кампании, бюджеты в дирхамах"
// @Success 201 {object} response.Response "Кампания создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или неизвестная платформа"
// @Failure 403 {object} response.ErrorResponse "Нужна подписка или недоступна платформа"
// @Router /marketing/campaigns [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.marketing.campaigncreate"
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

	var req models.DummyCampaign
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

	campaign, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		log.Info("campaign create rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("campaign created",
		slog.Int64("campaign_id", campaign.ID),
		slog.String("platform", campaign.Platform),
	)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"campaign": campaign.View(),
	}))
}
