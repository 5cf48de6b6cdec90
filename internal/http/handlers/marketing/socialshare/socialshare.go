// Package socialshare реализует HTTP-обработчик публикации объявления
// в социальных сетях. Публикация имитируется, внешние API не вызываются.
package socialshare

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
	"github.com/magabrotheeeer/realty-platform/internal/services/marketing"
)

// Request запрос на публикацию объявления в соцсетях.
type Request struct {
	PropertyID int64 `json:"property_id" validate:"required"`
}

// Service описывает интерфейс бизнес-логики продвижения объявления.
type Service interface {
	SocialShare(ctx context.Context, user *models.User, propertyID int64) ([]marketing.SocialPost, error)
}

// Handler управляет HTTP-запросами на публикацию объявления.
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
// @Summary Опубликовать объявление в соцсетях
// @Description Имитирует публикацию объявления в Facebook и Instagram. Требуется включенное продвижение в тарифе.
// @Tags Marketing
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "ID объявления"
// @Success 200 {object} response.Response "Созданные посты"
// @Failure 403 {object} response.ErrorResponse "Продвижение недоступно в тарифе"
// @Failure 404 {object} response.ErrorResponse "Объявление не найдено"
// @Router /marketing/social-share [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.marketing.socialshare"
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

	var req Request
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

	posts, err := h.service.SocialShare(r.Context(), user, req.PropertyID)
	if err != nil {
		log.Info("social share rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("property shared", slog.Int64("property_id", req.PropertyID))

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"posts":   posts,
		"message": "property shared to social media",
	}))
}
