// Package campaignremove реализует HTTP-обработчик удаления кампании.
package campaignremove

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

// Service описывает интерфейс бизнес-логики удаления кампании.
type Service interface {
	Delete(ctx context.Context, user *models.User, id int64) error
}

// Handler управляет HTTP-запросами на удаление кампании.
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
// @Summary Удалить кампанию
// @Description Удаляет кампанию. Разрешено владельцу и админу.
// @Tags Marketing
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID кампании"
// @Success 200 {object} response.Response "Кампания удалена"
// @Failure 403 {object} response.ErrorResponse "Нет прав на удаление"
// @Failure 404 {object} response.ErrorResponse "Кампания не найдена"
// @Router /marketing/campaigns/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.marketing.campaignremove"
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

	if err := h.service.Delete(r.Context(), user, id); err != nil {
		log.Info("campaign delete rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("campaign deleted", slog.Int64("campaign_id", id))

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "campaign deleted",
	}))
}
