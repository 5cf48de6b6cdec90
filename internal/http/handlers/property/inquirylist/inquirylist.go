// Package inquirylist реализует HTTP-обработчик просмотра заявок по объекту.
package inquirylist

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

// Service описывает интерфейс бизнес-логики просмотра заявок.
type Service interface {
	ListInquiries(ctx context.Context, user *models.User, propertyID int64) ([]*models.PropertyInquiry, error)
}

// Handler управляет HTTP-запросами на просмотр заявок по объекту.
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
// @Summary Заявки по объекту
// @Description Возвращает заявки по объекту. Доступно владельцу, назначенному агенту и админу.
// @Tags Properties
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID объекта"
// @Success 200 {object} response.Response "Список заявок"
// @Failure 403 {object} response.ErrorResponse "Нет прав на просмотр заявок"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Router /properties/{id}/inquiries [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.inquirylist"
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

	propertyID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid property id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidation, "invalid property id"))
		return
	}

	inquiries, err := h.service.ListInquiries(r.Context(), user, propertyID)
	if err != nil {
		log.Info("inquiry list rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	views := make([]models.InquiryView, 0, len(inquiries))
	for _, inq := range inquiries {
		views = append(views, inq.View())
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"inquiries": views,
	}))
}
