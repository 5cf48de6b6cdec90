// Package remove реализует HTTP-обработчик удаления объекта недвижимости.
package remove

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

// Service описывает интерфейс бизнес-логики удаления объекта.
type Service interface {
	Delete(ctx context.Context, user *models.User, id int64) error
}

// Handler управляет HTTP-запросами на удаление объекта.
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
// @Summary Удалить объект
// @Description Удаляет объявление. Разрешено владельцу и админу.
// @Tags Properties
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID объекта"
// @Success 200 {object} response.Response "Объект удален"
// @Failure 403 {object} response.ErrorResponse "Нет прав на удаление"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Router /properties/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.remove"
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
		log.Error("invalid property id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidation, "invalid property id"))
		return
	}

	if err := h.service.Delete(r.Context(), user, id); err != nil {
		log.Info("property delete rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("property deleted", slog.Int64("property_id", id))

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "property deleted",
	}))
}
