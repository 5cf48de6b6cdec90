// Package favoriteadd реализует HTTP-обработчик добавления объекта в закладки.
package favoriteadd

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

// Service описывает интерфейс бизнес-логики закладок.
type Service interface {
	AddFavorite(ctx context.Context, userUID string, propertyID int64) error
}

// Handler управляет HTTP-запросами на добавление закладки.
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
// @Summary Добавить в закладки
// @Description Сохраняет объект в закладках текущего пользователя.
// @Tags Favorites
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID объекта"
// @Success 201 {object} response.Response "Объект добавлен в закладки"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Failure 409 {object} response.ErrorResponse "Объект уже в закладках"
// @Router /properties/{id}/favorite [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.favoriteadd"
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

	if err := h.service.AddFavorite(r.Context(), user.UID, propertyID); err != nil {
		log.Info("favorite add rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("favorite added", slog.Int64("property_id", propertyID))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "property added to favorites",
	}))
}
