// Package favoritelist реализует HTTP-обработчик списка закладок пользователя.
package favoritelist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики закладок.
type Service interface {
	ListFavorites(ctx context.Context, userUID string) ([]*models.Property, error)
}

// Handler управляет HTTP-запросами на просмотр закладок.
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
// @Summary Список закладок
// @Description Возвращает активные объекты из закладок текущего пользователя.
// @Tags Favorites
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список объектов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /favorites [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.favoritelist"
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

	favorites, err := h.service.ListFavorites(r.Context(), user.UID)
	if err != nil {
		log.Error("failed to list favorites", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	views := make([]models.PropertyView, 0, len(favorites))
	for _, p := range favorites {
		views = append(views, p.View())
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"favorites": views,
	}))
}
