// Package platforms реализует HTTP-обработчик каталога рекламных платформ
// с признаком доступности для текущего пользователя.
package platforms

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/models"
	"github.com/magabrotheeeer/realty-platform/internal/services/marketing"
)

// Service описывает интерфейс бизнес-логики каталога платформ.
type Service interface {
	Platforms(user *models.User) []marketing.PlatformAccess
}

// Handler управляет HTTP-запросами на каталог платформ.
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
// @Summary Каталог платформ
// @Description Возвращает список рекламных платформ и доступность каждой для текущей подписки.
// @Tags Marketing
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список платформ"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /marketing/platforms [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.marketing.platforms"
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

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"platforms": h.service.Platforms(user),
	}))
}
