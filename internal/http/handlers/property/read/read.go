// Package read реализует HTTP-обработчик просмотра объекта недвижимости.
// Каждый просмотр увеличивает счетчик views объекта.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики просмотра объекта.
type Service interface {
	Get(ctx context.Context, id int64) (*models.Property, error)
}

// Handler управляет HTTP-запросами на просмотр объекта.
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
// @Summary Просмотреть объект
// @Description Возвращает объект по ID и засчитывает просмотр.
// @Tags Properties
// @Produce  json
// @Param id path int true "ID объекта"
// @Success 200 {object} response.Response "Объект недвижимости"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Router /properties/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid property id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidation, "invalid property id"))
		return
	}

	property, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Info("property not available", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"property": property.View(),
	}))
}
