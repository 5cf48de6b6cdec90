// Package list реализует HTTP-обработчик публичного списка объектов
// недвижимости с фильтрами и пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики списка объектов.
type Service interface {
	List(ctx context.Context, f models.PropertyFilter) ([]*models.Property, int, error)
}

// Handler управляет HTTP-запросами на публичный список объектов.
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

func parseFilter(r *http.Request) models.PropertyFilter {
	q := r.URL.Query()
	f := models.PropertyFilter{
		Location:     q.Get("location"),
		PropertyType: q.Get("property_type"),
		Status:       q.Get("status"),
	}
	if v, err := strconv.ParseInt(q.Get("min_price"), 10, 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseInt(q.Get("max_price"), 10, 64); err == nil {
		f.MaxPrice = &v
	}
	if v, err := strconv.Atoi(q.Get("bedrooms")); err == nil {
		f.Bedrooms = &v
	}
	if v, err := strconv.ParseBool(q.Get("featured")); err == nil {
		f.Featured = &v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		f.Offset = v
	}
	return f
}

// ServeHTTP godoc
// @Summary Список объектов
// @Description Возвращает страницу активных объектов по фильтрам и общее количество совпадений.
// @Tags Properties
// @Produce  json
// @Param location query string false "Подстрока локации"
// @Param property_type query string false "Тип объекта"
// @Param status query string false "Статус объявления"
// @Param min_price query int false "Минимальная цена в дирхамах"
// @Param max_price query int false "Максимальная цена в дирхамах"
// @Param bedrooms query int false "Число спален"
// @Param featured query bool false "Только рекомендуемые"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Список объектов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /properties [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	properties, total, err := h.service.List(r.Context(), parseFilter(r))
	if err != nil {
		log.Error("failed to list properties", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	views := make([]models.PropertyView, 0, len(properties))
	for _, p := range properties {
		views = append(views, p.View())
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"properties": views,
		"total":      total,
	}))
}
