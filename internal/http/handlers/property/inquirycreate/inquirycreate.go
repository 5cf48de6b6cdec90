// Package inquirycreate реализует HTTP-обработчик подачи заявки по объекту.
// Заявки принимаются и от анонимных посетителей.
package inquirycreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики подачи заявки.
type Service interface {
	CreateInquiry(ctx context.Context, user *models.User, propertyID int64, dto models.DummyInquiry) (int64, error)
}

// Handler управляет HTTP-запросами на подачу заявки.
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
// @Summary Подать заявку по объекту
// @Description Регистрирует заявку посетителя. Авторизация не обязательна: контактные данные берутся из тела запроса.
// @Tags Properties
// @Accept  json
// @Produce  json
// @Param id path int true "ID объекта"
// @Param request body models.DummyInquiry true "Контактные данные и сообщение"
// @Success 201 {object} response.Response "Заявка принята"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Router /properties/{id}/inquiries [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.inquirycreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	propertyID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid property id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeValidation, "invalid property id"))
		return
	}

	var req models.DummyInquiry
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

	// Пользователь опционален: ручка открыта для анонимных посетителей.
	user, _ := middlewarectx.UserFromContext(r.Context())

	id, err := h.service.CreateInquiry(r.Context(), user, propertyID, req)
	if err != nil {
		log.Info("inquiry rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("inquiry created",
		slog.Int64("inquiry_id", id),
		slog.Int64("property_id", propertyID),
	)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"inquiry_id": id,
		"message":    "inquiry submitted successfully",
	}))
}
