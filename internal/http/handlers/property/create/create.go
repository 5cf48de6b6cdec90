// Package create реализует HTTP-обработчик публикации объекта недвижимости.
//
// Handler принимает JSON-запрос с данными объекта, валидирует их,
// проверяет право пользователя на публикацию и возвращает созданный
// объект в JSON-формате.
package create

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
)

// Service описывает интерфейс бизнес-логики публикации объектов.
type Service interface {
	Create(ctx context.Context, user *models.User, dto models.DummyProperty) (*models.Property, error)
}

// Handler управляет HTTP-запросами на публикацию объектов.
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
// @Summary Опубликовать объект
// @Description Создает объявление о продаже или аренде. Требуется подписка, агентская или админская роль.
// @Tags Properties
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyProperty true "Данные объекта недвижимости"
// @Success 201 {object} response.Response "Объект создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нужна действующая подписка"
// @Router /properties [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.create"
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

	var req models.DummyProperty
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

	property, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		log.Info("property create rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("property created",
		slog.Int64("property_id", property.ID),
		slog.String("owner_uid", user.UID),
	)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"property": property.View(),
	}))
}
