// Package forgotpassword реализует HTTP-обработчик запроса сброса пароля.
//
// Ответ одинаков для существующих и несуществующих адресов, чтобы
// ручка не позволяла перебирать базу зарегистрированных email.
package forgotpassword

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
)

// Request — входные данные для запроса сброса пароля.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики сброса пароля.
type Service interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// Handler управляет HTTP-запросами на сброс пароля.
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
// @Summary Запросить сброс пароля
// @Description Выдает одноразовый токен сброса и отправляет письмо, если адрес зарегистрирован.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email учетной записи"
// @Success 200 {object} response.Response "Запрос принят"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/forgot-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgotpassword"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		log.Error("failed to request password reset", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("password reset requested")

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "if the email is registered, a reset link has been sent",
	}))
}
