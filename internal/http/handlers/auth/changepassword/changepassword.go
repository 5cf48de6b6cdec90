// Package changepassword реализует HTTP-обработчик смены пароля
// аутентифицированным пользователем.
package changepassword

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

// Request — входные данные для смены пароля.
type Request struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	ChangePassword(ctx context.Context, userUID, currentPassword, newPassword string) error
}

// Handler управляет HTTP-запросами на смену пароля.
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
// @Summary Сменить пароль
// @Description Меняет пароль после проверки текущего. Действующие сессии сохраняются.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Текущий и новый пароли"
// @Success 200 {object} response.Response "Пароль изменен"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или слабый пароль"
// @Failure 401 {object} response.ErrorResponse "Неверный текущий пароль"
// @Router /auth/change-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.changepassword"
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

	if err := h.service.ChangePassword(r.Context(), user.UID, req.CurrentPassword, req.NewPassword); err != nil {
		log.Info("password change rejected", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("password changed", slog.String("uid", user.UID))

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "password changed successfully",
	}))
}
