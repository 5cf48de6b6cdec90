// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: успешных ответов,
// ошибок валидации и доменных ошибок с машиночитаемыми кодами.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Code — машиночитаемый код ошибки (опционально, при неуспехе).
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Code   string `json:"code" example:"validation_error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Машиночитаемые коды ошибок API.
const (
	CodeValidation         = "validation_error"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthenticated    = "unauthenticated"
	CodeSessionExpired     = "session_expired"
	CodeAccountDeactivated = "account_deactivated"
	CodePermissionDenied   = "permission_denied"
	CodeNotFound           = "not_found"
	CodeInvalidToken       = "invalid_or_expired_token"
	CodeConflict           = "conflict"
	CodeSubscriptionNeeded = "subscription_required"
	CodeInvalidState       = "invalid_state"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal_error"
)

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{
		Status: StatusOK,
	}
}

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой, кодом и переданным сообщением.
func Error(code, msg string) Response {
	return Response{
		Status: StatusError,
		Code:   code,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has an unsupported value", err.Field()))
		case "min", "max", "gt", "gte", "lt", "lte", "gtefield":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is out of range", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Code:   CodeValidation,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// Err преобразует доменную ошибку сервисного слоя в HTTP-статус,
// машиночитаемый код и JSON-ответ. Неизвестные ошибки скрываются
// за общим internal server error.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, CodeInternal
	msg := "internal server error"

	switch {
	case errors.Is(err, models.ErrValidation):
		status, code, msg = http.StatusBadRequest, CodeValidation, err.Error()
	case errors.Is(err, models.ErrInvalidCredentials):
		status, code, msg = http.StatusUnauthorized, CodeInvalidCredentials, err.Error()
	case errors.Is(err, models.ErrUnauthenticated):
		status, code, msg = http.StatusUnauthorized, CodeUnauthenticated, err.Error()
	case errors.Is(err, models.ErrSessionExpired):
		status, code, msg = http.StatusUnauthorized, CodeSessionExpired, err.Error()
	case errors.Is(err, models.ErrAccountDeactivated):
		status, code, msg = http.StatusUnauthorized, CodeAccountDeactivated, err.Error()
	case errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrUsernameTaken),
		errors.Is(err, models.ErrDuplicateFavorite):
		status, code, msg = http.StatusConflict, CodeConflict, err.Error()
	case errors.Is(err, models.ErrInvalidResetToken):
		status, code, msg = http.StatusBadRequest, CodeInvalidToken, err.Error()
	case errors.Is(err, models.ErrNotFound):
		status, code, msg = http.StatusNotFound, CodeNotFound, err.Error()
	case errors.Is(err, models.ErrPermissionDenied),
		errors.Is(err, models.ErrSocialPromotionOff):
		status, code, msg = http.StatusForbidden, CodePermissionDenied, err.Error()
	case errors.Is(err, models.ErrSubscriptionNeeded),
		errors.Is(err, models.ErrCannotListProperty):
		status, code, msg = http.StatusForbidden, CodeSubscriptionNeeded, err.Error()
	case errors.Is(err, models.ErrUnknownPlatform):
		status, code, msg = http.StatusBadRequest, CodeValidation, err.Error()
	case errors.Is(err, models.ErrTrialAlreadyUsed),
		errors.Is(err, models.ErrInvalidState):
		status, code, msg = http.StatusBadRequest, CodeInvalidState, err.Error()
	}

	render.Status(r, status)
	render.JSON(w, r, Error(code, msg))
}
