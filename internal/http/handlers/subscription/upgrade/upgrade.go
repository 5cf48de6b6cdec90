// Package upgrade реализует HTTP-обработчик перехода на платный тариф.
package upgrade

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

// Request — входные данные для перехода на платный тариф.
type Request struct {
	Plan          string `json:"plan" validate:"required,oneof=basic premium"`
	BillingCycle  string `json:"billing_cycle,omitempty" validate:"omitempty,oneof=monthly yearly"`
	PaymentMethod string `json:"payment_method,omitempty" validate:"omitempty,max=50"`
}

// Service описывает интерфейс бизнес-логики оплаты подписки.
type Service interface {
	Upgrade(ctx context.Context, userUID, planName, billingCycle, paymentMethod string) (*models.User, *models.Payment, error)
}

// Handler управляет HTTP-запросами на переход на платный тариф.
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
// @Summary Перейти на платный тариф
// @Description Оформляет подписку basic или premium. Платеж симулируется и сразу завершается успехом.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Тариф и период оплаты"
// @Success 200 {object} response.Response "Подписка оформлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Router /subscription/upgrade [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.upgrade"
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

	if req.BillingCycle == "" {
		req.BillingCycle = "monthly"
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "card"
	}

	updated, payment, err := h.service.Upgrade(r.Context(), user.UID, req.Plan, req.BillingCycle, req.PaymentMethod)
	if err != nil {
		log.Error("upgrade failed", sl.Err(err))
		response.Err(w, r, err)
		return
	}
	log.Info("subscription upgraded",
		slog.String("uid", user.UID),
		slog.String("plan", req.Plan),
	)

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":         updated.View(true),
		"subscription": updated.GetSubscriptionStatus(),
		"payment":      payment.View(),
	}))
}
