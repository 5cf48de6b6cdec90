// Package subscription содержит бизнес-логику тарифов, пробного периода
// и оплаты подписок. Платежный провайдер симулируется: каждый платеж
// немедленно завершается успехом.
package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/realty-platform/internal/config"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

const (
	plansCacheKey = "subscription_plans"
	plansCacheTTL = 10 * time.Minute
)

// Repository описывает контракт хранилища для тарифов, платежей и подписок.
type Repository interface {
	ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error)
	GetPlanByName(ctx context.Context, name string) (*models.SubscriptionPlan, error)
	CreatePayment(ctx context.Context, p models.Payment) (int64, error)
	ListPaymentsByUser(ctx context.Context, userUID string) ([]*models.Payment, error)
	StartFreeTrial(ctx context.Context, userUID string, start, end time.Time) (*models.User, error)
	UpgradeSubscription(ctx context.Context, userUID, tier string, start, end time.Time) (*models.User, error)
}

// Cache — кэш каталога тарифов. Nil допустим: кэширование отключается.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// SubscriptionService управляет тарифами и подписками пользователей.
type SubscriptionService struct {
	repo  Repository
	cache Cache
	cfg   config.Subscriptions
}

// New создает новый экземпляр SubscriptionService.
func New(repo Repository, cache Cache, cfg config.Subscriptions) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
	}
}

// ListPlans возвращает каталог активных тарифов. Каталог меняется редко,
// поэтому кэшируется. Ошибки кэша не прерывают запрос.
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	if s.cache != nil {
		var cached []*models.SubscriptionPlan
		if ok, err := s.cache.Get(plansCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(plansCacheKey, plans, plansCacheTTL)
	}
	return plans, nil
}

// StartTrial включает недельный пробный период. Повторное включение
// невозможно: отметка free_trial_used ставится навсегда.
func (s *SubscriptionService) StartTrial(ctx context.Context, userUID string) (*models.User, error) {
	now := time.Now().UTC()
	return s.repo.StartFreeTrial(ctx, userUID, now, now.Add(s.cfg.TrialDuration))
}

// Upgrade переводит пользователя на платный тариф. Платеж симулируется
// и сразу помечается завершенным с синтетическим идентификатором провайдера.
func (s *SubscriptionService) Upgrade(ctx context.Context, userUID, planName, billingCycle, paymentMethod string) (*models.User, *models.Payment, error) {
	const op = "subscription.Upgrade"

	if planName == models.TierFree {
		return nil, nil, fmt.Errorf("%w: cannot upgrade to the free plan", models.ErrValidation)
	}
	plan, err := s.repo.GetPlanByName(ctx, planName)
	if err != nil {
		return nil, nil, err
	}

	amount := plan.PriceMonthly
	duration := s.cfg.MonthDuration
	if billingCycle == "yearly" {
		if plan.PriceYearly == nil {
			return nil, nil, fmt.Errorf("%w: plan %s has no yearly price", models.ErrValidation, planName)
		}
		amount = *plan.PriceYearly
		duration = 12 * s.cfg.MonthDuration
	}

	now := time.Now().UTC()
	providerID := "sim_" + uuid.NewString()
	payment := models.Payment{
		UserUID:           userUID,
		ProviderPaymentID: &providerID,
		Amount:            amount,
		Currency:          plan.Currency,
		Description:       fmt.Sprintf("%s plan, %s billing", plan.DisplayName, billingCycle),
		Status:            models.PaymentCompleted,
		PaymentMethod:     paymentMethod,
		PlanID:            &plan.ID,
		BillingCycle:      billingCycle,
		CompletedAt:       &now,
	}
	paymentID, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	payment.ID = paymentID
	payment.CreatedAt = now

	user, err := s.repo.UpgradeSubscription(ctx, userUID, plan.Name, now, now.Add(duration))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, &payment, nil
}

// Status возвращает производное состояние подписки пользователя.
func (s *SubscriptionService) Status(user *models.User) models.SubscriptionStatus {
	return user.GetSubscriptionStatus()
}

// ListPayments возвращает историю платежей пользователя.
func (s *SubscriptionService) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	return s.repo.ListPaymentsByUser(ctx, userUID)
}
