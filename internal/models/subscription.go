package models

import (
	"time"

	"github.com/magabrotheeeer/realty-platform/internal/lib/money"
)

// SubscriptionPlan — запись каталога тарифов. Это не состояние пользователя:
// каталог засевается миграцией и меняется только админом.
// Все цены хранятся в филсах.
type SubscriptionPlan struct {
	ID          int64
	Name        string // free, basic, premium
	DisplayName string
	Description string

	PriceMonthly int64  // Цена за месяц в филсах
	PriceYearly  *int64 // Цена за год в филсах (nil — годовой оплаты нет)
	Currency     string

	MaxProperties          int // 0 — без ограничений
	SocialMediaPromotion   bool
	PrioritySupport        bool
	AnalyticsAccess        bool
	FeaturedListings       int
	GoogleAdsIntegration   bool
	FacebookAdsIntegration bool
	LeadManagement         bool

	IsActive  bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlanFeatures — набор возможностей тарифа в ответе API.
type PlanFeatures struct {
	MaxProperties          int  `json:"max_properties"`
	SocialMediaPromotion   bool `json:"social_media_promotion"`
	PrioritySupport        bool `json:"priority_support"`
	AnalyticsAccess        bool `json:"analytics_access"`
	FeaturedListings       int  `json:"featured_listings"`
	GoogleAdsIntegration   bool `json:"google_ads_integration"`
	FacebookAdsIntegration bool `json:"facebook_ads_integration"`
	LeadManagement         bool `json:"lead_management"`
}

// PlanView — представление тарифа для JSON-ответов, цены в дирхамах.
type PlanView struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	DisplayName  string       `json:"display_name"`
	Description  string       `json:"description,omitempty"`
	PriceMonthly float64      `json:"price_monthly"`
	PriceYearly  *float64     `json:"price_yearly,omitempty"`
	Currency     string       `json:"currency"`
	Features     PlanFeatures `json:"features"`
	IsActive     bool         `json:"is_active"`
	SortOrder    int          `json:"sort_order"`
}

// View возвращает представление тарифа с ценами в дирхамах.
func (p *SubscriptionPlan) View() PlanView {
	return PlanView{
		ID:           p.ID,
		Name:         p.Name,
		DisplayName:  p.DisplayName,
		Description:  p.Description,
		PriceMonthly: money.ToMajor(p.PriceMonthly),
		PriceYearly:  money.PtrToMajor(p.PriceYearly),
		Currency:     p.Currency,
		Features: PlanFeatures{
			MaxProperties:          p.MaxProperties,
			SocialMediaPromotion:   p.SocialMediaPromotion,
			PrioritySupport:        p.PrioritySupport,
			AnalyticsAccess:        p.AnalyticsAccess,
			FeaturedListings:       p.FeaturedListings,
			GoogleAdsIntegration:   p.GoogleAdsIntegration,
			FacebookAdsIntegration: p.FacebookAdsIntegration,
			LeadManagement:         p.LeadManagement,
		},
		IsActive:  p.IsActive,
		SortOrder: p.SortOrder,
	}
}

// Статусы платежей.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment — платеж за подписку. Сумма хранится в филсах.
// Платежная интеграция симулируется: provider_payment_id фабрикуется,
// наружу сервис не ходит.
type Payment struct {
	ID                int64
	UserUID           string
	ProviderPaymentID *string
	Amount            int64 // Сумма в филсах
	Currency          string
	Description       string
	Status            string // pending, completed, failed, refunded
	PaymentMethod     string
	PlanID            *int64
	BillingCycle      string // monthly или yearly
	CreatedAt         time.Time
	CompletedAt       *time.Time
}

// PaymentView — представление платежа для JSON-ответов, сумма в дирхамах.
type PaymentView struct {
	ID                int64      `json:"id"`
	UserUID           string     `json:"user_uid"`
	ProviderPaymentID *string    `json:"provider_payment_id,omitempty"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	PaymentMethod     string     `json:"payment_method,omitempty"`
	BillingCycle      string     `json:"billing_cycle"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// View возвращает представление платежа с суммой в дирхамах.
func (p *Payment) View() PaymentView {
	return PaymentView{
		ID:                p.ID,
		UserUID:           p.UserUID,
		ProviderPaymentID: p.ProviderPaymentID,
		Amount:            money.ToMajor(p.Amount),
		Currency:          p.Currency,
		Description:       p.Description,
		Status:            p.Status,
		PaymentMethod:     p.PaymentMethod,
		BillingCycle:      p.BillingCycle,
		CreatedAt:         p.CreatedAt,
		CompletedAt:       p.CompletedAt,
	}
}
