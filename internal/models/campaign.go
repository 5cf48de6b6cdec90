package models

import (
	"math"
	"time"

	"github.com/magabrotheeeer/realty-platform/internal/lib/money"
)

// Статусы маркетинговой кампании. Переходы односторонние,
// кроме пары active <-> paused.
const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
)

// CampaignStatuses — допустимые значения статуса кампании.
var CampaignStatuses = []string{CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted}

// TargetAudience — структурированные параметры таргетинга кампании.
// Хранится в JSONB-колонке, валидируется на границе API.
type TargetAudience struct {
	Locations []string `json:"locations,omitempty"`
	AgeMin    int      `json:"age_min,omitempty" validate:"omitempty,min=13,max=100"`
	AgeMax    int      `json:"age_max,omitempty" validate:"omitempty,min=13,max=100,gtefield=AgeMin"`
	Interests []string `json:"interests,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

// MarketingCampaign — рекламная кампания пользователя, опционально
// привязанная к объекту недвижимости. Бюджеты хранятся в филсах,
// метрики пересчитываются при каждом чтении активной кампании.
type MarketingCampaign struct {
	ID         int64
	UserUID    string
	PropertyID *int64

	Name         string
	Platform     string // Ключ платформы из каталога (facebook, instagram, google)
	CampaignType string // property_promotion, brand_awareness

	Budget         int64  // Общий бюджет в филсах
	DailyBudget    *int64 // Дневной бюджет в филсах (nil — не задан)
	TargetAudience TargetAudience

	Status             string // draft, active, paused, completed
	PlatformCampaignID *string

	Impressions int64
	Clicks      int64
	Leads       int64
	CostSpent   int64 // Потрачено в филсах

	CreatedAt time.Time
	StartDate *time.Time
	EndDate   *time.Time
}

// CTR возвращает долю кликов от показов в процентах.
func (c *MarketingCampaign) CTR() float64 {
	if c.Impressions == 0 {
		return 0
	}
	return float64(c.Clicks) / float64(c.Impressions) * 100
}

// CPL возвращает стоимость лида в дирхамах.
func (c *MarketingCampaign) CPL() float64 {
	if c.Leads == 0 {
		return 0
	}
	return money.ToMajor(c.CostSpent) / float64(c.Leads)
}

// DummyCampaign принимает данные кампании из JSON-запроса до валидации.
// Бюджеты приходят в дирхамах и конвертируются в филсы на границе.
type DummyCampaign struct {
	Name           string         `json:"name" validate:"required,max=200"`
	Platform       string         `json:"platform" validate:"required"`
	CampaignType   string         `json:"campaign_type" validate:"required,oneof=property_promotion brand_awareness"`
	Budget         float64        `json:"budget" validate:"required,gt=0"`
	DailyBudget    *float64       `json:"daily_budget,omitempty" validate:"omitempty,gt=0"`
	PropertyID     *int64         `json:"property_id,omitempty"`
	TargetAudience TargetAudience `json:"target_audience,omitempty"`
}

// DummyCampaignUpdate принимает частичное обновление кампании.
// nil-поле означает "не менять".
type DummyCampaignUpdate struct {
	Name           *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	Budget         *float64        `json:"budget,omitempty" validate:"omitempty,gt=0"`
	DailyBudget    *float64        `json:"daily_budget,omitempty" validate:"omitempty,gt=0"`
	TargetAudience *TargetAudience `json:"target_audience,omitempty"`
	Status         *string         `json:"status,omitempty" validate:"omitempty,oneof=draft active paused completed"`
}

// CampaignPerformance — блок метрик в представлении кампании.
type CampaignPerformance struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Leads       int64   `json:"leads"`
	CostSpent   float64 `json:"cost_spent"`
	CTR         float64 `json:"ctr"`
	CPL         float64 `json:"cpl"`
}

// CampaignView — представление кампании для JSON-ответов, деньги в дирхамах.
type CampaignView struct {
	ID                 int64               `json:"id"`
	UserUID            string              `json:"user_uid"`
	PropertyID         *int64              `json:"property_id,omitempty"`
	Name               string              `json:"name"`
	Platform           string              `json:"platform"`
	CampaignType       string              `json:"campaign_type"`
	Budget             float64             `json:"budget"`
	DailyBudget        *float64            `json:"daily_budget,omitempty"`
	TargetAudience     TargetAudience      `json:"target_audience"`
	Status             string              `json:"status"`
	PlatformCampaignID *string             `json:"platform_campaign_id,omitempty"`
	Performance        CampaignPerformance `json:"performance"`
	CreatedAt          time.Time           `json:"created_at"`
	StartDate          *time.Time          `json:"start_date,omitempty"`
	EndDate            *time.Time          `json:"end_date,omitempty"`
}

// View возвращает представление кампании с округлёнными до сотых метриками.
func (c *MarketingCampaign) View() CampaignView {
	return CampaignView{
		ID:                 c.ID,
		UserUID:            c.UserUID,
		PropertyID:         c.PropertyID,
		Name:               c.Name,
		Platform:           c.Platform,
		CampaignType:       c.CampaignType,
		Budget:             money.ToMajor(c.Budget),
		DailyBudget:        money.PtrToMajor(c.DailyBudget),
		TargetAudience:     c.TargetAudience,
		Status:             c.Status,
		PlatformCampaignID: c.PlatformCampaignID,
		Performance: CampaignPerformance{
			Impressions: c.Impressions,
			Clicks:      c.Clicks,
			Leads:       c.Leads,
			CostSpent:   money.ToMajor(c.CostSpent),
			CTR:         round2(c.CTR()),
			CPL:         round2(c.CPL()),
		},
		CreatedAt: c.CreatedAt,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
	}
}

// CampaignMetrics — блок показателей кампании с остатком бюджета,
// деньги в дирхамах.
type CampaignMetrics struct {
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Leads           int64   `json:"leads"`
	CostSpent       float64 `json:"cost_spent"`
	CTR             float64 `json:"ctr"`
	CPL             float64 `json:"cpl"`
	BudgetRemaining float64 `json:"budget_remaining"`
}

// Metrics возвращает показатели кампании вместе с остатком бюджета.
func (c *MarketingCampaign) Metrics() CampaignMetrics {
	return CampaignMetrics{
		Impressions:     c.Impressions,
		Clicks:          c.Clicks,
		Leads:           c.Leads,
		CostSpent:       money.ToMajor(c.CostSpent),
		CTR:             round2(c.CTR()),
		CPL:             round2(c.CPL()),
		BudgetRemaining: money.ToMajor(c.Budget - c.CostSpent),
	}
}

// CampaignFilter — параметры выборки списка кампаний.
type CampaignFilter struct {
	UserUID  string // Пустая строка — все пользователи (админ)
	Platform string
	Status   string
	Limit    int
	Offset   int
}

// CampaignStats — сводка по всем кампаниям для административной панели.
type CampaignStats struct {
	TotalCampaigns   int            `json:"total_campaigns"`
	ActiveCampaigns  int            `json:"active_campaigns"`
	TotalImpressions int64          `json:"total_impressions"`
	TotalClicks      int64          `json:"total_clicks"`
	TotalLeads       int64          `json:"total_leads"`
	TotalSpent       float64        `json:"total_spent"`
	ByPlatform       map[string]int `json:"platform_distribution"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
