// Package marketing содержит бизнес-логику рекламных кампаний.
// Интеграции с рекламными платформами симулируются: идентификаторы
// кампаний и постов фабрикуются, показатели считаются по детерминированным
// формулам от времени работы кампании.
package marketing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/magabrotheeeer/realty-platform/internal/config"
	"github.com/magabrotheeeer/realty-platform/internal/lib/authz"
	"github.com/magabrotheeeer/realty-platform/internal/lib/money"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Repository описывает контракт хранилища маркетинговых кампаний.
type Repository interface {
	CreateCampaign(ctx context.Context, c models.MarketingCampaign) (int64, error)
	GetCampaign(ctx context.Context, id int64) (*models.MarketingCampaign, error)
	ListCampaigns(ctx context.Context, f models.CampaignFilter) ([]*models.MarketingCampaign, int, error)
	UpdateCampaign(ctx context.Context, c models.MarketingCampaign) (*models.MarketingCampaign, error)
	DeleteCampaign(ctx context.Context, id int64) (int64, error)
	LaunchCampaign(ctx context.Context, id int64, platformCampaignID string, start time.Time, end *time.Time) (*models.MarketingCampaign, error)
	UpdateCampaignStatus(ctx context.Context, id int64, status string) (*models.MarketingCampaign, error)
	UpdateCampaignMetrics(ctx context.Context, id int64, impressions, clicks, leads, costSpent int64) error
	CampaignStats(ctx context.Context) (*models.CampaignStats, error)

	GetProperty(ctx context.Context, id int64) (*models.Property, error)
}

// MarketingService управляет рекламными кампаниями и продвижением
// объектов в социальных сетях.
type MarketingService struct {
	repo      Repository
	platforms []config.Platform
}

// New создает новый экземпляр MarketingService.
func New(repo Repository, platforms []config.Platform) *MarketingService {
	return &MarketingService{
		repo:      repo,
		platforms: platforms,
	}
}

func (s *MarketingService) platform(key string) (config.Platform, bool) {
	for _, p := range s.platforms {
		if p.Key == key {
			return p, true
		}
	}
	return config.Platform{}, false
}

// platformAllowed проверяет доступ пользователя к платформе. Платформы
// уровня basic доступны при любой действующей подписке, уровня
// premium — только на тарифе premium.
func platformAllowed(p config.Platform, user *models.User) bool {
	if !user.HasActiveSubscription() {
		return false
	}
	if p.RequiredPlan == models.TierPremium {
		return user.SubscriptionType == models.TierPremium
	}
	return true
}

// Create создает черновик кампании. Требуется действующая подписка
// и доступ к выбранной платформе.
func (s *MarketingService) Create(ctx context.Context, user *models.User, dto models.DummyCampaign) (*models.MarketingCampaign, error) {
	const op = "marketing.Create"

	platform, ok := s.platform(dto.Platform)
	if !ok {
		return nil, models.ErrUnknownPlatform
	}
	if !user.HasActiveSubscription() {
		return nil, models.ErrSubscriptionNeeded
	}
	if !platformAllowed(platform, user) {
		return nil, fmt.Errorf("%w: %s requires the premium plan", models.ErrPermissionDenied, platform.Name)
	}

	if dto.PropertyID != nil {
		property, err := s.repo.GetProperty(ctx, *dto.PropertyID)
		if err != nil {
			return nil, err
		}
		if !authz.CanManage(user.Role, user.UID, property.OwnerUID) {
			return nil, models.ErrPermissionDenied
		}
	}

	c := models.MarketingCampaign{
		UserUID:        user.UID,
		PropertyID:     dto.PropertyID,
		Name:           dto.Name,
		Platform:       dto.Platform,
		CampaignType:   dto.CampaignType,
		Budget:         money.ToMinor(dto.Budget),
		DailyBudget:    money.PtrToMinor(dto.DailyBudget),
		TargetAudience: dto.TargetAudience,
	}
	id, err := s.repo.CreateCampaign(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.repo.GetCampaign(ctx, id)
}

// Get возвращает кампанию владельцу или админу. Показатели активной
// кампании пересчитываются при каждом чтении.
func (s *MarketingService) Get(ctx context.Context, user *models.User, id int64) (*models.MarketingCampaign, error) {
	c, err := s.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManage(user.Role, user.UID, c.UserUID) {
		return nil, models.ErrPermissionDenied
	}
	if err := s.refreshMetrics(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List возвращает страницу кампаний пользователя и общее количество.
func (s *MarketingService) List(ctx context.Context, user *models.User, f models.CampaignFilter) ([]*models.MarketingCampaign, int, error) {
	f.UserUID = user.UID
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	campaigns, total, err := s.repo.ListCampaigns(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	for _, c := range campaigns {
		if err := s.refreshMetrics(ctx, c); err != nil {
			return nil, 0, err
		}
	}
	return campaigns, total, nil
}

// Update изменяет кампанию. nil-поля запроса не трогаются.
func (s *MarketingService) Update(ctx context.Context, user *models.User, id int64, dto models.DummyCampaignUpdate) (*models.MarketingCampaign, error) {
	c, err := s.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManage(user.Role, user.UID, c.UserUID) {
		return nil, models.ErrPermissionDenied
	}

	if dto.Name != nil {
		c.Name = *dto.Name
	}
	if dto.Budget != nil {
		c.Budget = money.ToMinor(*dto.Budget)
	}
	if dto.DailyBudget != nil {
		c.DailyBudget = money.PtrToMinor(dto.DailyBudget)
	}
	if dto.TargetAudience != nil {
		c.TargetAudience = *dto.TargetAudience
	}
	if dto.Status != nil {
		c.Status = *dto.Status
	}
	return s.repo.UpdateCampaign(ctx, *c)
}

// Delete удаляет кампанию владельца или любую кампанию для админа.
func (s *MarketingService) Delete(ctx context.Context, user *models.User, id int64) error {
	c, err := s.repo.GetCampaign(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanManage(user.Role, user.UID, c.UserUID) {
		return models.ErrPermissionDenied
	}
	_, err = s.repo.DeleteCampaign(ctx, id)
	return err
}

// Launch запускает черновик кампании. Кампании присваивается
// синтетический идентификатор платформы, а при заданном дневном
// бюджете — дата окончания, когда общий бюджет будет исчерпан.
func (s *MarketingService) Launch(ctx context.Context, user *models.User, id int64) (*models.MarketingCampaign, error) {
	c, err := s.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManage(user.Role, user.UID, c.UserUID) {
		return nil, models.ErrPermissionDenied
	}
	if c.Status != models.CampaignDraft {
		return nil, fmt.Errorf("%w: only draft campaigns can be launched", models.ErrInvalidState)
	}

	now := time.Now().UTC()
	platformCampaignID := fmt.Sprintf("%s_%d_%d", c.Platform, c.ID, now.Unix())
	var end *time.Time
	if c.DailyBudget != nil && *c.DailyBudget > 0 {
		days := c.Budget / *c.DailyBudget
		endDate := now.AddDate(0, 0, int(days))
		end = &endDate
	}
	return s.repo.LaunchCampaign(ctx, id, platformCampaignID, now, end)
}

// Pause приостанавливает активную кампанию.
func (s *MarketingService) Pause(ctx context.Context, user *models.User, id int64) (*models.MarketingCampaign, error) {
	c, err := s.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManage(user.Role, user.UID, c.UserUID) {
		return nil, models.ErrPermissionDenied
	}
	if c.Status != models.CampaignActive {
		return nil, fmt.Errorf("%w: only active campaigns can be paused", models.ErrInvalidState)
	}
	return s.repo.UpdateCampaignStatus(ctx, id, models.CampaignPaused)
}

// refreshMetrics пересчитывает показатели активной кампании
// детерминированными формулами от числа дней работы и сохраняет их.
// День запуска считается первым днём работы. Кампании в остальных
// статусах не трогаются.
func (s *MarketingService) refreshMetrics(ctx context.Context, c *models.MarketingCampaign) error {
	if c.Status != models.CampaignActive || c.StartDate == nil {
		return nil
	}

	now := time.Now().UTC()
	daysRunning := int64(now.Sub(*c.StartDate).Hours()/24) + 1
	if daysRunning < 0 {
		daysRunning = 0
	}

	impressions := daysRunning*1000 + c.ID*100
	clicks := int64(float64(impressions) * 0.02)
	leads := int64(float64(clicks) * 0.1)

	dailySpend := c.Budget
	if c.DailyBudget != nil {
		dailySpend = *c.DailyBudget
	}
	costSpent := daysRunning * dailySpend
	if costSpent > c.Budget {
		costSpent = c.Budget
	}

	if err := s.repo.UpdateCampaignMetrics(ctx, c.ID, impressions, clicks, leads, costSpent); err != nil {
		return err
	}
	c.Impressions = impressions
	c.Clicks = clicks
	c.Leads = leads
	c.CostSpent = costSpent
	return nil
}

// SocialPost — результат симулированной публикации в одной соцсети.
type SocialPost struct {
	Platform string `json:"platform"`
	PostID   string `json:"post_id"`
	URL      string `json:"url"`
}

// SocialShare публикует объект недвижимости в Facebook и Instagram.
// Публикация симулируется: возвращаются синтетические идентификаторы
// постов. Требуется включенное в тарифе продвижение в соцсетях;
// администраторы публикуют без этого флага, агенты делятся любым объектом.
func (s *MarketingService) SocialShare(ctx context.Context, user *models.User, propertyID int64) ([]SocialPost, error) {
	property, err := s.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAgent && !authz.CanManage(user.Role, user.UID, property.OwnerUID) {
		return nil, models.ErrPermissionDenied
	}
	if !user.SocialMediaPromotion && user.Role != models.RoleAdmin {
		return nil, models.ErrSocialPromotionOff
	}

	now := time.Now().UTC().Unix()
	return []SocialPost{
		{
			Platform: "facebook",
			PostID:   fmt.Sprintf("fb_post_%d_%d", property.ID, now),
			URL:      fmt.Sprintf("https://facebook.com/posts/fb_post_%d_%d", property.ID, now),
		},
		{
			Platform: "instagram",
			PostID:   fmt.Sprintf("ig_post_%d_%d", property.ID, now),
			URL:      fmt.Sprintf("https://instagram.com/p/ig_post_%d_%d", property.ID, now),
		},
	}, nil
}

// PlatformAccess — платформа каталога с признаком доступности
// для конкретного пользователя.
type PlatformAccess struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	APIBase      string `json:"api_base"`
	RequiredPlan string `json:"required_plan"`
	Available    bool   `json:"available"`
}

// Platforms возвращает каталог рекламных платформ с признаком
// доступности для пользователя.
func (s *MarketingService) Platforms(user *models.User) []PlatformAccess {
	result := make([]PlatformAccess, 0, len(s.platforms))
	for _, p := range s.platforms {
		result = append(result, PlatformAccess{
			Key:          p.Key,
			Name:         p.Name,
			APIBase:      p.APIBase,
			RequiredPlan: p.RequiredPlan,
			Available:    platformAllowed(p, user),
		})
	}
	return result
}

// Analytics — сводные показатели по кампаниям пользователя.
type Analytics struct {
	TotalCampaigns   int     `json:"total_campaigns"`
	ActiveCampaigns  int     `json:"active_campaigns"`
	TotalImpressions int64   `json:"total_impressions"`
	TotalClicks      int64   `json:"total_clicks"`
	TotalLeads       int64   `json:"total_leads"`
	TotalSpent       float64 `json:"total_spent"`
	AverageCTR       float64 `json:"average_ctr"`
	AverageCPL       float64 `json:"average_cpl"`
}

// UserAnalytics собирает сводку по всем кампаниям пользователя.
func (s *MarketingService) UserAnalytics(ctx context.Context, user *models.User) (*Analytics, error) {
	campaigns, total, err := s.repo.ListCampaigns(ctx, models.CampaignFilter{
		UserUID: user.UID,
		Limit:   1000,
	})
	if err != nil {
		return nil, err
	}

	a := &Analytics{TotalCampaigns: total}
	var totalSpent int64
	for _, c := range campaigns {
		if err := s.refreshMetrics(ctx, c); err != nil {
			return nil, err
		}
		if c.Status == models.CampaignActive {
			a.ActiveCampaigns++
		}
		a.TotalImpressions += c.Impressions
		a.TotalClicks += c.Clicks
		a.TotalLeads += c.Leads
		totalSpent += c.CostSpent
	}
	a.TotalSpent = money.ToMajor(totalSpent)
	if a.TotalImpressions > 0 {
		a.AverageCTR = round2(float64(a.TotalClicks) / float64(a.TotalImpressions) * 100)
	}
	if a.TotalLeads > 0 {
		a.AverageCPL = round2(a.TotalSpent / float64(a.TotalLeads))
	}
	return a, nil
}

// AdminCampaigns возвращает страницу кампаний всех пользователей.
func (s *MarketingService) AdminCampaigns(ctx context.Context, f models.CampaignFilter) ([]*models.MarketingCampaign, int, error) {
	f.UserUID = ""
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.ListCampaigns(ctx, f)
}

// AdminStats возвращает сводку по всем кампаниям платформы.
func (s *MarketingService) AdminStats(ctx context.Context) (*models.CampaignStats, error) {
	return s.repo.CampaignStats(ctx)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
