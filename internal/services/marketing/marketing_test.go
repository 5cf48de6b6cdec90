package marketing_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/realty-platform/internal/config"
	"github.com/magabrotheeeer/realty-platform/internal/models"
	"github.com/magabrotheeeer/realty-platform/internal/services/marketing"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateCampaign(ctx context.Context, c models.MarketingCampaign) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) GetCampaign(ctx context.Context, id int64) (*models.MarketingCampaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarketingCampaign), args.Error(1)
}

func (m *RepoMock) ListCampaigns(ctx context.Context, f models.CampaignFilter) ([]*models.MarketingCampaign, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.MarketingCampaign), args.Int(1), args.Error(2)
}

func (m *RepoMock) UpdateCampaign(ctx context.Context, c models.MarketingCampaign) (*models.MarketingCampaign, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarketingCampaign), args.Error(1)
}

func (m *RepoMock) DeleteCampaign(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) LaunchCampaign(ctx context.Context, id int64, platformCampaignID string, start time.Time, end *time.Time) (*models.MarketingCampaign, error) {
	args := m.Called(ctx, id, platformCampaignID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarketingCampaign), args.Error(1)
}

func (m *RepoMock) UpdateCampaignStatus(ctx context.Context, id int64, status string) (*models.MarketingCampaign, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarketingCampaign), args.Error(1)
}

func (m *RepoMock) UpdateCampaignMetrics(ctx context.Context, id int64, impressions, clicks, leads, costSpent int64) error {
	args := m.Called(ctx, id, impressions, clicks, leads, costSpent)
	return args.Error(0)
}

func (m *RepoMock) CampaignStats(ctx context.Context) (*models.CampaignStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CampaignStats), args.Error(1)
}

func (m *RepoMock) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func testPlatforms() []config.Platform {
	return config.DefaultPlatforms()
}

func userWithTier(tier string) *models.User {
	end := time.Now().UTC().Add(720 * time.Hour)
	return &models.User{
		UID:              "uid-1",
		Role:             models.RoleUser,
		IsActive:         true,
		SubscriptionType: tier,
		SubscriptionEnd:  &end,
		FreeTrialUsed:    true,
	}
}

func TestMarketingService_Create(t *testing.T) {
	dto := models.DummyCampaign{
		Name:         "Marina promo",
		Platform:     "facebook",
		CampaignType: "property_promotion",
		Budget:       1000,
	}

	t.Run("basic subscriber creates a facebook draft", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("CreateCampaign", mock.Anything, mock.MatchedBy(func(c models.MarketingCampaign) bool {
			// бюджет конвертируется в филсы
			return c.UserUID == "uid-1" && c.Budget == 100000 && c.Platform == "facebook"
		})).Return(int64(3), nil).Once()
		repo.On("GetCampaign", mock.Anything, int64(3)).
			Return(&models.MarketingCampaign{ID: 3, Status: models.CampaignDraft}, nil).Once()

		c, err := svc.Create(context.Background(), userWithTier(models.TierBasic), dto)

		require.NoError(t, err)
		assert.Equal(t, models.CampaignDraft, c.Status)
		repo.AssertExpectations(t)
	})

	t.Run("unknown platform", func(t *testing.T) {
		svc := marketing.New(new(RepoMock), testPlatforms())

		bad := dto
		bad.Platform = "tiktok"
		_, err := svc.Create(context.Background(), userWithTier(models.TierBasic), bad)

		assert.ErrorIs(t, err, models.ErrUnknownPlatform)
	})

	t.Run("no active subscription", func(t *testing.T) {
		svc := marketing.New(new(RepoMock), testPlatforms())

		free := userWithTier(models.TierFree)
		free.SubscriptionEnd = nil
		_, err := svc.Create(context.Background(), free, dto)

		assert.ErrorIs(t, err, models.ErrSubscriptionNeeded)
	})

	t.Run("google requires the premium plan", func(t *testing.T) {
		svc := marketing.New(new(RepoMock), testPlatforms())

		google := dto
		google.Platform = "google"
		_, err := svc.Create(context.Background(), userWithTier(models.TierBasic), google)

		assert.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("premium subscriber uses google", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("CreateCampaign", mock.Anything, mock.Anything).Return(int64(4), nil).Once()
		repo.On("GetCampaign", mock.Anything, int64(4)).
			Return(&models.MarketingCampaign{ID: 4, Status: models.CampaignDraft}, nil).Once()

		google := dto
		google.Platform = "google"
		_, err := svc.Create(context.Background(), userWithTier(models.TierPremium), google)

		require.NoError(t, err)
	})

	t.Run("campaign for a foreign property is rejected", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		propertyID := int64(9)
		repo.On("GetProperty", mock.Anything, propertyID).
			Return(&models.Property{ID: 9, OwnerUID: "someone-else"}, nil).Once()

		withProperty := dto
		withProperty.PropertyID = &propertyID
		_, err := svc.Create(context.Background(), userWithTier(models.TierBasic), withProperty)

		assert.ErrorIs(t, err, models.ErrPermissionDenied)
	})
}

func TestMarketingService_Get(t *testing.T) {
	t.Run("active campaign metrics are recomputed and persisted", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		start := time.Now().UTC().Add(-49 * time.Hour) // идёт третий день работы
		daily := int64(20000)
		repo.On("GetCampaign", mock.Anything, int64(3)).
			Return(&models.MarketingCampaign{
				ID:          3,
				UserUID:     "uid-1",
				Status:      models.CampaignActive,
				Budget:      100000,
				DailyBudget: &daily,
				StartDate:   &start,
			}, nil).Once()
		// impressions = 3*1000 + 3*100, clicks = 2%, leads = 10% от кликов
		repo.On("UpdateCampaignMetrics", mock.Anything, int64(3),
			int64(3300), int64(66), int64(6), int64(60000)).Return(nil).Once()

		c, err := svc.Get(context.Background(), userWithTier(models.TierBasic), 3)

		require.NoError(t, err)
		assert.Equal(t, int64(3300), c.Impressions)
		assert.Equal(t, int64(66), c.Clicks)
		assert.Equal(t, int64(6), c.Leads)
		assert.Equal(t, int64(60000), c.CostSpent)
		repo.AssertExpectations(t)
	})

	t.Run("launch day already counts as the first day", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		start := time.Now().UTC().Add(-1 * time.Hour)
		daily := int64(20000)
		repo.On("GetCampaign", mock.Anything, int64(1)).
			Return(&models.MarketingCampaign{
				ID:          1,
				UserUID:     "uid-1",
				Status:      models.CampaignActive,
				Budget:      100000,
				DailyBudget: &daily,
				StartDate:   &start,
			}, nil).Once()
		repo.On("UpdateCampaignMetrics", mock.Anything, int64(1),
			int64(1100), int64(22), int64(2), int64(20000)).Return(nil).Once()

		c, err := svc.Get(context.Background(), userWithTier(models.TierBasic), 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1100), c.Impressions)
		assert.Equal(t, int64(20000), c.CostSpent)
		repo.AssertExpectations(t)
	})

	t.Run("cost spent is capped by the total budget", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		start := time.Now().UTC().Add(-10 * 25 * time.Hour)
		daily := int64(20000)
		repo.On("GetCampaign", mock.Anything, int64(3)).
			Return(&models.MarketingCampaign{
				ID:          3,
				UserUID:     "uid-1",
				Status:      models.CampaignActive,
				Budget:      100000,
				DailyBudget: &daily,
				StartDate:   &start,
			}, nil).Once()
		repo.On("UpdateCampaignMetrics", mock.Anything, int64(3),
			mock.Anything, mock.Anything, mock.Anything, int64(100000)).Return(nil).Once()

		c, err := svc.Get(context.Background(), userWithTier(models.TierBasic), 3)

		require.NoError(t, err)
		assert.Equal(t, c.Budget, c.CostSpent)
	})

	t.Run("draft campaign is returned untouched", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetCampaign", mock.Anything, int64(3)).
			Return(&models.MarketingCampaign{ID: 3, UserUID: "uid-1", Status: models.CampaignDraft}, nil).Once()

		c, err := svc.Get(context.Background(), userWithTier(models.TierBasic), 3)

		require.NoError(t, err)
		assert.Zero(t, c.Impressions)
		repo.AssertNotCalled(t, "UpdateCampaignMetrics",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign campaign is hidden", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetCampaign", mock.Anything, int64(3)).
			Return(&models.MarketingCampaign{ID: 3, UserUID: "someone-else"}, nil).Once()

		_, err := svc.Get(context.Background(), userWithTier(models.TierBasic), 3)

		assert.ErrorIs(t, err, models.ErrPermissionDenied)
	})
}

func TestMarketingService_Launch(t *testing.T) {
	t.Run("draft launches with a fabricated platform id and an end date", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		daily := int64(20000)
		repo.On("GetCampaign", mock.Anything, int64(3)).
			Return(&models.MarketingCampaign{
				ID:          3,
				UserUID:     "uid-1",
				Platform:    "facebook",
				Status:      models.CampaignDraft,
				Budget:      100000,
				DailyBudget: &daily,
			}, nil).Once()
		repo.On("LaunchCampaign", mock.Anything, int64(3),
			mock.MatchedBy(func(platformCampaignID string) bool {
				return strings.HasPrefix(platformCampaignID, "facebook_3_")
			}),
			mock.Anything,
			mock.MatchedBy(func(end *time.Time) bool {
				// 100000 / 20000 = 5 дней
				return end != nil && time.Until(*end) > 4*24*time.Hour
			})).Return(&models.MarketingCampaign{ID: 3, Status: models.CampaignActive}, nil).Once()

		c, err := svc.Launch(context.Background(), userWithTier(models.TierBasic), 3)

		require.NoError(t, err)
		assert.Equal(t, models.CampaignActive, c.Status)
		repo.AssertExpectations(t)
	})

	t.Run("no daily budget means no end date", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetCampaign", mock.Anything, int64(3)).
			Return(&models.MarketingCampaign{
				ID:       3,
				UserUID:  "uid-1",
				Platform: "facebook",
				Status:   models.CampaignDraft,
				Budget:   100000,
			}, nil).Once()
		repo.On("LaunchCampaign", mock.Anything, int64(3), mock.Anything, mock.Anything,
			(*time.Time)(nil)).Return(&models.MarketingCampaign{ID: 3, Status: models.CampaignActive}, nil).Once()

		_, err := svc.Launch(context.Background(), userWithTier(models.TierBasic), 3)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("only drafts launch", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetCampaign", mock.Anything, int64(3)).
			Return(&models.MarketingCampaign{ID: 3, UserUID: "uid-1", Status: models.CampaignActive}, nil).Once()

		_, err := svc.Launch(context.Background(), userWithTier(models.TierBasic), 3)

		assert.ErrorIs(t, err, models.ErrInvalidState)
	})
}

func TestMarketingService_Pause(t *testing.T) {
	t.Run("active campaign pauses", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetCampaign", mock.Anything, int64(3)).
			Return(&models.MarketingCampaign{ID: 3, UserUID: "uid-1", Status: models.CampaignActive}, nil).Once()
		repo.On("UpdateCampaignStatus", mock.Anything, int64(3), models.CampaignPaused).
			Return(&models.MarketingCampaign{ID: 3, Status: models.CampaignPaused}, nil).Once()

		c, err := svc.Pause(context.Background(), userWithTier(models.TierBasic), 3)

		require.NoError(t, err)
		assert.Equal(t, models.CampaignPaused, c.Status)
	})

	t.Run("draft cannot pause", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetCampaign", mock.Anything, int64(3)).
			Return(&models.MarketingCampaign{ID: 3, UserUID: "uid-1", Status: models.CampaignDraft}, nil).Once()

		_, err := svc.Pause(context.Background(), userWithTier(models.TierBasic), 3)

		assert.ErrorIs(t, err, models.ErrInvalidState)
	})
}

func TestMarketingService_SocialShare(t *testing.T) {
	t.Run("owner with promotion shares to both networks", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetProperty", mock.Anything, int64(9)).
			Return(&models.Property{ID: 9, OwnerUID: "uid-1"}, nil).Once()

		user := userWithTier(models.TierPremium)
		user.SocialMediaPromotion = true

		posts, err := svc.SocialShare(context.Background(), user, 9)

		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "facebook", posts[0].Platform)
		assert.Contains(t, posts[0].PostID, "fb_post_9_")
		assert.Equal(t, "instagram", posts[1].Platform)
		assert.Contains(t, posts[1].URL, "instagram.com")
	})

	t.Run("promotion disabled in the plan", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetProperty", mock.Anything, int64(9)).
			Return(&models.Property{ID: 9, OwnerUID: "uid-1"}, nil).Once()

		_, err := svc.SocialShare(context.Background(), userWithTier(models.TierBasic), 9)

		assert.ErrorIs(t, err, models.ErrSocialPromotionOff)
	})

	t.Run("admin shares without the promotion flag", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetProperty", mock.Anything, int64(9)).
			Return(&models.Property{ID: 9, OwnerUID: "someone-else"}, nil).Once()

		admin := &models.User{UID: "admin-uid", Role: models.RoleAdmin, IsActive: true}

		posts, err := svc.SocialShare(context.Background(), admin, 9)

		require.NoError(t, err)
		require.Len(t, posts, 2)
	})

	t.Run("agent shares a foreign property", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetProperty", mock.Anything, int64(9)).
			Return(&models.Property{ID: 9, OwnerUID: "someone-else"}, nil).Once()

		agent := &models.User{UID: "agent-uid", Role: models.RoleAgent, IsActive: true, SocialMediaPromotion: true}

		posts, err := svc.SocialShare(context.Background(), agent, 9)

		require.NoError(t, err)
		require.Len(t, posts, 2)
	})

	t.Run("foreign property", func(t *testing.T) {
		repo := new(RepoMock)
		svc := marketing.New(repo, testPlatforms())

		repo.On("GetProperty", mock.Anything, int64(9)).
			Return(&models.Property{ID: 9, OwnerUID: "someone-else"}, nil).Once()

		user := userWithTier(models.TierPremium)
		user.SocialMediaPromotion = true

		_, err := svc.SocialShare(context.Background(), user, 9)

		assert.ErrorIs(t, err, models.ErrPermissionDenied)
	})
}

func TestMarketingService_Platforms(t *testing.T) {
	svc := marketing.New(new(RepoMock), testPlatforms())

	tests := []struct {
		name          string
		user          *models.User
		wantAvailable map[string]bool
	}{
		{
			name:          "basic subscriber",
			user:          userWithTier(models.TierBasic),
			wantAvailable: map[string]bool{"facebook": true, "instagram": true, "google": false},
		},
		{
			name:          "premium subscriber",
			user:          userWithTier(models.TierPremium),
			wantAvailable: map[string]bool{"facebook": true, "instagram": true, "google": true},
		},
		{
			name: "free user",
			user: &models.User{
				UID:              "uid-2",
				Role:             models.RoleUser,
				SubscriptionType: models.TierFree,
			},
			wantAvailable: map[string]bool{"facebook": false, "instagram": false, "google": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := svc.Platforms(tt.user)
			require.Len(t, access, 3)
			for _, p := range access {
				assert.Equal(t, tt.wantAvailable[p.Key], p.Available, p.Key)
			}
		})
	}
}

func TestMarketingService_UserAnalytics(t *testing.T) {
	repo := new(RepoMock)
	svc := marketing.New(repo, testPlatforms())

	campaigns := []*models.MarketingCampaign{
		{ID: 1, UserUID: "uid-1", Status: models.CampaignPaused, Impressions: 1000, Clicks: 20, Leads: 2, CostSpent: 50000},
		{ID: 2, UserUID: "uid-1", Status: models.CampaignCompleted, Impressions: 3000, Clicks: 60, Leads: 6, CostSpent: 150000},
	}
	repo.On("ListCampaigns", mock.Anything, mock.MatchedBy(func(f models.CampaignFilter) bool {
		return f.UserUID == "uid-1" && f.Limit == 1000
	})).Return(campaigns, 2, nil).Once()

	a, err := svc.UserAnalytics(context.Background(), userWithTier(models.TierBasic))

	require.NoError(t, err)
	assert.Equal(t, 2, a.TotalCampaigns)
	assert.Equal(t, 0, a.ActiveCampaigns)
	assert.Equal(t, int64(4000), a.TotalImpressions)
	assert.Equal(t, int64(80), a.TotalClicks)
	assert.Equal(t, int64(8), a.TotalLeads)
	assert.InDelta(t, 2000.0, a.TotalSpent, 0.001)
	assert.InDelta(t, 2.0, a.AverageCTR, 0.001)
	assert.InDelta(t, 250.0, a.AverageCPL, 0.001)
	repo.AssertExpectations(t)
}

func TestMarketingService_AdminCampaigns(t *testing.T) {
	repo := new(RepoMock)
	svc := marketing.New(repo, testPlatforms())

	repo.On("ListCampaigns", mock.Anything, mock.MatchedBy(func(f models.CampaignFilter) bool {
		// админ видит кампании всех пользователей
		return f.UserUID == "" && f.Limit == 20
	})).Return([]*models.MarketingCampaign{{ID: 1}}, 1, nil).Once()

	campaigns, total, err := svc.AdminCampaigns(context.Background(), models.CampaignFilter{UserUID: "sneaky"})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, campaigns, 1)
	repo.AssertExpectations(t)
}
