package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

func TestStorage_RegisterUserWithSession(t *testing.T) {
	expiresAt := time.Now().Add(30 * 24 * time.Hour)

	tests := []struct {
		name    string
		user    models.User
		session models.Session
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name: "successful registration with session",
			user: models.User{
				Username:     "newuser",
				Email:        "new@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			session: models.Session{Token: "session-token-1", ExpiresAt: expiresAt},
			setup:   func(_ *testing.T, _ *TestDataFactory) {},
		},
		{
			name: "duplicate email",
			user: models.User{
				Username:     "anotheruser",
				Email:        "taken@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			session: models.Session{Token: "session-token-2", ExpiresAt: expiresAt},
			wantErr: models.ErrEmailTaken,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "existinguser", "taken@example.com", "hashedpassword", "user")
			},
		},
		{
			name: "duplicate username",
			user: models.User{
				Username:     "existinguser",
				Email:        "fresh@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			session: models.Session{Token: "session-token-3", ExpiresAt: expiresAt},
			wantErr: models.ErrUsernameTaken,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "existinguser", "other@example.com", "hashedpassword", "user")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			uid, err := storage.RegisterUserWithSession(context.Background(), tt.user, tt.session)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, uid)

			got, err := storage.GetUserByEmail(context.Background(), tt.user.Email)
			require.NoError(t, err)
			assert.Equal(t, uid, got.UID)
			assert.Equal(t, tt.user.Username, got.Username)
			assert.Equal(t, models.TierFree, got.SubscriptionType)
			assert.True(t, got.IsActive)

			sess, err := storage.GetActiveSessionByToken(context.Background(), tt.session.Token)
			require.NoError(t, err)
			assert.Equal(t, uid, sess.UserUID)
			assert.True(t, sess.IsActive)
		})
	}
}

func TestStorage_GetActiveSessionByToken(t *testing.T) {
	expiresAt := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name    string
		token   string
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:  "active session found",
			token: "active-token",
			setup: func(t *testing.T, factory *TestDataFactory) {
				uid := factory.CreateUser(t, "testuser", "test@example.com", "hashedpassword", "user")
				factory.CreateSession(t, uid, "active-token", expiresAt, true)
			},
		},
		{
			name:    "deactivated session is hidden",
			token:   "revoked-token",
			wantErr: models.ErrNotFound,
			setup: func(t *testing.T, factory *TestDataFactory) {
				uid := factory.CreateUser(t, "testuser", "test@example.com", "hashedpassword", "user")
				factory.CreateSession(t, uid, "revoked-token", expiresAt, false)
			},
		},
		{
			name:    "unknown token",
			token:   "missing-token",
			wantErr: models.ErrNotFound,
			setup:   func(_ *testing.T, _ *TestDataFactory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			sess, err := storage.GetActiveSessionByToken(context.Background(), tt.token)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sess)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.token, sess.Token)
			}
		})
	}
}

func TestStorage_ResetPassword(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "testuser", "test@example.com", "oldhash", "user")
	factory.CreateSession(t, uid, "token-one", time.Now().Add(24*time.Hour), true)
	factory.CreateSession(t, uid, "token-two", time.Now().Add(24*time.Hour), true)
	require.NoError(t, storage.SetResetToken(context.Background(), uid, "reset-token", time.Now().Add(24*time.Hour)))

	err := storage.ResetPassword(context.Background(), uid, "newhash")
	require.NoError(t, err)

	verification := NewTestVerification(storage)
	verification.VerifyUserPasswordHash(t, uid, "newhash")
	verification.VerifySessionActive(t, "token-one", false)
	verification.VerifySessionActive(t, "token-two", false)

	// Токен сброса очищен
	_, err = storage.GetUserByResetToken(context.Background(), "reset-token")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestStorage_StartFreeTrial(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "testuser", "test@example.com", "hashedpassword", "user")

	start := time.Now()
	end := start.Add(7 * 24 * time.Hour)

	got, err := storage.StartFreeTrial(context.Background(), uid, start, end)
	require.NoError(t, err)
	assert.Equal(t, models.TierTrial, got.SubscriptionType)
	assert.True(t, got.FreeTrialUsed)

	// Повторный запуск пробного периода запрещен
	_, err = storage.StartFreeTrial(context.Background(), uid, start, end)
	require.ErrorIs(t, err, models.ErrTrialAlreadyUsed)
}

func TestStorage_ListProperties(t *testing.T) {
	minPrice := int64(100000000)

	tests := []struct {
		name      string
		filter    models.PropertyFilter
		wantCount int
		wantTotal int
		setup     func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:      "filter by location",
			filter:    models.PropertyFilter{Location: "marina", Limit: 10},
			wantCount: 2,
			wantTotal: 2,
			setup: func(t *testing.T, factory *TestDataFactory) {
				uid := factory.CreateUser(t, "owner", "owner@example.com", "hashedpassword", "user")
				factory.CreateProperty(t, uid, "Marina flat", "Dubai Marina", 95000000)
				factory.CreateProperty(t, uid, "Marina studio", "Dubai Marina", 65000000)
				factory.CreateProperty(t, uid, "Downtown loft", "Downtown Dubai", 150000000)
			},
		},
		{
			name:      "filter by min price",
			filter:    models.PropertyFilter{MinPrice: &minPrice, Limit: 10},
			wantCount: 1,
			wantTotal: 1,
			setup: func(t *testing.T, factory *TestDataFactory) {
				uid := factory.CreateUser(t, "owner", "owner@example.com", "hashedpassword", "user")
				factory.CreateProperty(t, uid, "Cheap flat", "Dubai Marina", 65000000)
				factory.CreateProperty(t, uid, "Penthouse", "Palm Jumeirah", 250000000)
			},
		},
		{
			name:      "pagination caps the page size",
			filter:    models.PropertyFilter{Limit: 2},
			wantCount: 2,
			wantTotal: 3,
			setup: func(t *testing.T, factory *TestDataFactory) {
				uid := factory.CreateUser(t, "owner", "owner@example.com", "hashedpassword", "user")
				factory.CreateProperty(t, uid, "First", "Dubai Marina", 65000000)
				factory.CreateProperty(t, uid, "Second", "Dubai Marina", 75000000)
				factory.CreateProperty(t, uid, "Third", "Dubai Marina", 85000000)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, total, err := storage.ListProperties(context.Background(), tt.filter)

			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestStorage_Favorites(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner", "owner@example.com", "hashedpassword", "user")
	userUID := factory.CreateUser(t, "buyer", "buyer@example.com", "hashedpassword", "user")
	propertyID := factory.CreateProperty(t, ownerUID, "Marina flat", "Dubai Marina", 95000000)

	id, err := storage.AddFavorite(context.Background(), userUID, propertyID)
	require.NoError(t, err)
	assert.Positive(t, id)

	// Повторное добавление той же пары
	_, err = storage.AddFavorite(context.Background(), userUID, propertyID)
	require.ErrorIs(t, err, models.ErrDuplicateFavorite)

	got, err := storage.ListFavoritesByUser(context.Background(), userUID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, propertyID, got[0].ID)

	count, err := storage.RemoveFavorite(context.Background(), userUID, propertyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = storage.RemoveFavorite(context.Background(), userUID, propertyID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestStorage_CampaignStats(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "marketer", "marketer@example.com", "hashedpassword", "user")

	activeID := factory.CreateCampaign(t, uid, "Summer push", "facebook", models.CampaignActive, 100000)
	factory.CreateCampaign(t, uid, "Brand draft", "instagram", models.CampaignDraft, 50000)

	require.NoError(t, storage.UpdateCampaignMetrics(context.Background(), activeID, 2000, 40, 4, 40000))

	stats, err := storage.CampaignStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCampaigns)
	assert.Equal(t, 1, stats.ActiveCampaigns)
	assert.Equal(t, int64(2000), stats.TotalImpressions)
	assert.Equal(t, int64(40), stats.TotalClicks)
	assert.Equal(t, int64(4), stats.TotalLeads)
	assert.InDelta(t, 400.0, stats.TotalSpent, 0.001)
	assert.Equal(t, map[string]int{"facebook": 1, "instagram": 1}, stats.ByPlatform)
}
