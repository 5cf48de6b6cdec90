package launch

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Launch(ctx context.Context, user *models.User, id int64) (*models.MarketingCampaign, error) {
	args := m.Called(ctx, user, id)
	c, _ := args.Get(0).(*models.MarketingCampaign)
	return c, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(id string, user *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/marketing/campaigns/"+id+"/launch", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	if user != nil {
		ctx = context.WithValue(ctx, middlewarectx.UserKey, user)
	}
	return req.WithContext(ctx)
}

func TestLaunchHandler_ServeHTTP(t *testing.T) {
	owner := &models.User{UID: "uid-1", Role: models.RoleUser, IsActive: true}
	platformID := "facebook_3_1700000000"

	tests := []struct {
		name           string
		campaignID     string
		user           *models.User
		mockCampaign   *models.MarketingCampaign
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantCode       string
	}{
		{
			name:       "draft launches",
			campaignID: "3",
			user:       owner,
			mockCampaign: &models.MarketingCampaign{
				ID:                 3,
				UserUID:            "uid-1",
				Status:             models.CampaignActive,
				PlatformCampaignID: &platformID,
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "non-numeric id",
			campaignID:     "abc",
			user:           owner,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantCode:       "validation_error",
		},
		{
			name:           "missing user in context",
			campaignID:     "3",
			user:           nil,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantCode:       "unauthenticated",
		},
		{
			name:           "already active",
			campaignID:     "3",
			user:           owner,
			mockErr:        models.ErrInvalidState,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantCode:       "invalid_state",
		},
		{
			name:           "unknown campaign",
			campaignID:     "404",
			user:           owner,
			mockErr:        models.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
			wantStatus:     "Error",
			wantCode:       "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.mockCampaign != nil || tt.mockErr != nil {
				serviceMock.On("Launch", mock.Anything, tt.user, mock.Anything).
					Return(tt.mockCampaign, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest(tt.campaignID, tt.user))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, got["code"])
			}
			if tt.wantStatus == "OK" {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				campaign, ok := data["campaign"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, models.CampaignActive, campaign["status"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
