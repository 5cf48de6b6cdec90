package campaignmetrics

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
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Get(ctx context.Context, user *models.User, id int64) (*models.MarketingCampaign, error) {
	args := m.Called(ctx, user, id)
	c, _ := args.Get(0).(*models.MarketingCampaign)
	return c, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(id string, user *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/marketing/campaigns/"+id+"/metrics", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	if user != nil {
		ctx = context.WithValue(ctx, middlewarectx.UserKey, user)
	}
	return req.WithContext(ctx)
}

func TestCampaignMetricsHandler_ServeHTTP(t *testing.T) {
	owner := &models.User{UID: "uid-1", Role: models.RoleUser, IsActive: true}

	t.Run("metrics include the budget remaining", func(t *testing.T) {
		serviceMock := new(ServiceMock)
		handler := New(newNoopLogger(), serviceMock)

		serviceMock.On("Get", mock.Anything, owner, int64(3)).
			Return(&models.MarketingCampaign{
				ID:          3,
				UserUID:     "uid-1",
				Status:      models.CampaignActive,
				Budget:      100000,
				Impressions: 3300,
				Clicks:      66,
				Leads:       6,
				CostSpent:   60000,
			}, nil).Once()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("3", owner))

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "OK", got["status"])

		data, ok := got["data"].(map[string]any)
		require.True(t, ok)
		metrics, ok := data["metrics"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(3300), metrics["impressions"])
		assert.Equal(t, 600.0, metrics["cost_spent"])
		assert.Equal(t, 400.0, metrics["budget_remaining"])
		assert.Equal(t, 2.0, metrics["ctr"])
		assert.Equal(t, 100.0, metrics["cpl"])
		serviceMock.AssertExpectations(t)
	})

	t.Run("foreign campaign is rejected", func(t *testing.T) {
		serviceMock := new(ServiceMock)
		handler := New(newNoopLogger(), serviceMock)

		serviceMock.On("Get", mock.Anything, owner, int64(3)).
			Return(nil, models.ErrPermissionDenied).Once()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("3", owner))

		assert.Equal(t, http.StatusForbidden, rec.Code)

		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "Error", got["status"])
		assert.Equal(t, "permission_denied", got["code"])
	})

	t.Run("missing user in context", func(t *testing.T) {
		serviceMock := new(ServiceMock)
		handler := New(newNoopLogger(), serviceMock)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("3", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
