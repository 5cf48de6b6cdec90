package register

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, username, email, rawPassword, fullName, phone, ip, userAgent string) (*models.User, string, error) {
	args := m.Called(ctx, username, email, rawPassword, fullName, phone, ip, userAgent)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockUser       *models.User
		mockToken      string
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantCode       string
	}{
		{
			name: "valid registration",
			requestBody: Request{
				Username: "newuser",
				Email:    "new@example.com",
				Password: "Password123",
			},
			mockUser:       &models.User{UID: "uid-1", Username: "newuser", Email: "new@example.com", IsActive: true},
			mockToken:      "session-token",
			wantStatusCode: http.StatusCreated,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantCode:       "validation_error",
		},
		{
			name: "missing email",
			requestBody: Request{
				Username: "newuser",
				Password: "Password123",
			},
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantCode:       "validation_error",
		},
		{
			name: "duplicate email",
			requestBody: Request{
				Username: "newuser",
				Email:    "new@example.com",
				Password: "Password123",
			},
			mockErr:        models.ErrEmailTaken,
			wantStatusCode: http.StatusConflict,
			wantStatus:     "Error",
			wantCode:       "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.mockUser != nil || tt.mockErr != nil {
				serviceMock.On("Register", mock.Anything,
					mock.Anything, mock.Anything, mock.Anything, mock.Anything,
					mock.Anything, mock.Anything, mock.Anything).
					Return(tt.mockUser, tt.mockToken, tt.mockErr).Once()
			}

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

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
				assert.Equal(t, "session-token", data["session_token"])
				user, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "uid-1", user["uid"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
