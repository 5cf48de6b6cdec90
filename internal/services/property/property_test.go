package property_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/realty-platform/internal/models"
	"github.com/magabrotheeeer/realty-platform/internal/services/property"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateProperty(ctx context.Context, p models.Property) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *RepoMock) ListProperties(ctx context.Context, f models.PropertyFilter) ([]*models.Property, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Property), args.Int(1), args.Error(2)
}

func (m *RepoMock) UpdateProperty(ctx context.Context, id int64, p models.Property) (*models.Property, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *RepoMock) DeleteProperty(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) IncrementPropertyViews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RepoMock) CreateInquiry(ctx context.Context, inq models.PropertyInquiry) (int64, error) {
	args := m.Called(ctx, inq)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListInquiriesByProperty(ctx context.Context, propertyID int64) ([]*models.PropertyInquiry, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PropertyInquiry), args.Error(1)
}

func (m *RepoMock) AddFavorite(ctx context.Context, userUID string, propertyID int64) (int64, error) {
	args := m.Called(ctx, userUID, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) RemoveFavorite(ctx context.Context, userUID string, propertyID int64) (int64, error) {
	args := m.Called(ctx, userUID, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListFavoritesByUser(ctx context.Context, userUID string) ([]*models.Property, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Property), args.Error(1)
}

func subscribedUser() *models.User {
	end := time.Now().UTC().Add(720 * time.Hour)
	return &models.User{
		UID:              "owner-uid",
		Role:             models.RoleUser,
		IsActive:         true,
		SubscriptionType: models.TierBasic,
		SubscriptionEnd:  &end,
		FreeTrialUsed:    true,
	}
}

func freeUser() *models.User {
	return &models.User{
		UID:              "free-uid",
		Role:             models.RoleUser,
		IsActive:         true,
		SubscriptionType: models.TierFree,
		FreeTrialUsed:    true,
	}
}

func TestPropertyService_Create(t *testing.T) {
	dto := models.DummyProperty{
		Title:        "Marina View Apartment",
		Location:     "Dubai Marina",
		Price:        1500000,
		PropertyType: "Apartment",
	}

	t.Run("subscribed user creates a listing with defaults", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("CreateProperty", mock.Anything, mock.MatchedBy(func(p models.Property) bool {
			return p.OwnerUID == "owner-uid" &&
				p.Status == "For Sale" &&
				p.Currency == "AED"
		})).Return(int64(11), nil).Once()
		repo.On("GetProperty", mock.Anything, int64(11)).
			Return(&models.Property{ID: 11, Title: dto.Title, OwnerUID: "owner-uid"}, nil).Once()

		created, err := svc.Create(context.Background(), subscribedUser(), dto)

		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("free user without a trial cannot list", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		_, err := svc.Create(context.Background(), freeUser(), dto)

		assert.ErrorIs(t, err, models.ErrCannotListProperty)
		repo.AssertNotCalled(t, "CreateProperty", mock.Anything, mock.Anything)
	})

	t.Run("agent lists without a subscription", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		agent := freeUser()
		agent.Role = models.RoleAgent

		repo.On("CreateProperty", mock.Anything, mock.Anything).Return(int64(12), nil).Once()
		repo.On("GetProperty", mock.Anything, int64(12)).
			Return(&models.Property{ID: 12}, nil).Once()

		_, err := svc.Create(context.Background(), agent, dto)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestPropertyService_Get(t *testing.T) {
	repo := new(RepoMock)
	svc := property.New(repo)

	repo.On("GetProperty", mock.Anything, int64(5)).
		Return(&models.Property{ID: 5, Views: 9}, nil).Once()
	repo.On("IncrementPropertyViews", mock.Anything, int64(5)).Return(nil).Once()

	p, err := svc.Get(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Views)
	repo.AssertExpectations(t)
}

func TestPropertyService_List(t *testing.T) {
	repo := new(RepoMock)
	svc := property.New(repo)

	repo.On("ListProperties", mock.Anything, mock.MatchedBy(func(f models.PropertyFilter) bool {
		// лимит по умолчанию
		return f.Limit == 20 && f.Offset == 0
	})).Return([]*models.Property{{ID: 1}}, 1, nil).Once()

	properties, total, err := svc.List(context.Background(), models.PropertyFilter{Limit: 500, Offset: -3})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, properties, 1)
	repo.AssertExpectations(t)
}

func TestPropertyService_Update(t *testing.T) {
	dto := models.DummyProperty{Title: "Updated", Price: 2000000}

	t.Run("owner updates and keeps the old status when omitted", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("GetProperty", mock.Anything, int64(7)).
			Return(&models.Property{ID: 7, OwnerUID: "owner-uid", Status: "For Rent"}, nil).Once()
		repo.On("UpdateProperty", mock.Anything, int64(7), mock.MatchedBy(func(p models.Property) bool {
			return p.Status == "For Rent" && p.Title == "Updated"
		})).Return(&models.Property{ID: 7, Title: "Updated", Status: "For Rent"}, nil).Once()

		updated, err := svc.Update(context.Background(), subscribedUser(), 7, dto)

		require.NoError(t, err)
		assert.Equal(t, "Updated", updated.Title)
		repo.AssertExpectations(t)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("GetProperty", mock.Anything, int64(7)).
			Return(&models.Property{ID: 7, OwnerUID: "someone-else"}, nil).Once()

		_, err := svc.Update(context.Background(), subscribedUser(), 7, dto)

		assert.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("admin updates any listing", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		admin := subscribedUser()
		admin.Role = models.RoleAdmin

		repo.On("GetProperty", mock.Anything, int64(7)).
			Return(&models.Property{ID: 7, OwnerUID: "someone-else", Status: "For Sale"}, nil).Once()
		repo.On("UpdateProperty", mock.Anything, int64(7), mock.Anything).
			Return(&models.Property{ID: 7}, nil).Once()

		_, err := svc.Update(context.Background(), admin, 7, dto)

		require.NoError(t, err)
	})
}

func TestPropertyService_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("GetProperty", mock.Anything, int64(3)).
			Return(&models.Property{ID: 3, OwnerUID: "owner-uid"}, nil).Once()
		repo.On("DeleteProperty", mock.Anything, int64(3)).Return(int64(1), nil).Once()

		err := svc.Delete(context.Background(), subscribedUser(), 3)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing listing", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("GetProperty", mock.Anything, int64(404)).Return(nil, models.ErrNotFound).Once()

		err := svc.Delete(context.Background(), subscribedUser(), 404)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestPropertyService_CreateInquiry(t *testing.T) {
	dto := models.DummyInquiry{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Is this still available?",
	}

	t.Run("anonymous inquiry gets the default type", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("GetProperty", mock.Anything, int64(9)).
			Return(&models.Property{ID: 9}, nil).Once()
		repo.On("CreateInquiry", mock.Anything, mock.MatchedBy(func(inq models.PropertyInquiry) bool {
			return inq.PropertyID == 9 && inq.InquiryType == "General" && inq.UserUID == nil
		})).Return(int64(21), nil).Once()

		id, err := svc.CreateInquiry(context.Background(), nil, 9, dto)

		require.NoError(t, err)
		assert.Equal(t, int64(21), id)
		repo.AssertExpectations(t)
	})

	t.Run("authenticated inquiry keeps the user uid", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("GetProperty", mock.Anything, int64(9)).
			Return(&models.Property{ID: 9}, nil).Once()
		repo.On("CreateInquiry", mock.Anything, mock.MatchedBy(func(inq models.PropertyInquiry) bool {
			return inq.UserUID != nil && *inq.UserUID == "owner-uid"
		})).Return(int64(22), nil).Once()

		_, err := svc.CreateInquiry(context.Background(), subscribedUser(), 9, dto)

		require.NoError(t, err)
	})

	t.Run("inquiry against a missing listing", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("GetProperty", mock.Anything, int64(404)).Return(nil, models.ErrNotFound).Once()

		_, err := svc.CreateInquiry(context.Background(), nil, 404, dto)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestPropertyService_ListInquiries(t *testing.T) {
	agentUID := "agent-uid"

	tests := []struct {
		name    string
		user    *models.User
		wantErr error
	}{
		{name: "owner reads inquiries", user: subscribedUser()},
		{
			name: "assigned agent reads inquiries",
			user: &models.User{UID: agentUID, Role: models.RoleAgent, IsActive: true},
		},
		{
			name: "admin reads inquiries",
			user: &models.User{UID: "admin-uid", Role: models.RoleAdmin, IsActive: true},
		},
		{
			name:    "stranger is rejected",
			user:    &models.User{UID: "stranger", Role: models.RoleUser, IsActive: true},
			wantErr: models.ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := property.New(repo)

			repo.On("GetProperty", mock.Anything, int64(9)).
				Return(&models.Property{ID: 9, OwnerUID: "owner-uid", AgentUID: &agentUID}, nil).Once()
			if tt.wantErr == nil {
				repo.On("ListInquiriesByProperty", mock.Anything, int64(9)).
					Return([]*models.PropertyInquiry{{ID: 1, PropertyID: 9}}, nil).Once()
			}

			inquiries, err := svc.ListInquiries(context.Background(), tt.user, 9)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Len(t, inquiries, 1)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPropertyService_Favorites(t *testing.T) {
	t.Run("add favorite checks the listing exists", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("GetProperty", mock.Anything, int64(5)).
			Return(&models.Property{ID: 5}, nil).Once()
		repo.On("AddFavorite", mock.Anything, "uid-1", int64(5)).Return(int64(1), nil).Once()

		err := svc.AddFavorite(context.Background(), "uid-1", 5)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate favorite bubbles up", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("GetProperty", mock.Anything, int64(5)).
			Return(&models.Property{ID: 5}, nil).Once()
		repo.On("AddFavorite", mock.Anything, "uid-1", int64(5)).
			Return(int64(0), models.ErrDuplicateFavorite).Once()

		err := svc.AddFavorite(context.Background(), "uid-1", 5)

		assert.ErrorIs(t, err, models.ErrDuplicateFavorite)
	})

	t.Run("removing a missing favorite is not found", func(t *testing.T) {
		repo := new(RepoMock)
		svc := property.New(repo)

		repo.On("RemoveFavorite", mock.Anything, "uid-1", int64(5)).Return(int64(0), nil).Once()

		err := svc.RemoveFavorite(context.Background(), "uid-1", 5)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
