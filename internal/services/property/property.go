// Package property содержит бизнес-логику каталога недвижимости:
// публикацию и управление объектами, заявки и закладки.
package property

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/realty-platform/internal/lib/authz"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Repository описывает контракт хранилища объектов недвижимости.
type Repository interface {
	CreateProperty(ctx context.Context, p models.Property) (int64, error)
	GetProperty(ctx context.Context, id int64) (*models.Property, error)
	ListProperties(ctx context.Context, f models.PropertyFilter) ([]*models.Property, int, error)
	UpdateProperty(ctx context.Context, id int64, p models.Property) (*models.Property, error)
	DeleteProperty(ctx context.Context, id int64) (int64, error)
	IncrementPropertyViews(ctx context.Context, id int64) error

	CreateInquiry(ctx context.Context, inq models.PropertyInquiry) (int64, error)
	ListInquiriesByProperty(ctx context.Context, propertyID int64) ([]*models.PropertyInquiry, error)

	AddFavorite(ctx context.Context, userUID string, propertyID int64) (int64, error)
	RemoveFavorite(ctx context.Context, userUID string, propertyID int64) (int64, error)
	ListFavoritesByUser(ctx context.Context, userUID string) ([]*models.Property, error)
}

// PropertyService управляет каталогом объектов недвижимости.
type PropertyService struct {
	repo Repository
}

// New создает новый экземпляр PropertyService.
func New(repo Repository) *PropertyService {
	return &PropertyService{repo: repo}
}

// Create публикует объект от имени пользователя. Публикация доступна
// агентам, админам и пользователям с действующей подпиской или
// неиспользованным пробным периодом.
func (s *PropertyService) Create(ctx context.Context, user *models.User, dto models.DummyProperty) (*models.Property, error) {
	const op = "property.Create"

	if !user.CanListProperties() {
		return nil, models.ErrCannotListProperty
	}

	status := dto.Status
	if status == "" {
		status = "For Sale"
	}
	p := models.Property{
		Title:         dto.Title,
		Description:   dto.Description,
		Location:      dto.Location,
		Address:       dto.Address,
		Latitude:      dto.Latitude,
		Longitude:     dto.Longitude,
		Price:         dto.Price,
		Currency:      "AED",
		Bedrooms:      dto.Bedrooms,
		Bathrooms:     dto.Bathrooms,
		Area:          dto.Area,
		PropertyType:  dto.PropertyType,
		Status:        status,
		Features:      dto.Features,
		MainImage:     dto.MainImage,
		GalleryImages: dto.GalleryImages,
		OwnerUID:      user.UID,
		AgentUID:      dto.AgentUID,
	}
	id, err := s.repo.CreateProperty(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.repo.GetProperty(ctx, id)
}

// Get возвращает объект и засчитывает просмотр.
func (s *PropertyService) Get(ctx context.Context, id int64) (*models.Property, error) {
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementPropertyViews(ctx, id); err != nil {
		return nil, err
	}
	p.Views++
	return p, nil
}

// List возвращает страницу активных объектов по фильтру и общее
// количество совпадений.
func (s *PropertyService) List(ctx context.Context, f models.PropertyFilter) ([]*models.Property, int, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.ListProperties(ctx, f)
}

// Update изменяет объект. Разрешено владельцу и админу.
func (s *PropertyService) Update(ctx context.Context, user *models.User, id int64, dto models.DummyProperty) (*models.Property, error) {
	existing, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManage(user.Role, user.UID, existing.OwnerUID) {
		return nil, models.ErrPermissionDenied
	}

	status := dto.Status
	if status == "" {
		status = existing.Status
	}
	updated := models.Property{
		Title:         dto.Title,
		Description:   dto.Description,
		Location:      dto.Location,
		Address:       dto.Address,
		Latitude:      dto.Latitude,
		Longitude:     dto.Longitude,
		Price:         dto.Price,
		Bedrooms:      dto.Bedrooms,
		Bathrooms:     dto.Bathrooms,
		Area:          dto.Area,
		PropertyType:  dto.PropertyType,
		Status:        status,
		Features:      dto.Features,
		MainImage:     dto.MainImage,
		GalleryImages: dto.GalleryImages,
		AgentUID:      dto.AgentUID,
	}
	return s.repo.UpdateProperty(ctx, id, updated)
}

// Delete удаляет объект. Разрешено владельцу и админу.
func (s *PropertyService) Delete(ctx context.Context, user *models.User, id int64) error {
	existing, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanManage(user.Role, user.UID, existing.OwnerUID) {
		return models.ErrPermissionDenied
	}
	_, err = s.repo.DeleteProperty(ctx, id)
	return err
}

// CreateInquiry регистрирует заявку по объекту. Заявки принимаются
// и от анонимных посетителей: user может быть nil.
func (s *PropertyService) CreateInquiry(ctx context.Context, user *models.User, propertyID int64, dto models.DummyInquiry) (int64, error) {
	if _, err := s.repo.GetProperty(ctx, propertyID); err != nil {
		return 0, err
	}

	inquiryType := dto.InquiryType
	if inquiryType == "" {
		inquiryType = "General"
	}
	inq := models.PropertyInquiry{
		PropertyID:  propertyID,
		Name:        dto.Name,
		Email:       dto.Email,
		Phone:       dto.Phone,
		Message:     dto.Message,
		InquiryType: inquiryType,
	}
	if user != nil {
		inq.UserUID = &user.UID
	}
	return s.repo.CreateInquiry(ctx, inq)
}

// ListInquiries возвращает заявки по объекту. Доступно владельцу,
// назначенному агенту и админу.
func (s *PropertyService) ListInquiries(ctx context.Context, user *models.User, propertyID int64) ([]*models.PropertyInquiry, error) {
	p, err := s.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	allowed := authz.CanManage(user.Role, user.UID, p.OwnerUID) ||
		(p.AgentUID != nil && *p.AgentUID == user.UID)
	if !allowed {
		return nil, models.ErrPermissionDenied
	}
	return s.repo.ListInquiriesByProperty(ctx, propertyID)
}

// AddFavorite добавляет объект в закладки пользователя.
func (s *PropertyService) AddFavorite(ctx context.Context, userUID string, propertyID int64) error {
	if _, err := s.repo.GetProperty(ctx, propertyID); err != nil {
		return err
	}
	_, err := s.repo.AddFavorite(ctx, userUID, propertyID)
	return err
}

// RemoveFavorite убирает объект из закладок.
func (s *PropertyService) RemoveFavorite(ctx context.Context, userUID string, propertyID int64) error {
	count, err := s.repo.RemoveFavorite(ctx, userUID, propertyID)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListFavorites возвращает закладки пользователя.
func (s *PropertyService) ListFavorites(ctx context.Context, userUID string) ([]*models.Property, error) {
	return s.repo.ListFavoritesByUser(ctx, userUID)
}
