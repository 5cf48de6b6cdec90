package models

import "time"

// Property — объект недвижимости. Цена хранится в целых дирхамах,
// как пришло из исходного каталога; это единственное денежное поле
// без филсового представления.
type Property struct {
	ID          int64
	Title       string
	Description string
	Location    string
	Address     string
	Latitude    *float64
	Longitude   *float64

	Price        int64 // Цена в дирхамах
	Currency     string
	Bedrooms     int
	Bathrooms    int
	Area         int    // Площадь в кв. футах
	PropertyType string // Villa, Penthouse, Apartment и т.п.
	Status       string // For Sale, For Rent, Sold и т.п.

	Features      []string // Структурированный список удобств
	MainImage     string
	GalleryImages []string

	Featured bool
	Active   bool
	Views    int64

	OwnerUID string
	AgentUID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DummyProperty принимает данные объекта из JSON-запроса до валидации.
type DummyProperty struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Description   string   `json:"description,omitempty"`
	Location      string   `json:"location" validate:"required,max=200"`
	Address       string   `json:"address,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Price         int64    `json:"price" validate:"required,gt=0"`
	Bedrooms      int      `json:"bedrooms" validate:"min=0"`
	Bathrooms     int      `json:"bathrooms" validate:"min=0"`
	Area          int      `json:"area" validate:"required,gt=0"`
	PropertyType  string   `json:"property_type" validate:"required,max=50"`
	Status        string   `json:"status,omitempty" validate:"omitempty,oneof='For Sale' 'For Rent' 'Sold' 'Rented'"`
	Features      []string `json:"features,omitempty"`
	MainImage     string   `json:"main_image,omitempty"`
	GalleryImages []string `json:"gallery_images,omitempty"`
	AgentUID      *string  `json:"agent_uid,omitempty" validate:"omitempty,uuid"`
}

// PropertyView — представление объекта недвижимости для JSON-ответов.
type PropertyView struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Location      string    `json:"location"`
	Address       string    `json:"address,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Price         int64     `json:"price"`
	Currency      string    `json:"currency"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	Area          int       `json:"area"`
	PropertyType  string    `json:"property_type"`
	Status        string    `json:"status"`
	Features      []string  `json:"features"`
	MainImage     string    `json:"main_image,omitempty"`
	GalleryImages []string  `json:"gallery_images"`
	Featured      bool      `json:"featured"`
	Active        bool      `json:"active"`
	Views         int64     `json:"views"`
	OwnerUID      string    `json:"owner_uid"`
	AgentUID      *string   `json:"agent_uid,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// View возвращает представление объекта для ответа API.
func (p *Property) View() PropertyView {
	return PropertyView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Location:      p.Location,
		Address:       p.Address,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Price:         p.Price,
		Currency:      p.Currency,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Area:          p.Area,
		PropertyType:  p.PropertyType,
		Status:        p.Status,
		Features:      p.Features,
		MainImage:     p.MainImage,
		GalleryImages: p.GalleryImages,
		Featured:      p.Featured,
		Active:        p.Active,
		Views:         p.Views,
		OwnerUID:      p.OwnerUID,
		AgentUID:      p.AgentUID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// PropertyFilter — параметры выборки публичного списка объектов.
type PropertyFilter struct {
	Location     string
	PropertyType string
	Status       string
	MinPrice     *int64
	MaxPrice     *int64
	Bedrooms     *int
	Featured     *bool
	Limit        int
	Offset       int
}

// PropertyInquiry — заявка по объекту. Может быть от незарегистрированного
// посетителя, поэтому контактные данные хранятся в самой записи.
type PropertyInquiry struct {
	ID          int64
	PropertyID  int64
	UserUID     *string // nil для анонимных заявок
	Name        string
	Email       string
	Phone       string
	Message     string
	InquiryType string // General, Viewing, Purchase и т.п.
	Status      string // New, Contacted, Closed
	CreatedAt   time.Time
}

// DummyInquiry принимает заявку из JSON-запроса до валидации.
type DummyInquiry struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Message     string `json:"message,omitempty"`
	InquiryType string `json:"inquiry_type,omitempty" validate:"omitempty,oneof=General Viewing Purchase"`
}

// InquiryView — представление заявки для JSON-ответов.
type InquiryView struct {
	ID          int64     `json:"id"`
	PropertyID  int64     `json:"property_id"`
	UserUID     *string   `json:"user_uid,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Message     string    `json:"message,omitempty"`
	InquiryType string    `json:"inquiry_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// View возвращает представление заявки для ответа API.
func (i *PropertyInquiry) View() InquiryView {
	return InquiryView{
		ID:          i.ID,
		PropertyID:  i.PropertyID,
		UserUID:     i.UserUID,
		Name:        i.Name,
		Email:       i.Email,
		Phone:       i.Phone,
		Message:     i.Message,
		InquiryType: i.InquiryType,
		Status:      i.Status,
		CreatedAt:   i.CreatedAt,
	}
}

// PropertyFavorite — закладка пользователя на объект.
// Пара (user_uid, property_id) уникальна.
type PropertyFavorite struct {
	ID         int64
	UserUID    string
	PropertyID int64
	CreatedAt  time.Time
}
