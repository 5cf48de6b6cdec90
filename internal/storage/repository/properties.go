package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

const propertyColumns = `id, title, description, location, address, latitude, longitude,
		      price, currency, bedrooms, bathrooms, area, property_type, status,
		      features, main_image, gallery_images, featured, active, views,
		      owner_uid, agent_uid, created_at, updated_at`

func scanProperty(row interface{ Scan(...any) error }) (*models.Property, error) {
	p := &models.Property{}
	var (
		lat, lon          sql.NullFloat64
		agentUID          sql.NullString
		features, gallery []byte
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.Address, &lat, &lon,
		&p.Price, &p.Currency, &p.Bedrooms, &p.Bathrooms, &p.Area, &p.PropertyType, &p.Status,
		&features, &p.MainImage, &gallery, &p.Featured, &p.Active, &p.Views,
		&p.OwnerUID, &agentUID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if lat.Valid {
		p.Latitude = &lat.Float64
	}
	if lon.Valid {
		p.Longitude = &lon.Float64
	}
	if agentUID.Valid {
		p.AgentUID = &agentUID.String
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, err
		}
	}
	if len(gallery) > 0 {
		if err := json.Unmarshal(gallery, &p.GalleryImages); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// CreateProperty сохраняет объект недвижимости и возвращает его ID.
func (s *Storage) CreateProperty(ctx context.Context, p models.Property) (int64, error) {
	const op = "storage.CreateProperty"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(p.Features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	gallery, err := json.Marshal(p.GalleryImages)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	query := `INSERT INTO properties (title, description, location, address, latitude, longitude,
			      price, currency, bedrooms, bathrooms, area, property_type, status,
			      features, main_image, gallery_images, owner_uid, agent_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Location, p.Address, p.Latitude, p.Longitude,
		p.Price, p.Currency, p.Bedrooms, p.Bathrooms, p.Area, p.PropertyType, p.Status,
		features, p.MainImage, gallery, p.OwnerUID, p.AgentUID).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetProperty возвращает объект по ID.
func (s *Storage) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	const op = "storage.GetProperty"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	p, err := scanProperty(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, noRows(err)
	}
	return p, nil
}

// ListProperties возвращает страницу активных объектов по фильтру
// вместе с общим количеством совпадений.
func (s *Storage) ListProperties(ctx context.Context, f models.PropertyFilter) ([]*models.Property, int, error) {
	const op = "storage.ListProperties"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where := []string{"active = TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Location != "" {
		where = append(where, "location ILIKE "+arg("%"+f.Location+"%"))
	}
	if f.PropertyType != "" {
		where = append(where, "property_type = "+arg(f.PropertyType))
	}
	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	if f.Bedrooms != nil {
		where = append(where, "bedrooms = "+arg(*f.Bedrooms))
	}
	if f.Featured != nil {
		where = append(where, "featured = "+arg(*f.Featured))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.DB.QueryRowContext(ctx,
		"SELECT count(*) FROM properties WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := "SELECT " + propertyColumns + " FROM properties WHERE " + cond +
		" ORDER BY created_at DESC LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// UpdateProperty обновляет данные объекта.
func (s *Storage) UpdateProperty(ctx context.Context, id int64, p models.Property) (*models.Property, error) {
	const op = "storage.UpdateProperty"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(p.Features)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	gallery, err := json.Marshal(p.GalleryImages)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE properties
			  SET title = $1, description = $2, location = $3, address = $4,
			      latitude = $5, longitude = $6, price = $7,
			      bedrooms = $8, bathrooms = $9, area = $10,
			      property_type = $11, status = $12, features = $13,
			      main_image = $14, gallery_images = $15, agent_uid = $16,
			      updated_at = now()
			  WHERE id = $17
			  RETURNING ` + propertyColumns
	updated, err := scanProperty(s.DB.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Location, p.Address,
		p.Latitude, p.Longitude, p.Price,
		p.Bedrooms, p.Bathrooms, p.Area,
		p.PropertyType, p.Status, features,
		p.MainImage, gallery, p.AgentUID, id))
	if err != nil {
		return nil, noRows(err)
	}
	return updated, nil
}

// DeleteProperty удаляет объект и возвращает количество удалённых строк.
func (s *Storage) DeleteProperty(ctx context.Context, id int64) (int64, error) {
	const op = "storage.DeleteProperty"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// IncrementPropertyViews увеличивает счётчик просмотров объекта.
func (s *Storage) IncrementPropertyViews(ctx context.Context, id int64) error {
	const op = "storage.IncrementPropertyViews"

	if _, err := s.DB.ExecContext(ctx,
		`UPDATE properties SET views = views + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
