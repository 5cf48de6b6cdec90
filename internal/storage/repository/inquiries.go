package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// CreateInquiry сохраняет заявку по объекту и возвращает её ID.
func (s *Storage) CreateInquiry(ctx context.Context, inq models.PropertyInquiry) (int64, error) {
	const op = "storage.CreateInquiry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int64
	query := `INSERT INTO property_inquiries (property_id, user_uid, name, email, phone, message, inquiry_type)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		inq.PropertyID, inq.UserUID, inq.Name, inq.Email,
		inq.Phone, inq.Message, inq.InquiryType).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListInquiriesByProperty возвращает заявки по объекту, новые первыми.
func (s *Storage) ListInquiriesByProperty(ctx context.Context, propertyID int64) ([]*models.PropertyInquiry, error) {
	const op = "storage.ListInquiriesByProperty"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, property_id, user_uid, name, email, phone, message, inquiry_type, status, created_at
			  FROM property_inquiries
			  WHERE property_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PropertyInquiry
	for rows.Next() {
		inq := &models.PropertyInquiry{}
		var userUID sql.NullString
		if err = rows.Scan(&inq.ID, &inq.PropertyID, &userUID, &inq.Name, &inq.Email,
			&inq.Phone, &inq.Message, &inq.InquiryType, &inq.Status, &inq.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if userUID.Valid {
			inq.UserUID = &userUID.String
		}
		result = append(result, inq)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
