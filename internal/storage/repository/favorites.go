package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// AddFavorite добавляет объект в закладки пользователя.
// Повторное добавление той же пары возвращает ErrDuplicateFavorite.
func (s *Storage) AddFavorite(ctx context.Context, userUID string, propertyID int64) (int64, error) {
	const op = "storage.AddFavorite"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int64
	query := `INSERT INTO property_favorites (user_uid, property_id)
			  VALUES ($1, $2)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, userUID, propertyID).Scan(&id); err != nil {
		if uniqueViolation(err) == "property_favorites_user_uid_property_id_key" {
			return 0, models.ErrDuplicateFavorite
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// RemoveFavorite убирает объект из закладок и возвращает количество
// удалённых строк.
func (s *Storage) RemoveFavorite(ctx context.Context, userUID string, propertyID int64) (int64, error) {
	const op = "storage.RemoveFavorite"

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM property_favorites WHERE user_uid = $1 AND property_id = $2`, userUID, propertyID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListFavoritesByUser возвращает объекты из закладок пользователя,
// недавно добавленные первыми. Неактивные объекты не показываются.
func (s *Storage) ListFavoritesByUser(ctx context.Context, userUID string) ([]*models.Property, error) {
	const op = "storage.ListFavoritesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + qualifyColumns("p", propertyColumns) + `
			  FROM property_favorites f
			  JOIN properties p ON p.id = f.property_id
			  WHERE f.user_uid = $1 AND p.active = TRUE
			  ORDER BY f.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
