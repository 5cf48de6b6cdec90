package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// CreatePayment сохраняет платеж и возвращает его ID.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (int64, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int64
	query := `INSERT INTO payments (user_uid, provider_payment_id, amount, currency, description,
			      status, payment_method, plan_id, billing_cycle, completed_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		p.UserUID, p.ProviderPaymentID, p.Amount, p.Currency, p.Description,
		p.Status, p.PaymentMethod, p.PlanID, p.BillingCycle, p.CompletedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListPaymentsByUser возвращает платежи пользователя, новые первыми.
func (s *Storage) ListPaymentsByUser(ctx context.Context, userUID string) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, provider_payment_id, amount, currency, description,
			      status, payment_method, plan_id, billing_cycle, created_at, completed_at
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var (
			providerID  sql.NullString
			planID      sql.NullInt64
			completedAt sql.NullTime
		)
		if err = rows.Scan(&p.ID, &p.UserUID, &providerID, &p.Amount, &p.Currency, &p.Description,
			&p.Status, &p.PaymentMethod, &planID, &p.BillingCycle, &p.CreatedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if providerID.Valid {
			p.ProviderPaymentID = &providerID.String
		}
		if planID.Valid {
			p.PlanID = &planID.Int64
		}
		if completedAt.Valid {
			p.CompletedAt = &completedAt.Time
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
