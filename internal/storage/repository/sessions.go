package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// CreateSession сохраняет новую сессию пользователя.
func (s *Storage) CreateSession(ctx context.Context, session models.Session) (int64, error) {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int64
	query := `INSERT INTO sessions (user_uid, token, ip_address, user_agent, expires_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		session.UserUID, session.Token, session.IPAddress,
		session.UserAgent, session.ExpiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetActiveSessionByToken возвращает активную сессию по токену.
// Истечение срока здесь не проверяется — это дело сервиса,
// чтобы различать "нет сессии" и "сессия истекла".
func (s *Storage) GetActiveSessionByToken(ctx context.Context, sessionToken string) (*models.Session, error) {
	const op = "storage.GetActiveSessionByToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, token, ip_address, user_agent, created_at, expires_at, is_active
			  FROM sessions
			  WHERE token = $1 AND is_active = TRUE`
	sess := &models.Session{}
	row := s.DB.QueryRowContext(ctx, query, sessionToken)
	if err := row.Scan(&sess.ID, &sess.UserUID, &sess.Token, &sess.IPAddress,
		&sess.UserAgent, &sess.CreatedAt, &sess.ExpiresAt, &sess.IsActive); err != nil {
		return nil, noRows(err)
	}
	return sess, nil
}

// ExtendSession переписывает срок действия сессии (скользящее окно).
func (s *Storage) ExtendSession(ctx context.Context, sessionToken string, expiresAt time.Time) error {
	const op = "storage.ExtendSession"

	query := `UPDATE sessions SET expires_at = $1 WHERE token = $2`
	if _, err := s.DB.ExecContext(ctx, query, expiresAt, sessionToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeactivateSession мягко отзывает сессию. Отсутствующий токен — no-op,
// чтобы не раскрывать существование сессий.
func (s *Storage) DeactivateSession(ctx context.Context, sessionToken string) error {
	const op = "storage.DeactivateSession"

	query := `UPDATE sessions SET is_active = FALSE WHERE token = $1`
	if _, err := s.DB.ExecContext(ctx, query, sessionToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeactivateUserSessions отзывает все сессии пользователя разом.
func (s *Storage) DeactivateUserSessions(ctx context.Context, userUID string) error {
	const op = "storage.DeactivateUserSessions"

	query := `UPDATE sessions SET is_active = FALSE WHERE user_uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
