package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

const userColumns = `uid, username, email, password_hash, full_name, phone, avatar, bio,
		      role, is_verified, is_active,
		      subscription_type, subscription_start, subscription_end, free_trial_used,
		      reset_token, reset_token_expires,
		      marketing_enabled, social_media_promotion,
		      created_at, updated_at, last_login`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var (
		subStart, subEnd, resetExpires, lastLogin sql.NullTime
		resetToken                                sql.NullString
	)
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.Phone, &u.Avatar, &u.Bio,
		&u.Role, &u.IsVerified, &u.IsActive,
		&u.SubscriptionType, &subStart, &subEnd, &u.FreeTrialUsed,
		&resetToken, &resetExpires,
		&u.MarketingEnabled, &u.SocialMediaPromotion,
		&u.CreatedAt, &u.UpdatedAt, &lastLogin); err != nil {
		return nil, err
	}
	if subStart.Valid {
		u.SubscriptionStart = &subStart.Time
	}
	if subEnd.Valid {
		u.SubscriptionEnd = &subEnd.Time
	}
	if resetToken.Valid {
		u.ResetToken = &resetToken.String
	}
	if resetExpires.Valid {
		u.ResetTokenExpires = &resetExpires.Time
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

// RegisterUserWithSession сохраняет нового пользователя и его первую сессию
// в одной транзакции, чтобы сбой не оставил пользователя без сессии.
// Возвращает UID созданного пользователя.
func (s *Storage) RegisterUserWithSession(ctx context.Context, user models.User, session models.Session) (string, error) {
	const op = "storage.RegisterUserWithSession"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newUID string
	query := `INSERT INTO users (username, email, password_hash, full_name, phone, role)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := tx.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash,
		user.FullName, user.Phone, user.Role).Scan(&newUID); err != nil {
		switch uniqueViolation(err) {
		case "users_username_key":
			return "", models.ErrUsernameTaken
		case "users_email_key":
			return "", models.ErrEmailTaken
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO sessions (user_uid, token, ip_address, user_agent, expires_at)
			 VALUES ($1, $2, $3, $4, $5);`
	if _, err := tx.ExecContext(ctx, query,
		newUID, session.Token, session.IPAddress, session.UserAgent, session.ExpiresAt); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, noRows(err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, noRows(err)
	}
	return u, nil
}

// GetUserByResetToken возвращает пользователя по токену сброса пароля.
func (s *Storage) GetUserByResetToken(ctx context.Context, resetToken string) (*models.User, error) {
	const op = "storage.GetUserByResetToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, resetToken))
	if err != nil {
		return nil, noRows(err)
	}
	return u, nil
}

// UpdateLastLogin фиксирует время последнего входа.
func (s *Storage) UpdateLastLogin(ctx context.Context, userUID string, at time.Time) error {
	const op = "storage.UpdateLastLogin"

	query := `UPDATE users SET last_login = $1, updated_at = now() WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, at, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePasswordHash меняет хэш пароля пользователя.
func (s *Storage) UpdatePasswordHash(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.UpdatePasswordHash"

	query := `UPDATE users SET password_hash = $1, updated_at = now() WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, passwordHash, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetResetToken сохраняет токен сброса пароля и срок его действия.
func (s *Storage) SetResetToken(ctx context.Context, userUID, resetToken string, expiresAt time.Time) error {
	const op = "storage.SetResetToken"

	query := `UPDATE users SET reset_token = $1, reset_token_expires = $2, updated_at = now()
			  WHERE uid = $3`
	if _, err := s.DB.ExecContext(ctx, query, resetToken, expiresAt, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ResetPassword одной транзакцией ставит новый хэш пароля, очищает токен
// сброса и деактивирует все сессии пользователя.
func (s *Storage) ResetPassword(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.ResetPassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE users
			  SET password_hash = $1, reset_token = NULL, reset_token_expires = NULL, updated_at = now()
			  WHERE uid = $2`
	if _, err := tx.ExecContext(ctx, query, passwordHash, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query = `UPDATE sessions SET is_active = FALSE WHERE user_uid = $1`
	if _, err := tx.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProfile обновляет профильные поля пользователя.
func (s *Storage) UpdateProfile(ctx context.Context, userUID string, fullName, phone, avatar, bio *string) (*models.User, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET full_name = COALESCE($1, full_name),
			      phone = COALESCE($2, phone),
			      avatar = COALESCE($3, avatar),
			      bio = COALESCE($4, bio),
			      updated_at = now()
			  WHERE uid = $5
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, fullName, phone, avatar, bio, userUID))
	if err != nil {
		return nil, noRows(err)
	}
	return u, nil
}

// StartFreeTrial включает недельный пробный период. Условие
// free_trial_used = FALSE гарантирует, что период стартует не более
// одного раза даже при конкурирующих запросах.
func (s *Storage) StartFreeTrial(ctx context.Context, userUID string, start, end time.Time) (*models.User, error) {
	const op = "storage.StartFreeTrial"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_type = 'trial',
			      subscription_start = $1,
			      subscription_end = $2,
			      free_trial_used = TRUE,
			      updated_at = now()
			  WHERE uid = $3 AND free_trial_used = FALSE
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, start, end, userUID))
	if err != nil {
		if noRows(err) == models.ErrNotFound {
			return nil, models.ErrTrialAlreadyUsed
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpgradeSubscription переводит пользователя на оплаченный тариф
// с заданным окном действия.
func (s *Storage) UpgradeSubscription(ctx context.Context, userUID, tier string, start, end time.Time) (*models.User, error) {
	const op = "storage.UpgradeSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_type = $1,
			      subscription_start = $2,
			      subscription_end = $3,
			      updated_at = now()
			  WHERE uid = $4
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, tier, start, end, userUID))
	if err != nil {
		return nil, noRows(err)
	}
	return u, nil
}
