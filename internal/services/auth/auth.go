// Package auth содержит бизнес-логику регистрации, входа и управления
// сессиями и паролями пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/realty-platform/internal/config"
	"github.com/magabrotheeeer/realty-platform/internal/lib/password"
	"github.com/magabrotheeeer/realty-platform/internal/lib/token"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// UserRepository описывает контракт для работы с пользователями и сессиями.
type UserRepository interface {
	RegisterUserWithSession(ctx context.Context, user models.User, session models.Session) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, resetToken string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userUID string, at time.Time) error
	UpdatePasswordHash(ctx context.Context, userUID, passwordHash string) error
	SetResetToken(ctx context.Context, userUID, resetToken string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, userUID, passwordHash string) error
	UpdateProfile(ctx context.Context, userUID string, fullName, phone, avatar, bio *string) (*models.User, error)

	CreateSession(ctx context.Context, session models.Session) (int64, error)
	GetActiveSessionByToken(ctx context.Context, sessionToken string) (*models.Session, error)
	ExtendSession(ctx context.Context, sessionToken string, expiresAt time.Time) error
	DeactivateSession(ctx context.Context, sessionToken string) error
	DeactivateUserSessions(ctx context.Context, userUID string) error
}

// ResetMailer отправляет письмо со ссылкой для сброса пароля.
type ResetMailer interface {
	SendPasswordReset(email, resetToken string, expiresAt time.Time)
}

// AuthService отвечает за учетные записи и bearer-сессии.
type AuthService struct {
	repo   UserRepository
	mailer ResetMailer
	cfg    config.Sessions
}

// New создает новый экземпляр AuthService.
func New(repo UserRepository, mailer ResetMailer, cfg config.Sessions) *AuthService {
	return &AuthService{
		repo:   repo,
		mailer: mailer,
		cfg:    cfg,
	}
}

// Register создает пользователя и его первую сессию. Возвращает
// пользователя и токен сессии.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword, fullName, phone, ip, userAgent string) (*models.User, string, error) {
	const op = "auth.Register"

	if err := password.Validate(rawPassword); err != nil {
		return nil, "", err
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	sessionToken, err := token.New()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: hashed,
		FullName:     fullName,
		Phone:        phone,
		Role:         models.RoleUser,
	}
	session := models.Session{
		Token:     sessionToken,
		IPAddress: ip,
		UserAgent: userAgent,
		ExpiresAt: time.Now().UTC().Add(s.cfg.InitialTTL),
	}

	uid, err := s.repo.RegisterUserWithSession(ctx, user, session)
	if err != nil {
		return nil, "", err
	}
	created, err := s.repo.GetUser(ctx, uid)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return created, sessionToken, nil
}

// Login проверяет пароль и открывает новую сессию.
// Несуществующий email и неверный пароль дают одну и ту же ошибку,
// чтобы не раскрывать, какие адреса зарегистрированы.
func (s *AuthService) Login(ctx context.Context, email, rawPassword, ip, userAgent string) (*models.User, string, error) {
	const op = "auth.Login"

	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", models.ErrAccountDeactivated
	}

	sessionToken, err := token.New()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	now := time.Now().UTC()
	session := models.Session{
		UserUID:   user.UID,
		Token:     sessionToken,
		IPAddress: ip,
		UserAgent: userAgent,
		ExpiresAt: now.Add(s.cfg.InitialTTL),
	}
	if _, err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdateLastLogin(ctx, user.UID, now); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.LastLogin = &now
	return user, sessionToken, nil
}

// Authenticate проверяет токен сессии и возвращает её владельца.
// Каждый успешный вызов продлевает сессию скользящим окном.
func (s *AuthService) Authenticate(ctx context.Context, sessionToken string) (*models.User, error) {
	const op = "auth.Authenticate"

	if sessionToken == "" {
		return nil, models.ErrUnauthenticated
	}
	session, err := s.repo.GetActiveSessionByToken(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	now := time.Now().UTC()
	if !session.IsValidAt(now) {
		return nil, models.ErrSessionExpired
	}
	user, err := s.repo.GetUser(ctx, session.UserUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		return nil, models.ErrAccountDeactivated
	}
	if err := s.repo.ExtendSession(ctx, sessionToken, now.Add(s.cfg.TouchTTL)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Logout отзывает сессию. Неизвестный токен не считается ошибкой.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	return s.repo.DeactivateSession(ctx, sessionToken)
}

// RequestPasswordReset выдает токен сброса пароля и отправляет письмо.
// Для незарегистрированного email ничего не происходит, но вызов
// завершается успешно, чтобы не раскрывать базу адресов.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	const op = "auth.RequestPasswordReset"

	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	resetToken, err := token.New()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	expiresAt := time.Now().UTC().Add(s.cfg.ResetTokenTTL)
	if err := s.repo.SetResetToken(ctx, user.UID, resetToken, expiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if s.mailer != nil {
		s.mailer.SendPasswordReset(user.Email, resetToken, expiresAt)
	}
	return nil
}

// ResetPassword устанавливает новый пароль по токену сброса.
// Токен одноразовый, все сессии пользователя отзываются.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	const op = "auth.ResetPassword"

	if err := password.Validate(newPassword); err != nil {
		return err
	}
	user, err := s.repo.GetUserByResetToken(ctx, resetToken)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrInvalidResetToken
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsResetTokenValidAt(time.Now().UTC()) {
		return models.ErrInvalidResetToken
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.repo.ResetPassword(ctx, user.UID, hashed)
}

// ChangePassword меняет пароль аутентифицированного пользователя
// после проверки текущего пароля.
func (s *AuthService) ChangePassword(ctx context.Context, userUID, currentPassword, newPassword string) error {
	const op = "auth.ChangePassword"

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		return models.ErrInvalidCredentials
	}
	if err := password.Validate(newPassword); err != nil {
		return err
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.repo.UpdatePasswordHash(ctx, userUID, hashed)
}

// UpdateProfile обновляет профильные поля пользователя. nil-поле
// означает "оставить как есть".
func (s *AuthService) UpdateProfile(ctx context.Context, userUID string, fullName, phone, avatar, bio *string) (*models.User, error) {
	return s.repo.UpdateProfile(ctx, userUID, fullName, phone, avatar, bio)
}
