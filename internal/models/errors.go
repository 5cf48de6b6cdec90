// Package models содержит доменные структуры платформы недвижимости:
// пользователей, сессии, тарифные планы, платежи, объекты недвижимости
// и маркетинговые кампании, а также общие доменные ошибки.
package models

import "errors"

// Доменные ошибки сервисного слоя. Обработчики преобразуют их
// в HTTP-статусы и структурированные коды ответов.
var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnauthenticated     = errors.New("invalid or expired session")
	ErrSessionExpired      = errors.New("session expired")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrNotFound            = errors.New("not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrSubscriptionNeeded  = errors.New("active subscription required")
	ErrSocialPromotionOff  = errors.New("social media promotion not enabled in your plan")
	ErrTrialAlreadyUsed    = errors.New("free trial already used")
	ErrInvalidState        = errors.New("invalid status transition")
	ErrDuplicateFavorite   = errors.New("property already in favorites")
	ErrUnknownPlatform     = errors.New("invalid platform")
	ErrCannotListProperty  = errors.New("subscription required to list properties")
)
