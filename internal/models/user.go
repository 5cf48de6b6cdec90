package models

import (
	"fmt"
	"strings"
	"time"
)

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// Типы подписки пользователя.
const (
	TierFree    = "free"
	TierTrial   = "trial"
	TierBasic   = "basic"
	TierPremium = "premium"
)

// User представляет зарегистрированного пользователя системы.
// Все денежные и временные границы подписки хранятся в самой записи,
// статус подписки выводится из них без побочных эффектов.
type User struct {
	UID          string // Уникальный идентификатор пользователя
	Username     string // Имя пользователя (уникальное)
	Email        string // Электронная почта (уникальная, в нижнем регистре)
	PasswordHash string // bcrypt-хэш пароля

	FullName string
	Phone    string
	Avatar   string
	Bio      string

	Role       string // user, agent или admin
	IsVerified bool
	IsActive   bool

	SubscriptionType  string     // free, trial, basic, premium
	SubscriptionStart *time.Time // Начало оплаченного периода (nil — не было)
	SubscriptionEnd   *time.Time // Конец оплаченного периода (nil — нет подписки)
	FreeTrialUsed     bool       // Пробный период использован

	ResetToken        *string    // Токен сброса пароля (nil — не запрошен)
	ResetTokenExpires *time.Time // Срок действия токена сброса

	MarketingEnabled     bool
	SocialMediaPromotion bool

	CreatedAt time.Time
	UpdatedAt time.Time
	LastLogin *time.Time
}

// SubscriptionStatus — производное состояние подписки пользователя.
type SubscriptionStatus struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	CanList  bool   `json:"can_list"`
	DaysLeft *int   `json:"days_left,omitempty"`
}

// HasActiveSubscription сообщает, действует ли оплаченная подписка.
// Отсутствие subscription_end трактуется как отсутствие подписки.
func (u *User) HasActiveSubscription() bool {
	return u.HasActiveSubscriptionAt(time.Now().UTC())
}

// HasActiveSubscriptionAt — то же, что HasActiveSubscription, относительно
// заданного момента времени. Используется в тестах и вычислении статуса.
func (u *User) HasActiveSubscriptionAt(now time.Time) bool {
	if u.SubscriptionType == TierFree {
		return false
	}
	if u.SubscriptionEnd == nil {
		return false
	}
	return now.Before(*u.SubscriptionEnd)
}

// CanListProperties сообщает, может ли пользователь публиковать объекты.
// Агенты и админы публикуют без ограничений; остальным нужна действующая
// подписка либо неиспользованный пробный период.
func (u *User) CanListProperties() bool {
	return u.CanListPropertiesAt(time.Now().UTC())
}

// CanListPropertiesAt — вариант CanListProperties для заданного момента.
func (u *User) CanListPropertiesAt(now time.Time) bool {
	if u.Role == RoleAgent || u.Role == RoleAdmin {
		return true
	}
	return u.HasActiveSubscriptionAt(now) || !u.FreeTrialUsed
}

// GetSubscriptionStatus выводит подробный статус подписки.
// Правила применяются по порядку: свободный тариф с доступным или
// использованным пробным периодом, действующая оплаченная подписка,
// иначе — истекшая.
func (u *User) GetSubscriptionStatus() SubscriptionStatus {
	return u.GetSubscriptionStatusAt(time.Now().UTC())
}

// GetSubscriptionStatusAt — вариант GetSubscriptionStatus для заданного момента.
func (u *User) GetSubscriptionStatusAt(now time.Time) SubscriptionStatus {
	if u.SubscriptionType == TierFree {
		if !u.FreeTrialUsed {
			return SubscriptionStatus{
				Type:    "free_trial_available",
				Message: "1 week free trial available",
				CanList: true,
			}
		}
		return SubscriptionStatus{
			Type:    TierFree,
			Message: "Free account - upgrade to list properties",
			CanList: false,
		}
	}

	if u.HasActiveSubscriptionAt(now) {
		daysLeft := int(u.SubscriptionEnd.Sub(now).Hours() / 24)
		tier := u.SubscriptionType
		if tier != "" {
			tier = strings.ToUpper(tier[:1]) + tier[1:]
		}
		return SubscriptionStatus{
			Type:     u.SubscriptionType,
			Message:  fmt.Sprintf("%s subscription - %d days left", tier, daysLeft),
			CanList:  true,
			DaysLeft: &daysLeft,
		}
	}

	return SubscriptionStatus{
		Type:    "expired",
		Message: "Subscription expired - renew to continue listing",
		CanList: false,
	}
}

// IsResetTokenValidAt проверяет, действителен ли токен сброса пароля.
func (u *User) IsResetTokenValidAt(now time.Time) bool {
	if u.ResetToken == nil || u.ResetTokenExpires == nil {
		return false
	}
	return now.Before(*u.ResetTokenExpires)
}

// UserView — представление пользователя для JSON-ответов.
type UserView struct {
	UID                  string             `json:"uid"`
	Username             string             `json:"username"`
	Email                string             `json:"email"`
	FullName             string             `json:"full_name,omitempty"`
	Phone                string             `json:"phone,omitempty"`
	Avatar               string             `json:"avatar,omitempty"`
	Bio                  string             `json:"bio,omitempty"`
	Role                 string             `json:"role"`
	IsVerified           bool               `json:"is_verified"`
	IsActive             bool               `json:"is_active"`
	SubscriptionType     string             `json:"subscription_type"`
	MarketingEnabled     bool               `json:"marketing_enabled"`
	SocialMediaPromotion bool               `json:"social_media_promotion"`
	CreatedAt            time.Time          `json:"created_at"`
	LastLogin            *time.Time         `json:"last_login,omitempty"`
	SubscriptionStatus   SubscriptionStatus `json:"subscription_status"`

	// Поля ниже заполняются только для самого владельца аккаунта.
	SubscriptionStart *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time `json:"subscription_end,omitempty"`
	FreeTrialUsed     *bool      `json:"free_trial_used,omitempty"`
}

// View возвращает представление пользователя для ответа API.
// includeSensitive добавляет границы подписки и флаг пробного периода —
// их видит только сам владелец аккаунта.
func (u *User) View(includeSensitive bool) UserView {
	v := UserView{
		UID:                  u.UID,
		Username:             u.Username,
		Email:                u.Email,
		FullName:             u.FullName,
		Phone:                u.Phone,
		Avatar:               u.Avatar,
		Bio:                  u.Bio,
		Role:                 u.Role,
		IsVerified:           u.IsVerified,
		IsActive:             u.IsActive,
		SubscriptionType:     u.SubscriptionType,
		MarketingEnabled:     u.MarketingEnabled,
		SocialMediaPromotion: u.SocialMediaPromotion,
		CreatedAt:            u.CreatedAt,
		LastLogin:            u.LastLogin,
		SubscriptionStatus:   u.GetSubscriptionStatus(),
	}
	if includeSensitive {
		v.SubscriptionStart = u.SubscriptionStart
		v.SubscriptionEnd = u.SubscriptionEnd
		trialUsed := u.FreeTrialUsed
		v.FreeTrialUsed = &trialUsed
	}
	return v
}

