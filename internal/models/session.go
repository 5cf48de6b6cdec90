package models

import "time"

// Session — bearer-сессия пользователя.
// Сессия пригодна для использования только когда is_active == true
// и текущий момент раньше expires_at. Токен уникален глобально.
type Session struct {
	ID        int64
	UserUID   string // Владелец сессии
	Token     string // Непрозрачный URL-safe токен
	IPAddress string // Адрес клиента при выдаче (диагностика)
	UserAgent string // User-Agent клиента при выдаче (диагностика)
	CreatedAt time.Time
	ExpiresAt time.Time // Абсолютный срок действия; продлевается при каждом использовании
	IsActive  bool
}

// IsValidAt сообщает, пригодна ли сессия в момент now.
func (s *Session) IsValidAt(now time.Time) bool {
	return s.IsActive && now.Before(s.ExpiresAt)
}
