// Package sender публикует почтовые уведомления в RabbitMQ.
// Фактическая отправка писем выполняется отдельным воркером.
package sender

import (
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/realty-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
)

// ResetMail — сообщение о запрошенном сбросе пароля.
type ResetMail struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Publisher публикует почтовые сообщения в канал RabbitMQ.
// Nil-издатель допустим: публикация тогда молча пропускается,
// чтобы приложение работало и без брокера.
type Publisher struct {
	ch  *amqp.Channel
	log *slog.Logger
}

// New создает издателя почтовых уведомлений.
func New(ch *amqp.Channel, log *slog.Logger) *Publisher {
	return &Publisher{ch: ch, log: log}
}

// SendPasswordReset публикует уведомление о сбросе пароля.
// Ошибка публикации логируется, но не прерывает запрос:
// пользователь не должен узнать о внутренних сбоях доставки.
func (p *Publisher) SendPasswordReset(email, token string, expiresAt time.Time) {
	if p == nil || p.ch == nil {
		return
	}
	msg := ResetMail{Email: email, Token: token, ExpiresAt: expiresAt}
	if err := rabbitmq.PublishMessage(p.ch, rabbitmq.MailExchange, "password_reset", msg); err != nil {
		p.log.Error("failed to publish password reset mail", sl.Err(err))
	}
}
