// Package middlewarectx содержит HTTP middleware сервера: проверку
// bearer-сессии с добавлением пользователя в контекст запроса,
// ограничение по роли и ограничение частоты запросов.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/realty-platform/internal/http/response"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ пользователя в контексте запроса.
const UserKey Key = "user"

// Authenticator проверяет токен сессии и возвращает её владельца.
// Каждая успешная проверка продлевает сессию.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionToken string) (*models.User, error)
}

// UserFromContext возвращает аутентифицированного пользователя запроса.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// SessionMiddleware возвращает middleware, которое проверяет bearer-токен
// сессии в заголовке Authorization. Логика работы:
//  1. Считывает значение заголовка Authorization.
//  2. Проверяет токен через сервис аутентификации.
//  3. Кладёт пользователя в контекст запроса.
//  4. Передаёт управление следующему обработчику.
func SessionMiddleware(log *slog.Logger, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, err := auth.Authenticate(r.Context(), bearerToken(r))
			if err != nil {
				if errors.Is(err, models.ErrUnauthenticated) ||
					errors.Is(err, models.ErrSessionExpired) ||
					errors.Is(err, models.ErrAccountDeactivated) {
					log.Info("authentication rejected", sl.Err(err))
				} else {
					log.Error("authentication failed", sl.Err(err))
				}
				response.Err(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSessionMiddleware работает как SessionMiddleware, но пропускает
// запросы без заголовка Authorization дальше анонимно. Используется
// на публичных ручках, которые ведут себя иначе для вошедших пользователей.
func OptionalSessionMiddleware(log *slog.Logger, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.OptionalSessionMiddleware"

			sessionToken := bearerToken(r)
			if sessionToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.Authenticate(r.Context(), sessionToken)
			if err != nil {
				// Битый токен на публичной ручке не мешает анонимному доступу.
				log.With(slog.String("op", op)).Info("optional authentication rejected", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только пользователей с ролью admin.
// Ставится после SessionMiddleware.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAdmin"

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.With(slog.String("op", op)).Error("user missing from context")
				response.Err(w, r, models.ErrUnauthenticated)
				return
			}
			if user.Role != models.RoleAdmin {
				response.Err(w, r, models.ErrPermissionDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
