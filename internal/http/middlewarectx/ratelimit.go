package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/realty-platform/internal/http/response"
)

// RateLimitMiddleware ограничивает частоту запросов глобальным лимитером.
// Ставится на чувствительные ручки вроде входа и сброса пароля.
func RateLimitMiddleware(log *slog.Logger, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Info("too many requests")
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error(response.CodeRateLimited, "too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
