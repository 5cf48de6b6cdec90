// Package realtyplatform предоставляет маршруты для основного приложения.
package realtyplatform

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/auth/changepassword"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/auth/forgotpassword"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/auth/resetpassword"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/health"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/admincampaigns"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/adminstats"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/analytics"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/campaigncreate"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/campaignlist"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/campaignmetrics"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/campaignread"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/campaignremove"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/campaignupdate"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/launch"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/pause"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/platforms"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/marketing/socialshare"
	propertycreate "github.com/magabrotheeeer/realty-platform/internal/http/handlers/property/create"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/property/favoriteadd"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/property/favoritelist"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/property/favoriteremove"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/property/inquirycreate"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/property/inquirylist"
	propertylist "github.com/magabrotheeeer/realty-platform/internal/http/handlers/property/list"
	propertyread "github.com/magabrotheeeer/realty-platform/internal/http/handlers/property/read"
	propertyremove "github.com/magabrotheeeer/realty-platform/internal/http/handlers/property/remove"
	propertyupdate "github.com/magabrotheeeer/realty-platform/internal/http/handlers/property/update"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/subscription/payments"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/subscription/plans"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/subscription/trial"
	"github.com/magabrotheeeer/realty-platform/internal/http/handlers/subscription/upgrade"
	userupdate "github.com/magabrotheeeer/realty-platform/internal/http/handlers/users/update"
	"github.com/magabrotheeeer/realty-platform/internal/http/middlewarectx"

	"log/slog"

	"github.com/magabrotheeeer/realty-platform/internal/config"
	authservice "github.com/magabrotheeeer/realty-platform/internal/services/auth"
	marketingservice "github.com/magabrotheeeer/realty-platform/internal/services/marketing"
	propertyservice "github.com/magabrotheeeer/realty-platform/internal/services/property"
	subscriptionservice "github.com/magabrotheeeer/realty-platform/internal/services/subscription"
	"github.com/magabrotheeeer/realty-platform/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, db *repository.Storage,
	authService *authservice.AuthService, subscriptionService *subscriptionservice.SubscriptionService,
	propertyService *propertyservice.PropertyService, marketingService *marketingservice.MarketingService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Один лимитер на все чувствительные к перебору конечные точки.
	authLimiter := rate.NewLimiter(rate.Limit(5), 10)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Открытые конечные точки аутентификации, с ограничением частоты
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, authLimiter))
			r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
			r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
			r.Post("/auth/forgot-password", forgotpassword.New(logger, authService).ServeHTTP)
			r.Post("/auth/reset-password", resetpassword.New(logger, authService).ServeHTTP)
		})

		r.Get("/subscription/plans", plans.New(logger, subscriptionService).ServeHTTP)

		// Публичный просмотр объявлений: сессия подхватывается, если есть
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalSessionMiddleware(logger, authService))
			r.Get("/properties", propertylist.New(logger, propertyService).ServeHTTP)
			r.Get("/properties/{id}", propertyread.New(logger, propertyService).ServeHTTP)
			r.Post("/properties/{id}/inquiries", inquirycreate.New(logger, propertyService).ServeHTTP)
		})

		// Группа с bearer-аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(logger, authService))

			r.Post("/auth/logout", logout.New(logger, authService).ServeHTTP)
			r.Get("/auth/me", me.New(logger).ServeHTTP)
			r.Post("/auth/change-password", changepassword.New(logger, authService).ServeHTTP)
			r.Put("/users/me", userupdate.New(logger, authService).ServeHTTP)

			r.Get("/subscription/status", status.New(logger).ServeHTTP)
			r.Post("/subscription/trial", trial.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscription/upgrade", upgrade.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscription/payments", payments.New(logger, subscriptionService).ServeHTTP)

			r.Post("/properties", propertycreate.New(logger, propertyService).ServeHTTP)
			r.Put("/properties/{id}", propertyupdate.New(logger, propertyService).ServeHTTP)
			r.Delete("/properties/{id}", propertyremove.New(logger, propertyService).ServeHTTP)
			r.Get("/properties/{id}/inquiries", inquirylist.New(logger, propertyService).ServeHTTP)
			r.Post("/properties/{id}/favorite", favoriteadd.New(logger, propertyService).ServeHTTP)
			r.Delete("/properties/{id}/favorite", favoriteremove.New(logger, propertyService).ServeHTTP)
			r.Get("/favorites", favoritelist.New(logger, propertyService).ServeHTTP)

			r.Post("/marketing/campaigns", campaigncreate.New(logger, marketingService).ServeHTTP)
			r.Get("/marketing/campaigns", campaignlist.New(logger, marketingService).ServeHTTP)
			r.Get("/marketing/campaigns/{id}", campaignread.New(logger, marketingService).ServeHTTP)
			r.Put("/marketing/campaigns/{id}", campaignupdate.New(logger, marketingService).ServeHTTP)
			r.Delete("/marketing/campaigns/{id}", campaignremove.New(logger, marketingService).ServeHTTP)
			r.Post("/marketing/campaigns/{id}/launch", launch.New(logger, marketingService).ServeHTTP)
			r.Post("/marketing/campaigns/{id}/pause", pause.New(logger, marketingService).ServeHTTP)
			r.Get("/marketing/campaigns/{id}/metrics", campaignmetrics.New(logger, marketingService).ServeHTTP)
			r.Post("/marketing/social-share", socialshare.New(logger, marketingService).ServeHTTP)
			r.Get("/marketing/platforms", platforms.New(logger, marketingService).ServeHTTP)
			r.Get("/marketing/analytics", analytics.New(logger, marketingService).ServeHTTP)

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Get("/marketing/admin/campaigns", admincampaigns.New(logger, marketingService).ServeHTTP)
				r.Get("/marketing/admin/stats", adminstats.New(logger, marketingService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Все остальное отдает собранный фронтенд
	r.Get("/*", spaHandler(cfg.StaticDir))
}

// spaHandler отдает статические файлы собранного фронтенда.
// Неизвестные пути получают index.html, маршрутизацию по ним
// выполняет сам SPA.
func spaHandler(staticDir string) http.HandlerFunc {
	fs := http.FileServer(http.Dir(staticDir))
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	}
}
