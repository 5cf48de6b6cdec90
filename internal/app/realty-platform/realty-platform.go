// Package realtyplatform собирает приложение: хранилище, кеш, очередь,
// сервисы и HTTP-сервер.
package realtyplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/realty-platform/internal/cache"
	"github.com/magabrotheeeer/realty-platform/internal/config"
	"github.com/magabrotheeeer/realty-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/realty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/realty-platform/internal/migrations"
	authservice "github.com/magabrotheeeer/realty-platform/internal/services/auth"
	marketingservice "github.com/magabrotheeeer/realty-platform/internal/services/marketing"
	propertyservice "github.com/magabrotheeeer/realty-platform/internal/services/property"
	"github.com/magabrotheeeer/realty-platform/internal/services/sender"
	subscriptionservice "github.com/magabrotheeeer/realty-platform/internal/services/subscription"
	"github.com/magabrotheeeer/realty-platform/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние соединения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	rabbit *amqp.Connection
}

// New подключает хранилище, прогоняет миграции, поднимает опциональные
// redis и rabbitmq и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	var cacheRedis *cache.Cache
	if cfg.RedisConnection.AddressRedis != "" {
		cacheRedis, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
	}

	var rabbitConn *amqp.Connection
	var mailCh *amqp.Channel
	if cfg.RabbitConnection.AddressRabbit != "" {
		rabbitConn, err = rabbitmq.Connect(cfg.RabbitConnection.AddressRabbit,
			cfg.RabbitConnection.Retries, cfg.RabbitConnection.RetryDelay)
		if err != nil {
			return nil, err
		}
		mailCh, err = rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetMailQueues())
		if err != nil {
			return nil, err
		}
	} else {
		logger.Info("rabbitmq address is empty, reset mail publishing is disabled")
	}

	mailer := sender.New(mailCh, logger)
	authService := authservice.New(db, mailer, cfg.Sessions)

	var subCache subscriptionservice.Cache
	if cacheRedis != nil {
		subCache = cacheRedis
	}
	subscriptionService := subscriptionservice.New(db, subCache, cfg.Subscriptions)
	propertyService := propertyservice.New(db)
	marketingService := marketingservice.New(db, cfg.Platforms)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db,
		authService, subscriptionService, propertyService, marketingService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		rabbit: rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		if a.rabbit != nil {
			if closeErr := a.rabbit.Close(); closeErr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
			}
		}
		return err
	}
}
