// Package lms собирает приложение платформы обучения: хранилище,
// сессии, внешние интеграции, сервисы и HTTP-сервер.
package lms

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/lms-platform/internal/analytics"
	"github.com/magabrotheeeer/lms-platform/internal/commerceprovider"
	"github.com/magabrotheeeer/lms-platform/internal/config"
	"github.com/magabrotheeeer/lms-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
	"github.com/magabrotheeeer/lms-platform/internal/lib/smtp"
	"github.com/magabrotheeeer/lms-platform/internal/migrations"
	accountservice "github.com/magabrotheeeer/lms-platform/internal/services/account"
	commerceservice "github.com/magabrotheeeer/lms-platform/internal/services/commerce"
	profileservice "github.com/magabrotheeeer/lms-platform/internal/services/profile"
	"github.com/magabrotheeeer/lms-platform/internal/services/profileimage"
	senderservice "github.com/magabrotheeeer/lms-platform/internal/services/sender"
	"github.com/magabrotheeeer/lms-platform/internal/sessions"
	"github.com/magabrotheeeer/lms-platform/internal/storage"
	"github.com/magabrotheeeer/lms-platform/internal/survey"
)

// App объединяет HTTP-сервер и его зависимости.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *storage.Storage
	sessions *sessions.Store
}

// New собирает приложение из конфигурации: подключается к базе данных
// и Redis, прогоняет миграции, настраивает интеграции с сервисом заказов,
// почтой и аналитикой и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(cfg.StorageConnectionString, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	sessionStore, err := sessions.New(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var tracker profileservice.Tracker
	if cfg.Analytics.RabbitConnection != "" {
		conn, err := analytics.Connect(cfg.Analytics.RabbitConnection, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		publisher, err := analytics.NewPublisher(conn, cfg.Analytics.Exchange, cfg.Analytics.RoutingKey)
		if err != nil {
			return nil, err
		}
		tracker = publisher
	} else {
		logger.Warn("analytics broker is not configured, events will not be published")
	}

	transport := smtp.NewTransport(cfg, logger)
	sender := senderservice.NewSenderService(logger, transport)

	sessionMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	var orderClient commerceservice.OrderClient
	var commerceMaker jwt.Maker
	if cfg.Commerce.APIURL != "" && cfg.Commerce.SigningKey != "" {
		orderClient = commerceprovider.NewClient(cfg.Commerce.APIURL, cfg.Commerce.APITimeout)
		commerceMaker = jwt.NewJWTMaker(cfg.Commerce.SigningKey, cfg.TokenTTL)
	} else {
		logger.Warn("commerce provider is not configured, all courses are treated as free")
		commerceMaker = sessionMaker
	}

	accountSvc := accountservice.New(db, sessionMaker, sender, logger)
	profileSvc := profileservice.New(db, tracker, cfg.EmailOptIn.MinimumAge, logger)
	commerceSvc := commerceservice.New(db, orderClient, commerceMaker, cfg.Commerce.EnrollOnPendingOrder, logger)
	imageSvc := profileimage.New(cfg.ProfileImage.MaxBytes, cfg.ProfileImage.StorageRoot)
	surveySvc := survey.New(cfg.Survey.RandomQuestionCount, cfg.Survey.DebugShowAll)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, sessionMaker, sessionStore,
		accountSvc, profileSvc, commerceSvc, imageSvc, surveySvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessionStore,
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
		if cerr := a.sessions.Close(); cerr != nil {
			a.logger.Error("failed to close session store", sl.Err(cerr))
		}
		a.db.Close()
		return err
	}
}
