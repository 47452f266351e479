// Package lms предоставляет маршруты для основного приложения.
package lms

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/lms-platform/internal/http/handlers/account/activate"
	"github.com/magabrotheeeer/lms-platform/internal/http/handlers/account/exists"
	"github.com/magabrotheeeer/lms-platform/internal/http/handlers/account/info"
	"github.com/magabrotheeeer/lms-platform/internal/http/handlers/account/login"
	"github.com/magabrotheeeer/lms-platform/internal/http/handlers/account/passwordreset"
	"github.com/magabrotheeeer/lms-platform/internal/http/handlers/account/register"
	"github.com/magabrotheeeer/lms-platform/internal/http/handlers/commerce/purchase"
	"github.com/magabrotheeeer/lms-platform/internal/http/handlers/health"
	"github.com/magabrotheeeer/lms-platform/internal/http/handlers/profile/emailoptin"
	"github.com/magabrotheeeer/lms-platform/internal/http/handlers/profileimage/upload"
	surveylist "github.com/magabrotheeeer/lms-platform/internal/http/handlers/survey/list"
	"github.com/magabrotheeeer/lms-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lms-platform/internal/lib/jwt"
	accountservice "github.com/magabrotheeeer/lms-platform/internal/services/account"
	commerceservice "github.com/magabrotheeeer/lms-platform/internal/services/commerce"
	profileservice "github.com/magabrotheeeer/lms-platform/internal/services/profile"
	"github.com/magabrotheeeer/lms-platform/internal/services/profileimage"
	"github.com/magabrotheeeer/lms-platform/internal/sessions"
	"github.com/magabrotheeeer/lms-platform/internal/survey"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, maker jwt.Maker, sessionStore *sessions.Store,
	accountSvc *accountservice.Service, profileSvc *profileservice.Service,
	commerceSvc *commerceservice.Service, imageSvc *profileimage.Service, surveySvc *survey.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(50, 100)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/accounts", register.New(logger, accountSvc).ServeHTTP)
		r.Post("/login", login.New(logger, accountSvc).ServeHTTP)
		r.Get("/accounts/exists", exists.New(logger, accountSvc).ServeHTTP)
		r.Post("/accounts/activate", activate.New(logger, accountSvc).ServeHTTP)
		r.Post("/accounts/password_reset", passwordreset.New(logger, accountSvc).ServeHTTP)
		r.Get("/survey", surveylist.New(logger, surveySvc).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.LanguagePreferenceMiddleware(sessionStore, profileSvc, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))
			r.Get("/accounts/{username}", info.New(logger, accountSvc).ServeHTTP)
			r.Post("/accounts/{username}/image", upload.New(logger, imageSvc).ServeHTTP)
			r.Put("/accounts/{username}/email_opt_in", emailoptin.New(logger, profileSvc).ServeHTTP)
			r.Post("/purchase", purchase.New(logger, commerceSvc).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))
}
