// Package catalog собирает приложение админ-панели каталога: зависимости,
// маршруты и HTTP-сервер.
package catalog

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/arqr-labs/halal-catalog/internal/http/handlers/auth/login"
	"github.com/arqr-labs/halal-catalog/internal/http/handlers/auth/logout"
	"github.com/arqr-labs/halal-catalog/internal/http/handlers/auth/register"
	authsession "github.com/arqr-labs/halal-catalog/internal/http/handlers/auth/session"
	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/categories"
	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/create"
	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/health"
	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/list"
	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/read"
	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/remove"
	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/stats"
	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/update"
	"github.com/arqr-labs/halal-catalog/internal/http/middlewarectx"
	authservice "github.com/arqr-labs/halal-catalog/internal/services/auth"
	catalogservice "github.com/arqr-labs/halal-catalog/internal/services/catalog"
	"github.com/arqr-labs/halal-catalog/internal/services/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, catalogService *catalogservice.Controller, sess *session.Session) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService, sess).ServeHTTP)
		r.Get("/auth/session", authsession.New(logger, authService, sess).ServeHTTP)

		// Группа с JWT аутентификацией и меткой admin
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.AdminOnlyMiddleware(logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/auth/logout", logout.New(logger, authService, sess).ServeHTTP)
			r.Get("/products", list.New(logger, catalogService).ServeHTTP)
			r.Post("/products", create.New(logger, catalogService).ServeHTTP)
			r.Get("/products/stats", stats.New(logger, catalogService).ServeHTTP)
			r.Get("/products/{productId}", read.New(logger, catalogService).ServeHTTP)
			r.Put("/products/{productId}", update.New(logger, catalogService).ServeHTTP)
			r.Delete("/products/{productId}", remove.New(logger, catalogService).ServeHTTP)
			r.Get("/categories", categories.New(logger, catalogService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
