// Package devserver собирает HTTP-приложение бэкенда-заглушки дашборда.
package devserver

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/payment-dashboard/internal/config"
	"github.com/magabrotheeeer/payment-dashboard/internal/devserver"
	"github.com/magabrotheeeer/payment-dashboard/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/payment-dashboard/internal/http/handlers/health"
	"github.com/magabrotheeeer/payment-dashboard/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/payment-dashboard/internal/http/handlers/payment/paymentreview"
	"github.com/magabrotheeeer/payment-dashboard/internal/http/middlewarectx"
)

// BasePath префикс всех маршрутов API.
const BasePath = "/dashboard/v1"

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg config.HTTPServer,
	service *devserver.Service,
	store *devserver.Store,
	parser middlewarectx.TokenParser,
	gatherer prometheus.Gatherer,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middlewarectx.Logger(logger),
		middleware.Recoverer,
	)

	r.Route(BasePath, func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit, cfg.RateBurst))

		// Открытые конечные точки
		r.Post("/auth/login", login.New(logger, service).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(parser, logger))
			r.Get("/payments", paymentlist.New(logger, service).ServeHTTP)

			r.Put("/payments/{id}/review", paymentreview.New(logger, service).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, store).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
