package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/payment-dashboard/internal/config"
	"github.com/magabrotheeeer/payment-dashboard/internal/devserver"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/jwt"
)

// SeedPayments количество платежей, создаваемых при старте.
const SeedPayments = 20

// App бэкенд-заглушка: HTTP-сервер поверх хранилища в памяти.
type App struct {
	server *http.Server
	logger *slog.Logger
	store  *devserver.Store
}

// New создаёт приложение, наполняет хранилище демо-данными и собирает роутер.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.devserver.New"

	store := devserver.NewStore()
	if err := store.Seed(cfg.SeedPassword, bcrypt.DefaultCost, SeedPayments, time.Now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	maker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	service := devserver.NewService(store, maker, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.HTTPServer, service, store, maker, registry)

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
		store:  store,
	}, nil
}

// Handler возвращает корневой обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает сервер и останавливает его при отмене ctx.
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
		return a.server.Shutdown(timeoutCtx)
	}
}
