// Package dashboard собирает клиент дашборда платежей: хранилище сессии,
// клиент API, сервисы, сессию и навигацию.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/payment-dashboard/internal/apiclient"
	"github.com/magabrotheeeer/payment-dashboard/internal/config"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
	"github.com/magabrotheeeer/payment-dashboard/internal/navigation"
	"github.com/magabrotheeeer/payment-dashboard/internal/services/auth"
	"github.com/magabrotheeeer/payment-dashboard/internal/services/payment"
	"github.com/magabrotheeeer/payment-dashboard/internal/session"
	"github.com/magabrotheeeer/payment-dashboard/internal/storage"
)

// ErrLoginRequired возвращается, когда охранник перенаправил на страницу входа.
var ErrLoginRequired = errors.New("login required")

// App клиент дашборда.
type App struct {
	Session  *session.Store
	Payments *payment.Service
	Router   *navigation.Router
	Registry *prometheus.Registry

	redis  *storage.Redis
	logger *slog.Logger
}

// New собирает приложение по конфигу и восстанавливает сессию из хранилища.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.dashboard.New"

	a := &App{
		Registry: prometheus.NewRegistry(),
		logger:   logger,
	}

	kv, err := a.openStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	api, err := apiclient.New(cfg.BaseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.TimeoutAPI}),
		apiclient.WithMetrics(a.Registry),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a.Session, err = session.New(ctx, kv, auth.NewService(api, logger), logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	api.SetTokenSource(a.Session)

	a.Router, err = navigation.NewRouter(navigation.DefaultRoutes(), a.Session, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.Payments = payment.New(api, logger)

	return a, nil
}

func (a *App) openStorage(ctx context.Context, cfg *config.Config) (storage.KV, error) {
	switch cfg.Backend {
	case config.StorageMemory:
		return storage.NewMemory(nil), nil
	case config.StorageRedis:
		r, err := storage.NewRedis(ctx, cfg.RedisConnection, cfg.Namespace)
		if err != nil {
			return nil, err
		}
		a.redis = r
		return r, nil
	case config.StorageFile:
		path := cfg.Path
		if path == "" {
			path = config.DefaultSessionPath()
		}
		return storage.NewFile(path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Dashboard переходит на страницу дашборда и загружает платежи. Если охранник
// перенаправил на вход, возвращает ErrLoginRequired без обращения к API.
func (a *App) Dashboard(ctx context.Context, params *models.ListParams) (*models.PaymentList, error) {
	const op = "app.dashboard.Dashboard"

	route, err := a.Router.Navigate(navigation.PathDashboard)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if route.Path != navigation.PathDashboard {
		return nil, fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}

	list, err := a.Payments.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Close освобождает соединения хранилища.
func (a *App) Close() {
	if a.redis == nil {
		return
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Warn("failed to close redis", sl.Err(err))
	}
}
