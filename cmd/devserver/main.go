// Command devserver запускает бэкенд-заглушку REST API дашборда платежей
// с демо-пользователями и платежами в памяти.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	devserverapp "github.com/magabrotheeeer/payment-dashboard/internal/app/devserver"
	"github.com/magabrotheeeer/payment-dashboard/internal/config"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting devserver", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := devserverapp.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("devserver stopped gracefully")
}
