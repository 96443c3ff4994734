// Package health отдаёт состояние бэкенда-заглушки.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
)

// Counter сообщает количество платежей в хранилище.
type Counter interface {
	Count() int
}

// Handler обработчик GET /health.
type Handler struct {
	log     *slog.Logger
	counter Counter
}

// New создаёт Handler.
func New(log *slog.Logger, counter Counter) *Handler {
	return &Handler{
		log:     log,
		counter: counter,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	count := h.counter.Count()
	h.log.Debug("health check",
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("payments", count),
	)
	render.JSON(w, r, map[string]any{
		"status":   "ok",
		"payments": count,
	})
}
