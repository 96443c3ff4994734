// Package paymentlist реализует HTTP-обработчик GET /payments бэкенда-заглушки.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/payment-dashboard/internal/devserver"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
)

// Service описывает бизнес-логику выборки платежей.
type Service interface {
	List(ctx context.Context, req devserver.ListRequest) models.PaymentList
}

// Handler обрабатывает запросы на получение списка платежей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.paymentlist"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	req := devserver.ListRequest{
		Page:    queryInt(q.Get("page"), devserver.DefaultPage),
		Size:    queryInt(q.Get("size"), devserver.DefaultSize),
		Status:  q.Get("status"),
		Search:  q.Get("search"),
		SortBy:  q.Get("sortBy"),
		OrderBy: q.Get("orderBy"),
	}
	if req.SortBy == "" {
		req.SortBy = "date"
	}
	if req.OrderBy == "" {
		req.OrderBy = "desc"
	}

	list := h.service.List(r.Context(), req)

	log.Debug("payments listed",
		slog.Int("page", list.Meta.Page),
		slog.Int("total", list.Meta.Total),
	)
	render.JSON(w, r, list)
}

// queryInt разбирает положительное число, иначе возвращает def.
func queryInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
