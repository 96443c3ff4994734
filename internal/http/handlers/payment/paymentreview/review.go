// Package paymentreview реализует HTTP-обработчик PUT /payments/{id}/review.
package paymentreview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/payment-dashboard/internal/devserver"
	"github.com/magabrotheeeer/payment-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/payment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
)

// Service описывает отметку платежа проверенным.
type Service interface {
	Review(ctx context.Context, role models.Role, id string) error
}

// Handler обрабатывает запрос на ревью платежа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.paymentreview"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing payment id"))
		return
	}

	err := h.service.Review(r.Context(), middlewarectx.RoleFrom(r.Context()), id)
	switch {
	case errors.Is(err, devserver.ErrForbidden):
		log.Info("review forbidden", slog.String("email", middlewarectx.EmailFrom(r.Context())))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Forbidden"))
		return
	case errors.Is(err, devserver.ErrNotFound):
		log.Info("payment not found", slog.String("payment_id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Payment not found"))
		return
	case err != nil:
		log.Error("failed to review payment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	w.WriteHeader(http.StatusOK)
}
