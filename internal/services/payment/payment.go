// Package payment содержит клиентские операции над платежами:
// постраничный список со сводкой и отметку платежа проверенным.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
)

// ErrEmptyID возвращается при попытке отметить платёж без идентификатора.
var ErrEmptyID = errors.New("payment id must not be empty")

// Transport описывает HTTP-транспорт к API.
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Service клиент платёжных эндпоинтов. Ничего не кэширует.
type Service struct {
	api Transport
	log *slog.Logger
}

// New создаёт Service.
func New(api Transport, log *slog.Logger) *Service {
	return &Service{
		api: api,
		log: log,
	}
}

// List запрашивает страницу платежей. Параметры передаются серверу без изменений,
// ответ возвращается как есть.
func (s *Service) List(ctx context.Context, params *models.ListParams) (*models.PaymentList, error) {
	const op = "services.payment.List"

	query := params.Values()
	var list models.PaymentList
	if err := s.api.Do(ctx, http.MethodGet, "/payments", query, nil, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("payments fetched",
		sl.Op(op),
		slog.String("query", query.Encode()),
		slog.Int("items", len(list.Meta.Data)),
	)
	return &list, nil
}

// Review отмечает платёж id проверенным. Тела ответа нет; успех — отсутствие ошибки.
// Обновить локальную копию записи должен вызывающий.
func (s *Service) Review(ctx context.Context, id string) error {
	const op = "services.payment.Review"
	if id == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyID)
	}

	path := "/payments/" + url.PathEscape(id) + "/review"
	if err := s.api.Do(ctx, http.MethodPut, path, nil, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment reviewed", sl.Op(op), slog.String("payment_id", id))
	return nil
}
