package devserver

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/magabrotheeeer/payment-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/password"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
)

// Значения по умолчанию для пагинации.
const (
	DefaultPage = 1
	DefaultSize = 10
)

// ListRequest параметры списка платежей после разбора строки запроса.
type ListRequest struct {
	Page    int
	Size    int
	Status  string
	Search  string
	SortBy  string
	OrderBy string
}

// Service бизнес-логика бэкенда-заглушки.
type Service struct {
	store *Store
	maker jwt.Maker
	log   *slog.Logger
}

// NewService создаёт Service.
func NewService(store *Store, maker jwt.Maker, log *slog.Logger) *Service {
	return &Service{store: store, maker: maker, log: log}
}

// Login проверяет пароль и выдаёт токен. Неизвестный email и неверный пароль
// неразличимы для вызывающего.
func (s *Service) Login(_ context.Context, email, rawPassword string) (string, models.Role, error) {
	const op = "devserver.Login"
	user, ok := s.store.UserByEmail(email)
	if !ok {
		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.maker.GenerateToken(user.Email, string(user.Role))
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return token, user.Role, nil
}

// List фильтрует, сортирует и нарезает платежи на страницы. Сводка считается
// по всем платежам, Total — по отфильтрованным.
func (s *Service) List(_ context.Context, req ListRequest) models.PaymentList {
	all := s.store.Payments()

	filtered := make([]*models.Payment, 0, len(all))
	summary := models.PaymentSummary{}
	for i := range all {
		p := &all[i]
		switch p.Status {
		case models.StatusCompleted:
			summary.Completed++
		case models.StatusProcessing:
			summary.Processing++
		case models.StatusFailed:
			summary.Failed++
		}
		if req.Status != "" && string(p.Status) != req.Status {
			continue
		}
		if req.Search != "" && !strings.Contains(p.ID, req.Search) {
			continue
		}
		filtered = append(filtered, p)
	}

	asc := req.OrderBy == "asc"
	slices.SortStableFunc(filtered, func(a, b *models.Payment) int {
		var c int
		if req.SortBy == "amount" {
			c = cmp.Compare(a.Amount, b.Amount)
		} else {
			c = a.Date.Compare(b.Date)
		}
		if !asc {
			c = -c
		}
		return c
	})

	if req.Size <= 0 {
		req.Size = DefaultSize
	}
	if req.Page <= 0 {
		req.Page = DefaultPage
	}

	total := len(filtered)
	start := min((req.Page-1)*req.Size, total)
	end := min(start+req.Size, total)

	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Size - 1) / req.Size
	}
	summary.Total = total

	return models.PaymentList{
		Meta: models.PaymentPage{
			Total:      total,
			TotalPages: totalPages,
			Page:       req.Page,
			Size:       req.Size,
			Data:       filtered[start:end],
		},
		Summary: summary,
	}
}

// Review отмечает платёж проверенным. Доступно только роли operational.
func (s *Service) Review(_ context.Context, role models.Role, id string) error {
	const op = "devserver.Review"
	if !role.CanReview() {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	if err := s.store.MarkReviewed(id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment reviewed", sl.Op(op), slog.String("payment_id", id))
	return nil
}
