// Package devserver содержит бизнес-логику бэкенда-заглушки для локальной разработки:
// seed-пользователей, платежи в памяти, вход с выдачей JWT, список и отметку проверки.
package devserver

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/payment-dashboard/internal/lib/password"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
)

var (
	// ErrNotFound платёж не найден.
	ErrNotFound = errors.New("payment not found")
	// ErrInvalidCredentials неверный email или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden роль не позволяет операцию.
	ErrForbidden = errors.New("forbidden")
)

// User seed-пользователь.
type User struct {
	Email        string
	PasswordHash string
	Role         models.Role
}

// Store хранилище пользователей и платежей в памяти.
type Store struct {
	mu       sync.RWMutex
	users    map[string]User
	payments map[string]models.Payment
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		users:    map[string]User{},
		payments: map[string]models.Payment{},
	}
}

// Seed заполняет хранилище двумя сотрудниками с паролем seedPassword
// и count платежами с датами от now назад по дню.
func (s *Store) Seed(seedPassword string, cost int, count int, now time.Time) error {
	hash, err := password.Hash(seedPassword, cost)
	if err != nil {
		return err
	}
	s.PutUser(User{Email: "john-cs@durianpay.id", PasswordHash: hash, Role: models.RoleCS})
	s.PutUser(User{Email: "jane-operational@durianpay.id", PasswordHash: hash, Role: models.RoleOperational})

	statuses := []models.PaymentStatus{models.StatusCompleted, models.StatusProcessing, models.StatusFailed}
	for i := range count {
		id := uuid.NewString()
		s.PutPayment(models.Payment{
			ID:           id,
			MerchantName: "Merchant" + id[:6],
			Date:         now.Add(time.Duration(-i) * 24 * time.Hour),
			Amount:       float64(10000 + i*25),
			Status:       statuses[i%len(statuses)],
		})
	}
	return nil
}

// PutUser добавляет или заменяет пользователя.
func (s *Store) PutUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Email] = u
}

// UserByEmail возвращает пользователя по email.
func (s *Store) UserByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	return u, ok
}

// PutPayment добавляет или заменяет платёж.
func (s *Store) PutPayment(p models.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID] = p
}

// Payments возвращает копию всех платежей в порядке id.
func (s *Store) Payments() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b models.Payment) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// MarkReviewed отмечает платёж проверенным.
func (s *Store) MarkReviewed(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return ErrNotFound
	}
	p.Reviewed = true
	s.payments[id] = p
	return nil
}

// Count возвращает количество платежей.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payments)
}
