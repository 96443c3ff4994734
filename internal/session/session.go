// Package session хранит единственную авторитетную копию сессии процесса
// и зеркалирует её в долговременное хранилище.
//
// Каждое изменение сразу пишется в хранилище, отдельного шага сохранения нет.
// Вход атомарен: либо обновляются все три поля, либо ни одного.
// Взаимного исключения между конкурентными входами нет, побеждает последняя запись.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
	"github.com/magabrotheeeer/payment-dashboard/internal/storage"
)

// Authenticator обменивает учётные данные на токен и роль.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (string, models.Role, error)
}

// Store сессия текущего пользователя.
type Store struct {
	mu      sync.RWMutex
	current models.Session

	kv   storage.KV
	auth Authenticator
	log  *slog.Logger
}

// New создаёт Store и восстанавливает сессию из kv. Отсутствие ключей даёт
// неаутентифицированную сессию. Роль, не входящая в перечисление, игнорируется.
func New(ctx context.Context, kv storage.KV, auth Authenticator, log *slog.Logger) (*Store, error) {
	const op = "session.New"
	s := &Store{kv: kv, auth: auth, log: log}
	log = log.With(sl.Op(op))

	token, _, err := kv.Get(ctx, storage.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rawRole, hasRole, err := kv.Get(ctx, storage.KeyRole)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	email, _, err := kv.Get(ctx, storage.KeyEmail)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var role models.Role
	if hasRole {
		role, err = models.ParseRole(rawRole)
		if err != nil {
			log.Warn("ignoring stored role", sl.Err(err))
		}
	}

	s.current = models.Session{Token: token, Role: role, Email: email}
	log.Debug("session restored", slog.Bool("authenticated", s.current.Authenticated()))
	return s, nil
}

// Login аутентифицирует пользователя, записывает token/role/email в хранилище
// и затем в память. При любой ошибке состояние не меняется, ошибка возвращается как есть.
func (s *Store) Login(ctx context.Context, email, password string) error {
	const op = "session.Login"

	token, role, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = s.kv.SetMany(ctx, map[string]string{
		storage.KeyToken: token,
		storage.KeyRole:  string(role),
		storage.KeyEmail: email,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.current = models.Session{Token: token, Role: role, Email: email}
	s.mu.Unlock()

	s.log.Info("logged in", sl.Op(op), slog.String("email", email), slog.String("role", string(role)))
	return nil
}

// Logout очищает сессию в памяти и всё пространство имён хранилища,
// включая ключи, не относящиеся к сессии. Ошибка очистки только логируется.
func (s *Store) Logout(ctx context.Context) {
	const op = "session.Logout"

	s.mu.Lock()
	s.current = models.Session{}
	s.mu.Unlock()

	if err := s.kv.Clear(ctx); err != nil {
		s.log.Warn("failed to clear storage", sl.Op(op), sl.Err(err))
		return
	}
	s.log.Info("logged out", sl.Op(op))
}

// Snapshot возвращает копию текущей сессии.
func (s *Store) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token возвращает токен сессии или пустую строку.
func (s *Store) Token() string {
	return s.Snapshot().Token
}

// Role возвращает роль сессии или пустую роль.
func (s *Store) Role() models.Role {
	return s.Snapshot().Role
}

// Email возвращает email сессии или пустую строку.
func (s *Store) Email() string {
	return s.Snapshot().Email
}

// Authenticated сообщает, есть ли токен.
func (s *Store) Authenticated() bool {
	return s.Snapshot().Authenticated()
}
