// Package auth содержит клиентскую логику аутентификации: обмен учётных данных
// на токен и роль через POST /auth/login. Выхода на сервере нет, logout чисто локальный.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
)

// ErrInvalidInput возвращается, если учётные данные не прошли локальную проверку.
var ErrInvalidInput = errors.New("invalid credentials input")

// ErrEmptyToken возвращается, если сервер ответил успехом без токена.
var ErrEmptyToken = errors.New("empty token in login response")

// Transport описывает HTTP-транспорт к API.
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Service отвечает за вход пользователя.
type Service struct {
	api      Transport
	validate *validator.Validate
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(api Transport, log *slog.Logger) *Service {
	return &Service{
		api:      api,
		validate: validator.New(),
		log:      log,
	}
}

// Authenticate отправляет учётные данные и возвращает токен и роль.
// Роль вне известного перечисления считается фатальной ошибкой аутентификации.
func (s *Service) Authenticate(ctx context.Context, email, password string) (token string, role models.Role, err error) {
	const op = "services.auth.Authenticate"
	log := s.log.With(sl.Op(op), slog.String("email", email))

	creds := models.Credentials{Email: email, Password: password}
	if err := s.validate.Struct(creds); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return "", "", fmt.Errorf("%s: %w: %s", op, ErrInvalidInput, describe(verrs))
		}
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	var resp models.LoginResponse
	if err := s.api.Do(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		log.Info("login rejected", sl.Err(err))
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if resp.Token == "" {
		return "", "", fmt.Errorf("%s: %w", op, ErrEmptyToken)
	}

	role, err = models.ParseRole(resp.Role)
	if err != nil {
		log.Error("server returned unknown role", sl.Err(err))
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("login success", slog.String("role", string(role)))
	return resp.Token, role, nil
}

func describe(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
