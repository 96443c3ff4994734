// Package models содержит доменные типы клиента дашборда: сессию пользователя,
// учётные данные и записи о платежах в том виде, в каком их отдаёт бэкенд.
package models

import (
	"errors"
	"fmt"
)

// ErrUnknownRole возвращается, если сервер прислал роль вне известного перечисления.
var ErrUnknownRole = errors.New("unknown role")

// Role роль сотрудника. Возможны ровно два значения.
type Role string

const (
	// RoleCS — сотрудник поддержки, только просмотр.
	RoleCS Role = "cs"
	// RoleOperational — операционист, может отмечать платежи проверенными.
	RoleOperational Role = "operational"
)

// ParseRole разбирает роль из ответа сервера или хранилища.
// Написание "operation" из контракта логина считается синонимом RoleOperational.
func ParseRole(s string) (Role, error) {
	switch s {
	case string(RoleCS):
		return RoleCS, nil
	case string(RoleOperational), "operation":
		return RoleOperational, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// CanReview сообщает, может ли роль отмечать платежи проверенными.
func (r Role) CanReview() bool {
	return r == RoleOperational
}

// Session текущая сессия пользователя. Нулевое значение — неаутентифицированная сессия.
type Session struct {
	Token string
	Role  Role
	Email string
}

// Authenticated сообщает, есть ли в сессии токен.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Credentials учётные данные для входа. Никогда не сохраняются.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse ответ POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
