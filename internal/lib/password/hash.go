// Package password хеширует пароли seed-пользователей dev-сервера и проверяет их при входе.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch пароль не совпал с хэшем.
var ErrMismatch = errors.New("password mismatch")

// Hash возвращает bcrypt-хэш пароля с указанной стоимостью.
// Стоимость вне допустимого диапазона заменяется на bcrypt.DefaultCost.
func Hash(password string, cost int) (string, error) {
	const op = "password.Hash"
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сверяет пароль с bcrypt-хэшем. Несовпадение возвращается как ErrMismatch.
func Compare(hash, password string) error {
	const op = "password.Compare"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
