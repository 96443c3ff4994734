// Package storage реализует долговременное key-value хранилище сессии.
// Значения — строки без структурного кодирования, отсутствие ключа означает отсутствие поля.
// Каждый бэкенд ограничен своим пространством имён: Clear удаляет всё в нём.
package storage

import "context"

// Ключи сессии.
const (
	KeyToken = "token"
	KeyRole  = "role"
	KeyEmail = "email"
)

// KV долговременное key-value хранилище.
type KV interface {
	// Get возвращает значение ключа и признак его наличия.
	Get(ctx context.Context, key string) (string, bool, error)
	// SetMany атомарно записывает все значения: либо все, либо ни одного.
	SetMany(ctx context.Context, values map[string]string) error
	// Clear удаляет все ключи пространства имён.
	Clear(ctx context.Context) error
}
