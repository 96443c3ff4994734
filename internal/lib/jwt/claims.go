// Package jwt реализует генерацию и парсинг JWT токенов дашборда.
//
// Maker определяет интерфейс для создания и проверки токенов с email и ролью.
// MakerImpl — реализация на HMAC-SHA256 с секретным ключом и сроком жизни токена.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"email"` // Email сотрудника
	Role                 string `json:"role"`  // Роль: cs или operational
	jwt.RegisteredClaims        // Стандартные claims (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс для генерации и проверки JWT токенов.
type Maker interface {
	GenerateToken(email, role string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
