package middlewarectx

import (
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/jwt"
)

// TokenParser проверяет JWT и возвращает его claims.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}
