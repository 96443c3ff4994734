// Package middlewarectx содержит HTTP middleware бэкенда-заглушки.
//
// JWTMiddleware проверяет bearer-токен в заголовке Authorization и в случае успеха
// добавляет в контекст email и роль для дальнейшего использования в обработчиках.
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/payment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// Email — ключ для email пользователя в контексте
	Email Key = "email"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				sl.Op(op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Info("missing authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing authorization header"))
				return
			}
			scheme, tokenStr, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || tokenStr == "" {
				log.Info("invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid authorization header"))
				return
			}

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), Email, claims.Email)
			ctx = context.WithValue(ctx, Role, models.Role(claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleFrom возвращает роль из контекста запроса.
func RoleFrom(ctx context.Context) models.Role {
	role, _ := ctx.Value(Role).(models.Role)
	return role
}

// EmailFrom возвращает email из контекста запроса.
func EmailFrom(ctx context.Context) string {
	email, _ := ctx.Value(Email).(string)
	return email
}
