// Package login реализует HTTP-обработчик POST /auth/login бэкенда-заглушки.
//
// Тело запроса {email, password} декодируется и валидируется, при успехе
// возвращается {token, role}; неверные учётные данные дают 401.
package login

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/payment-dashboard/internal/devserver"
	"github.com/magabrotheeeer/payment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
)

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Бизнес-логика входа
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	token, role, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, devserver.ErrInvalidCredentials) {
		log.Info("invalid credentials", slog.String("email", req.Email))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Invalid credential"))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("login success", slog.String("email", req.Email), slog.String("role", string(role)))
	render.JSON(w, r, models.LoginResponse{Token: token, Role: string(role)})
}
