// Package response содержит вспомогательные типы и функции для формирования
// JSON-ответов об ошибках в формате бэкенда дашборда: {"error": "..."}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse описывает тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}
