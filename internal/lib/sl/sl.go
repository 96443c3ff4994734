// Package sl содержит вспомогательные функции для работы с логгером slog:
// единообразные атрибуты для ошибок и имени операции, а также сборку логгера по окружению.
package sl

import (
	"io"
	"log/slog"
)

// Окружения, от которых зависит формат и уровень логов.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op возвращает атрибут с именем операции.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}

// New собирает логгер для окружения env: text/debug локально,
// text/info в dev и json/info в prod.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case EnvProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case EnvDev:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// Discard возвращает логгер, который ничего не пишет.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}
