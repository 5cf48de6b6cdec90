// Package sl содержит вспомогательные функции для структурированного логгера slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Используется во всех обработчиках для единообразного вывода ошибок.
//
// Пример:
//
//	log.Error("failed to launch campaign", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
