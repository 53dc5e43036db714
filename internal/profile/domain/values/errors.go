// Package values содержит неизменяемые объекты-значения профиля разработчика.
// Каждый конструктор проверяет входные данные и никогда не возвращает невалидный объект.
package values

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrValidation - общий класс ошибок построения объектов-значений.
var ErrValidation = errors.New("validation failed")

// ValidationError описывает нарушение правила для конкретного поля.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is позволяет сравнивать любую ValidationError с ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// boundedText обрезает пробелы и проверяет длину в символах.
func boundedText(field, value string, maxLen int, required bool) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		if required {
			return "", invalid(field, "must not be empty")
		}
		return "", nil
	}
	if utf8.RuneCountInString(v) > maxLen {
		return "", invalid(field, "must be at most %d characters", maxLen)
	}
	return v, nil
}
