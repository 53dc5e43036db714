// Package app содержит обработчики команд и запросов профиля разработчика.
package app

import "fmt"

// ErrorKind - класс ожидаемой бизнес-ошибки.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindFailure
	KindUnauthorized
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "failure"
	}
}

// Коды ошибок, возвращаемые клиенту.
const (
	CodeValidation      = "validation.failed"
	CodeProfileNotFound = "profile.not_found"
	CodeProfileExists   = "profile.already_exists"
	CodeProfileUpdate   = "profile.update_failed"
	CodeProjectNotFound = "project.not_found"
	CodeMediaTooLarge   = "media.too_large"
	CodeMediaType       = "media.unsupported_type"
	CodeInvalidToken    = "auth.invalid_token"
	CodeForbidden       = "auth.forbidden"
	CodeResumeRendering = "resume.render_failed"
	CodeProfileCreate   = "profile.create_failed"
	CodeFailure         = "internal.failure"
	CodeInvalidMedia    = "media.invalid"
)

// FieldViolation - нарушение правила для одного поля.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error - бизнес-ошибка, возвращаемая внутри Result.
type Error struct {
	Kind    ErrorKind        `json:"-"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Details []FieldViolation `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func ValidationFailed(details ...FieldViolation) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: "request validation failed", Details: details}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func Failure(code, message string) *Error {
	return &Error{Kind: KindFailure, Code: code, Message: message}
}

func Unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

func Forbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

// Result - либо значение, либо бизнес-ошибка. Вызывающий код ветвится по IsSuccess.
type Result[T any] struct {
	value T
	err   *Error
}

// Ok создает успешный результат.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail создает неуспешный результат. nil заменяется общей ошибкой.
func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = Failure(CodeFailure, "unknown failure")
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool { return r.err == nil }

// Value возвращает значение успешного результата.
func (r Result[T]) Value() T { return r.value }

// Err возвращает бизнес-ошибку или nil.
func (r Result[T]) Err() *Error { return r.err }

// Empty - значение для команд без полезной нагрузки.
type Empty struct{}
