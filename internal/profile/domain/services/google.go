package services

import "errors"

// Ошибки проверки Google ID-токена.
var (
	ErrInvalidGoogleToken  = errors.New("invalid google id token")
	ErrGoogleEmailNotFound = errors.New("google account has no verified email")
)

// GoogleIdentity - проверенные данные из Google ID-токена.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}
