// Package services содержит доменные типы аутентификации.
package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrRevokedRefreshToken   = errors.New("refresh token has been revoked")
	ErrExpiredRefreshToken   = errors.New("refresh token has expired")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication tokens")
)

// TokenPair - пара токенов, выдаваемая после входа.
type TokenPair struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// RefreshToken - сохраненный refresh-токен.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	IsRevoked bool
}
