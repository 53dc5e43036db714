// Package services определяет порты внешних сервисов.
package services

import (
	"context"
	"time"

	"devprofile/internal/profile/domain/services"
)

// TokenService выпускает и проверяет JWT.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, role string) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, userID string) (string, time.Time, error)
	ValidateAccessToken(ctx context.Context, token string) (*services.JWTClaims, error)
}

// GoogleVerifier проверяет Google ID-токен.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*services.GoogleIdentity, error)
}

// Clock возвращает текущее время.
type Clock interface {
	Now() time.Time
}
