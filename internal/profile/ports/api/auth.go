// Package api определяет сценарии, которые вызывает транспортный слой.
package api

import (
	"context"

	"devprofile/internal/profile/domain/services"
)

// AuthUseCase - вход через Google и управление сессиями.
type AuthUseCase interface {
	LoginWithGoogle(ctx context.Context, idToken string) (*services.TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID string) error
	Authenticate(ctx context.Context, accessToken string) (*services.JWTClaims, error)
}
