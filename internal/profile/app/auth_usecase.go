package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/services"
	"devprofile/internal/profile/ports/api"
	"devprofile/internal/profile/ports/repositories"
	svc "devprofile/internal/profile/ports/services"
	"devprofile/pkg/logger"
)

const (
	methodLoginWithGoogle = "LoginWithGoogle"
	methodRefreshTokens   = "RefreshTokens"
	methodLogout          = "Logout"
	methodLogoutAll       = "LogoutAll"
	methodAuthenticate    = "Authenticate"
	methodGenerateTokens  = "generateTokenPair"

	msgLoginAttempt        = "google login attempt"
	msgUserCreated         = "user created on first login"
	msgUserLoggedIn        = "user logged in successfully"
	msgRefreshingTokens    = "refreshing tokens"
	msgRevokedTokenAttempt = "attempt to use revoked token"
	msgExpiredTokenAttempt = "attempt to use expired token"
	msgTokensRefreshed     = "tokens refreshed successfully"
	msgUserLoggedOut       = "user logged out successfully"
	msgAllSessionsClosed   = "all user sessions revoked"
	msgTokenPairGenerated  = "token pair generated successfully"

	msgErrVerifyGoogleToken    = "google id token rejected"
	msgErrFindingUser          = "failed to find user"
	msgErrCreateUser           = "failed to create user"
	msgErrInvalidRefreshToken  = "invalid refresh token"
	msgErrRevokingOldToken     = "failed to revoke old token"
	msgErrRevokingToken        = "failed to revoke refresh token"
	msgErrGenerateAccessToken  = "failed to generate access token"
	msgErrGenerateRefreshToken = "failed to generate refresh token"
	msgErrStoreRefreshToken    = "failed to store refresh token"

	errCtxVerifyingGoogleToken   = "verifying google token"
	errCtxFindingUser            = "finding user"
	errCtxCreatingUser           = "creating user"
	errCtxGeneratingTokens       = "generating tokens"
	errCtxFindingRefreshToken    = "finding refresh token"
	errCtxTokenRevoked           = "token revoked"
	errCtxTokenExpired           = "token expired"
	errCtxRevokingOldToken       = "revoking old token"
	errCtxRevokingToken          = "revoking token"
	errCtxRevokingAllTokens      = "revoking all user tokens"
	errCtxGeneratingAccessToken  = "generating access token"
	errCtxGeneratingRefreshToken = "generating refresh token"
	errCtxStoringRefreshToken    = "storing refresh token"
	errCtxValidatingAccessToken  = "validating access token"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
	tokenSvc  svc.TokenService
	google    svc.GoogleVerifier
	clock     svc.Clock
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	tokenSvc svc.TokenService,
	google svc.GoogleVerifier,
	clock svc.Clock,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokenSvc:  tokenSvc,
		google:    google,
		clock:     clock,
	}
}

// LoginWithGoogle проверяет ID-токен Google и выдает пару токенов.
// Пользователь создается при первом входе.
func (a *AuthUseCaseImpl) LoginWithGoogle(ctx context.Context, idToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLoginWithGoogle))
	log.Debug(ctx, msgLoginAttempt)

	identity, err := a.google.Verify(ctx, idToken)
	if err != nil {
		log.Debug(ctx, msgErrVerifyGoogleToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingGoogleToken, err)
	}
	if strings.TrimSpace(identity.Email) == "" || !identity.EmailVerified {
		log.Debug(ctx, msgErrVerifyGoogleToken, zap.String("subject", identity.Subject))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingGoogleToken, services.ErrGoogleEmailNotFound)
	}

	user, err := a.userRepo.FindByGoogleSubject(ctx, identity.Subject)
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		now := a.clock.Now()
		user, err = a.userRepo.Create(ctx, &entities.User{
			ID:            uuid.NewString(),
			GoogleSubject: identity.Subject,
			Email:         identity.Email,
			DisplayName:   identity.Name,
			PictureURL:    identity.Picture,
			Role:          entities.RoleUser,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			log.Error(ctx, msgErrCreateUser, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
		}
		log.Info(ctx, msgUserCreated, zap.String("userID", user.ID))
	case err != nil:
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	tokenPair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return tokenPair, nil
}

// RefreshTokens отзывает старый refresh-токен и выдает новую пару.
func (a *AuthUseCaseImpl) RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefreshTokens))
	log.Debug(ctx, msgRefreshingTokens)

	token, err := a.tokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		log.Debug(ctx, msgErrInvalidRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingRefreshToken, services.ErrInvalidRefreshToken)
	}

	log = log.With(zap.String("userID", token.UserID))

	if token.IsRevoked {
		log.Debug(ctx, msgRevokedTokenAttempt)
		return nil, fmt.Errorf("%s: %w", errCtxTokenRevoked, services.ErrRevokedRefreshToken)
	}
	if !token.ExpiresAt.After(a.clock.Now()) {
		log.Debug(ctx, msgExpiredTokenAttempt)
		return nil, fmt.Errorf("%s: %w", errCtxTokenExpired, services.ErrExpiredRefreshToken)
	}

	user, err := a.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := a.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		log.Error(ctx, msgErrRevokingOldToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxRevokingOldToken, err)
	}

	tokenPair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgTokensRefreshed)
	return tokenPair, nil
}

// Logout отзывает токен.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))

	if err := a.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		log.Error(ctx, msgErrRevokingToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// LogoutAll отзывает все refresh-токены пользователя.
func (a *AuthUseCaseImpl) LogoutAll(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogoutAll), zap.String("userID", userID))

	if userID == "" {
		return fmt.Errorf("%s: %w", errCtxRevokingAllTokens, entities.ErrEmptyUserID)
	}
	if err := a.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		log.Error(ctx, msgErrRevokingToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingAllTokens, err)
	}

	log.Info(ctx, msgAllSessionsClosed)
	return nil
}

// Authenticate проверяет access-токен.
func (a *AuthUseCaseImpl) Authenticate(ctx context.Context, accessToken string) (*services.JWTClaims, error) {
	claims, err := a.tokenSvc.ValidateAccessToken(ctx, accessToken)
	if err != nil {
		logger.Log(ctx).Debug(ctx, errCtxValidatingAccessToken, zap.String("method", methodAuthenticate), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingAccessToken, err)
	}
	return claims, nil
}

func (a *AuthUseCaseImpl) generateTokenPair(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateTokens),
		zap.String("userID", user.ID),
	)

	accessToken, accessExpires, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID, user.Role)
	if err != nil {
		log.Error(ctx, msgErrGenerateAccessToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingAccessToken, services.ErrTokenGenerationFailed)
	}

	refreshToken, refreshExpires, err := a.tokenSvc.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingRefreshToken, services.ErrTokenGenerationFailed)
	}

	if err := a.tokenRepo.StoreRefreshToken(ctx, &services.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: refreshExpires,
		CreatedAt: a.clock.Now().UTC().Truncate(time.Microsecond),
	}); err != nil {
		log.Error(ctx, msgErrStoreRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxStoringRefreshToken, err)
	}

	log.Debug(ctx, msgTokenPairGenerated)

	return &services.TokenPair{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpires,
	}, nil
}
