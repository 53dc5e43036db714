package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"devprofile/internal/profile/domain/services"
	svc "devprofile/internal/profile/ports/services"
	"devprofile/pkg/logger"
)

const (
	methodGenerateAccessToken  = "GenerateAccessToken"
	methodGenerateRefreshToken = "GenerateRefreshToken"
	methodValidateAccessToken  = "ValidateAccessToken"
	msgTokenGenerated          = "token generated successfully"
	msgTokenValidated          = "token validated successfully"
	msgTokenExpired            = "token has expired"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxValidatingToken = "validating token"
)

// Claims - представление доменных claims для библиотеки JWT.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ServiceJWT выпускает и проверяет токены HS256.
type ServiceJWT struct {
	config services.JWTConfig
	clock  svc.Clock
}

// NewJWT создает сервис JWT. Пустой clock заменяется системными часами.
func NewJWT(config services.JWTConfig, clock svc.Clock) *ServiceJWT {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ServiceJWT{config: config, clock: clock}
}

func (s *ServiceJWT) toJWTClaims(claims services.JWTClaims) Claims {
	return Claims{
		UserID: claims.UserID,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   claims.UserID,
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		},
	}
}

func toDomainClaims(claims Claims) services.JWTClaims {
	var expiresAt, issuedAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	return services.JWTClaims{
		UserID:    claims.UserID,
		Role:      claims.Role,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
}

// GenerateAccessToken выпускает access-токен с ролью пользователя.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, userID, role string) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGenerateAccessToken), zap.String("userID", userID))
	return s.sign(ctx, log, userID, role, s.config.AccessTokenTTL)
}

// GenerateRefreshToken выпускает refresh-токен. Уникальный jti исключает совпадение двух токенов.
func (s *ServiceJWT) GenerateRefreshToken(ctx context.Context, userID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGenerateRefreshToken), zap.String("userID", userID))
	return s.sign(ctx, log, userID, "", s.config.RefreshTokenTTL)
}

func (s *ServiceJWT) sign(ctx context.Context, log *logger.Logger, userID, role string, ttl time.Duration) (string, time.Time, error) {
	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := s.clock.Now()
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, s.toJWTClaims(services.JWTClaims{
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}))

	signed, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return signed, expiresAt, nil
}

// ValidateAccessToken проверяет подпись, срок действия и издателя токена.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateAccessToken))

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.config.SecretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, services.ErrInvalidJWTToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		log.Debug(ctx, "token has no user_id claim")
		return nil, fmt.Errorf("%s: %w: empty user_id", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	domainClaims := toDomainClaims(*claims)
	log.Debug(ctx, msgTokenValidated, zap.String("userID", domainClaims.UserID))
	return &domainClaims, nil
}
