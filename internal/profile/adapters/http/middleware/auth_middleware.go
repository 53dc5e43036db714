package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/ports/api"
	"devprofile/pkg/logger"
)

// Сообщения auth middleware.
const (
	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired access token"
	ErrorAdminRequired      = "administrator role required"

	codeUnauthorized = "auth.invalid_token"
	codeForbidden    = "auth.forbidden"
)

func reject(ctx fiber.Ctx, status int, code, message string) error {
	return ctx.Status(status).JSON(fiber.Map{"code": code, "message": message})
}

// NewAuthMiddleware проверяет Bearer access-токен и сохраняет его claims в Locals.
func NewAuthMiddleware(auth api.AuthUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return reject(ctx, fiber.StatusUnauthorized, codeUnauthorized, ErrorNoAuthHeader)
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return reject(ctx, fiber.StatusUnauthorized, codeUnauthorized, ErrorInvalidTokenFormat)
		}

		claims, err := auth.Authenticate(requestCtx, strings.TrimSpace(token))
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return reject(ctx, fiber.StatusUnauthorized, codeUnauthorized, ErrorInvalidToken)
		}

		ctx.Locals(localsClaims, claims)
		setRequestContext(ctx, logger.NewContext(requestCtx, logger.Log(requestCtx).With(zap.String("userID", claims.UserID))))

		return ctx.Next()
	}
}

// NewAdminMiddleware пропускает только администраторов. Ставится после NewAuthMiddleware.
func NewAdminMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		claims, ok := Claims(ctx)
		if !ok {
			return reject(ctx, fiber.StatusUnauthorized, codeUnauthorized, ErrorNoAuthHeader)
		}
		if claims.Role != entities.RoleAdmin {
			requestCtx := RequestContext(ctx)
			logger.Log(requestCtx).Debug(requestCtx, ErrorAdminRequired, zap.String("role", claims.Role))
			return reject(ctx, fiber.StatusForbidden, codeForbidden, ErrorAdminRequired)
		}
		return ctx.Next()
	}
}
