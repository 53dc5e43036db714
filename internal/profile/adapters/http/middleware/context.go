// Package middleware содержит промежуточное ПО HTTP сервера профилей.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"devprofile/internal/profile/domain/services"
)

const (
	localsRequestContext = "userContext"
	localsClaims         = "claims"
)

// RequestContext возвращает контекст запроса, обогащенный middleware.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(localsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

func setRequestContext(ctx fiber.Ctx, requestCtx context.Context) {
	ctx.Locals(localsRequestContext, requestCtx)
}

// Claims возвращает данные access-токена, сохраненные NewAuthMiddleware.
func Claims(ctx fiber.Ctx) (*services.JWTClaims, bool) {
	claims, ok := ctx.Locals(localsClaims).(*services.JWTClaims)
	return claims, ok && claims != nil
}
