package middleware

import (
	"github.com/gofiber/fiber/v3"

	"devprofile/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или генерирует новый
// и кладет его в контекст логгера.
func NewRequestIDMiddleware(log *logger.Logger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		if log != nil {
			requestCtx = logger.NewContext(requestCtx, log)
		}

		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}
		setRequestContext(ctx, requestCtx)

		return ctx.Next()
	}
}
