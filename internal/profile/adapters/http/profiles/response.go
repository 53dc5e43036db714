// Package profiles содержит HTTP обработчики профилей, каталога и загрузки медиа.
package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"devprofile/internal/profile/adapters/http/middleware"
	"devprofile/internal/profile/app"
	"devprofile/internal/profile/domain/entities"
	"devprofile/pkg/logger"
)

const (
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorInvalidRequest       = "invalid request body"
	ErrorNotImplemented       = "operation is not available"
)

// StatusFor отображает класс бизнес-ошибки в HTTP статус.
func StatusFor(kind app.ErrorKind) int {
	switch kind {
	case app.KindValidation:
		return fiber.StatusBadRequest
	case app.KindNotFound:
		return fiber.StatusNotFound
	case app.KindConflict:
		return fiber.StatusConflict
	case app.KindUnauthorized:
		return fiber.StatusUnauthorized
	case app.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func sendAppError(ctx fiber.Ctx, appErr *app.Error) error {
	if err := ctx.Status(StatusFor(appErr.Kind)).JSON(appErr); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func badRequest(ctx fiber.Ctx, field, message string) error {
	var details []app.FieldViolation
	if field != "" {
		details = append(details, app.FieldViolation{Field: field, Message: message})
	}
	return sendAppError(ctx, app.ValidationFailed(details...))
}

// handleError отвечает на ошибку, пришедшую не через Result.
func handleError(ctx fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	var domainErr *entities.DomainError
	switch {
	case errors.As(err, &domainErr) && domainErr.Kind == entities.KindNotFound:
		log.Debug(requestCtx, "domain entity not found", zap.Error(err))
		return sendAppError(ctx, app.NotFound("entity.not_found", domainErr.Message))
	case errors.Is(err, app.ErrHandlerNotRegistered):
		log.Warn(requestCtx, ErrorNotImplemented, zap.Error(err))
		return sendAppError(ctx, &app.Error{Kind: app.KindFailure, Code: "internal.not_implemented", Message: ErrorNotImplemented})
	case errors.Is(err, context.Canceled):
		log.Debug(requestCtx, "request canceled", zap.Error(err))
	default:
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
	}
	return sendAppError(ctx, app.Failure(app.CodeFailure, ErrorFailedToServeRequest))
}

// dispatch отправляет команду в диспетчер и пишет ответ со статусом status.
func dispatch[R any, C any](ctx fiber.Ctx, d *app.Dispatcher, cmd C, status int) error {
	result, err := app.Dispatch[C, R](middleware.RequestContext(ctx), d, cmd)
	if err != nil {
		return handleError(ctx, err)
	}
	if !result.IsSuccess() {
		return sendAppError(ctx, result.Err())
	}
	if err := ctx.Status(status).JSON(result.Value()); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
