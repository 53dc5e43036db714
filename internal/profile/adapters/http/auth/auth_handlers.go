// Package auth содержит HTTP обработчики входа через Google и управления сессиями.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"devprofile/internal/profile/adapters/http/middleware"
	"devprofile/internal/profile/domain/services"
	"devprofile/internal/profile/ports/api"
	"devprofile/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerGoogleLogin   = "auth handler: google login"
	LogHandlerRefreshTokens = "auth handler: refresh tokens" // #nosec G101 - not a credential
	LogHandlerLogout        = "auth handler: logout"
	LogHandlerLogoutAll     = "auth handler: logout all"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// GoogleLoginRequest - ID-токен, полученный клиентом от Google.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

// RefreshRequest - запрос с refresh-токеном.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse - выданная пара токенов.
type TokenResponse struct {
	UserID       string    `json:"userId"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func sendErrorResponse(ctx fiber.Ctx, statusCode int, code, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"code":    code,
		"message": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendTokens(ctx fiber.Ctx, pair *services.TokenPair) error {
	if err := ctx.Status(fiber.StatusOK).JSON(TokenResponse{
		UserID:       pair.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// isAuthFailure отделяет отказ в доступе от внутренних ошибок.
func isAuthFailure(err error) bool {
	return errors.Is(err, services.ErrInvalidGoogleToken) ||
		errors.Is(err, services.ErrGoogleEmailNotFound) ||
		errors.Is(err, services.ErrInvalidRefreshToken) ||
		errors.Is(err, services.ErrRevokedRefreshToken) ||
		errors.Is(err, services.ErrExpiredRefreshToken)
}

// Handler содержит HTTP обработчики авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
}

func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{authUseCase: authUseCase}
}

// GoogleLogin обменивает ID-токен Google на пару токенов сервиса.
func (h *Handler) GoogleLogin(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGoogleLogin)

	var req GoogleLoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, "validation.failed", ErrorInvalidRequest)
	}
	if req.IDToken == "" {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, "validation.failed", "idToken is required")
	}

	pair, err := h.authUseCase.LoginWithGoogle(requestCtx, req.IDToken)
	if err != nil {
		if isAuthFailure(err) {
			return sendErrorResponse(ctx, fiber.StatusUnauthorized, "auth.invalid_token", "google sign-in rejected")
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusInternalServerError, "internal.failure", ErrorFailedToServeRequest)
	}

	return sendTokens(ctx, pair)
}

// RefreshTokens ротирует пару токенов.
func (h *Handler) RefreshTokens(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefreshTokens)

	var req RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, "validation.failed", ErrorInvalidRequest)
	}
	if req.RefreshToken == "" {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, "validation.failed", "refreshToken is required")
	}

	pair, err := h.authUseCase.RefreshTokens(requestCtx, req.RefreshToken)
	if err != nil {
		if isAuthFailure(err) {
			return sendErrorResponse(ctx, fiber.StatusUnauthorized, "auth.invalid_token", "refresh token rejected")
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusInternalServerError, "internal.failure", ErrorFailedToServeRequest)
	}

	return sendTokens(ctx, pair)
}

// Logout отзывает переданный refresh-токен.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	var req RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil || req.RefreshToken == "" {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, "validation.failed", "refreshToken is required")
	}

	if err := h.authUseCase.Logout(requestCtx, req.RefreshToken); err != nil {
		if isAuthFailure(err) {
			return sendErrorResponse(ctx, fiber.StatusUnauthorized, "auth.invalid_token", "refresh token rejected")
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusInternalServerError, "internal.failure", ErrorFailedToServeRequest)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// LogoutAll закрывает все сессии текущего пользователя.
func (h *Handler) LogoutAll(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogoutAll)

	claims, ok := middleware.Claims(ctx)
	if !ok {
		return sendErrorResponse(ctx, fiber.StatusUnauthorized, "auth.invalid_token", middleware.ErrorNoAuthHeader)
	}

	if err := h.authUseCase.LogoutAll(requestCtx, claims.UserID); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusInternalServerError, "internal.failure", ErrorFailedToServeRequest)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
