package profiles

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"devprofile/internal/profile/adapters/http/middleware"
	"devprofile/internal/profile/app"
	"devprofile/pkg/logger"
)

// Handler содержит HTTP обработчики профиля.
type Handler struct {
	dispatcher *app.Dispatcher
	baseURL    string
}

// NewHandler создает обработчики. baseURL - внешний адрес сервиса для ссылок на медиа;
// пустое значение означает адрес из запроса.
func NewHandler(dispatcher *app.Dispatcher, baseURL string) *Handler {
	return &Handler{dispatcher: dispatcher, baseURL: baseURL}
}

func (h *Handler) currentUser(ctx fiber.Ctx) (string, bool) {
	claims, ok := middleware.Claims(ctx)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

func unauthorized(ctx fiber.Ctx) error {
	return sendAppError(ctx, app.Unauthorized(app.CodeInvalidToken, middleware.ErrorNoAuthHeader))
}

// bindJSON разбирает тело запроса. false означает, что ответ уже отправлен.
func bindJSON(ctx fiber.Ctx, out any) (bool, error) {
	if err := ctx.Bind().JSON(out); err != nil {
		requestCtx := middleware.RequestContext(ctx)
		logger.Log(requestCtx).Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return false, badRequest(ctx, "body", ErrorInvalidRequest)
	}
	return true, nil
}

// GetProfile отдает публичный профиль по идентификатору.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, app.GetProfileQuery{ID: ctx.Params("id")}, fiber.StatusOK)
}

// GetMyProfile отдает профиль текущего пользователя.
func (h *Handler) GetMyProfile(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, app.GetProfileQuery{ID: userID}, fiber.StatusOK)
}

// CreateProfile создает профиль текущего пользователя.
func (h *Handler) CreateProfile(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var input app.ProfileInput
	if ok, err := bindJSON(ctx, &input); !ok {
		return err
	}
	cmd := app.CreateProfileCommand{UserID: userID, Profile: input}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusCreated)
}

// ReplaceProfile заменяет все редактируемые поля профиля.
func (h *Handler) ReplaceProfile(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var input app.ProfileInput
	if ok, err := bindJSON(ctx, &input); !ok {
		return err
	}
	cmd := app.ReplaceProfileCommand{UserID: userID, Profile: input}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}

func (h *Handler) DeleteProfile(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	result, err := app.Dispatch[app.DeleteProfileCommand, app.Empty](
		middleware.RequestContext(ctx), h.dispatcher, app.DeleteProfileCommand{UserID: userID})
	if err != nil {
		return handleError(ctx, err)
	}
	if !result.IsSuccess() {
		return sendAppError(ctx, result.Err())
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) UpdateHeader(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var cmd app.UpdateHeaderCommand
	if ok, err := bindJSON(ctx, &cmd); !ok {
		return err
	}
	cmd.UserID = userID
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}

func (h *Handler) UpdateSummary(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var cmd app.UpdateSummaryCommand
	if ok, err := bindJSON(ctx, &cmd); !ok {
		return err
	}
	cmd.UserID = userID
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}

func (h *Handler) UpdateContacts(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var cmd app.UpdateContactsCommand
	if ok, err := bindJSON(ctx, &cmd); !ok {
		return err
	}
	cmd.UserID = userID
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}

// ReplaceSkills заменяет список навыков целиком, сохраняя порядок.
func (h *Handler) ReplaceSkills(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var cmd app.ReplaceSkillsCommand
	if ok, err := bindJSON(ctx, &cmd); !ok {
		return err
	}
	cmd.UserID = userID
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}

// SetVerification меняет статус проверки чужого профиля. Доступно администратору.
func (h *Handler) SetVerification(ctx fiber.Ctx) error {
	var cmd app.SetVerificationCommand
	if ok, err := bindJSON(ctx, &cmd); !ok {
		return err
	}
	cmd.ProfileID = ctx.Params("id")
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}
