package profiles

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v3"

	"devprofile/internal/profile/app"
)

// FormFileField - имя поля multipart-формы с файлом.
const FormFileField = "file"

func (h *Handler) resolveBaseURL(ctx fiber.Ctx) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	return ctx.BaseURL()
}

func openUpload(ctx fiber.Ctx) (*multipart.FileHeader, multipart.File, bool, error) {
	header, err := ctx.FormFile(FormFileField)
	if err != nil {
		return nil, nil, false, badRequest(ctx, FormFileField, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, false, handleError(ctx, fmt.Errorf("opening uploaded file: %w", err))
	}
	return header, file, true, nil
}

// UploadAvatar принимает multipart-форму с изображением и меняет аватар.
func (h *Handler) UploadAvatar(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	header, file, ok, err := openUpload(ctx)
	if !ok {
		return err
	}
	defer file.Close()

	cmd := app.UploadAvatarCommand{
		UserID:      userID,
		Content:     file,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		BaseURL:     h.resolveBaseURL(ctx),
	}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}

// UploadProjectImage меняет иконку проекта.
func (h *Handler) UploadProjectImage(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	header, file, ok, err := openUpload(ctx)
	if !ok {
		return err
	}
	defer file.Close()

	cmd := app.UploadProjectImageCommand{
		UserID:      userID,
		ProjectID:   ctx.Params("projectId"),
		Content:     file,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		BaseURL:     h.resolveBaseURL(ctx),
	}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}
