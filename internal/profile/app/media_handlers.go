package app

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/values"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/internal/profile/ports/services"
	"devprofile/pkg/logger"
)

const (
	methodUploadAvatar       = "UploadAvatar"
	methodUploadProjectImage = "UploadProjectImage"
)

const (
	msgMediaSaved        = "media saved"
	msgStaleMediaDeleted = "stale media deleted"
	msgStaleMediaFailed  = "failed to delete stale media"
	msgStaleMediaForeign = "stale media belongs to another owner, skipping delete"
	errCtxSaveMedia      = "failed to save media"
)

// MediaHandlers загружает аватары и изображения проектов.
type MediaHandlers struct {
	repo       repositories.ProfileRepository
	clock      services.Clock
	validator  *Validator
	storage    services.MediaStorage
	publicPath string
	maxSize    int64
}

// NewMediaHandlers создает обработчики загрузки. publicPath - префикс URL, под которым
// раздаются сохраненные файлы, maxSize - предельный размер файла в байтах.
func NewMediaHandlers(
	repo repositories.ProfileRepository,
	clock services.Clock,
	validator *Validator,
	storage services.MediaStorage,
	publicPath string,
	maxSize int64,
) *MediaHandlers {
	return &MediaHandlers{
		repo:       repo,
		clock:      clock,
		validator:  validator,
		storage:    storage,
		publicPath: "/" + strings.Trim(publicPath, "/"),
		maxSize:    maxSize,
	}
}

// UploadAvatar сохраняет новый аватар и удаляет предыдущий, если он лежит в нашем хранилище.
func (h *MediaHandlers) UploadAvatar(ctx context.Context, cmd UploadAvatarCommand) (Result[ProfileDTO], error) {
	log := logger.Log(ctx).With(zap.String("method", methodUploadAvatar), zap.String("userID", cmd.UserID))

	if bErr := h.checkUpload(cmd, cmd.Content, cmd.Size); bErr != nil {
		return Fail[ProfileDTO](bErr), nil
	}

	profile, err := h.repo.GetByID(ctx, entities.DeveloperID(cmd.UserID))
	if err != nil {
		log.Error(ctx, errCtxLoadProfile, zap.Error(err))
		return Result[ProfileDTO]{}, wrapErr(errCtxLoadProfile, err)
	}
	if profile == nil {
		return Fail[ProfileDTO](NotFound(CodeProfileNotFound, msgProfileNotFound)), nil
	}

	var previous string
	if avatar := profile.Avatar(); avatar != nil {
		previous = avatar.String()
	}

	relative, err := h.storage.SaveAvatar(ctx, cmd.UserID, cmd.Content, cmd.ContentType)
	if err != nil {
		if bErr := mediaError(err); bErr != nil {
			return Fail[ProfileDTO](bErr), nil
		}
		log.Error(ctx, errCtxSaveMedia, zap.Error(err))
		return Result[ProfileDTO]{}, wrapErr(errCtxSaveMedia, err)
	}
	log.Debug(ctx, msgMediaSaved, zap.String("path", relative))

	avatarURL, err := values.NewURL(h.absoluteURL(cmd.BaseURL, relative))
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	result, err := mutate(ctx, h.repo, h.clock, methodUploadAvatar, cmd.UserID,
		func(p *entities.DeveloperProfile, now time.Time) (*Error, error) {
			avatar := values.NewAvatar(avatarURL)
			p.ChangeAvatar(&avatar, now)
			return nil, nil
		})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	h.deleteStale(ctx, log, cmd.BaseURL, services.AvatarDir(cmd.UserID), previous, relative)
	return result, nil
}

// UploadProjectImage сохраняет иконку проекта. Отсутствующий проект дает NotFound.
func (h *MediaHandlers) UploadProjectImage(ctx context.Context, cmd UploadProjectImageCommand) (Result[ProfileDTO], error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUploadProjectImage),
		zap.String("userID", cmd.UserID),
		zap.String("projectID", cmd.ProjectID),
	)

	if bErr := h.checkUpload(cmd, cmd.Content, cmd.Size); bErr != nil {
		return Fail[ProfileDTO](bErr), nil
	}

	profile, err := h.repo.GetByID(ctx, entities.DeveloperID(cmd.UserID))
	if err != nil {
		log.Error(ctx, errCtxLoadProfile, zap.Error(err))
		return Result[ProfileDTO]{}, wrapErr(errCtxLoadProfile, err)
	}
	if profile == nil {
		return Fail[ProfileDTO](NotFound(CodeProfileNotFound, msgProfileNotFound)), nil
	}

	project, ok := profile.Project(entities.ProjectID(cmd.ProjectID))
	if !ok {
		return Fail[ProfileDTO](NotFound(CodeProjectNotFound, "project not found")), nil
	}
	var previous string
	if icon := project.Icon(); icon != nil {
		previous = icon.String()
	}

	relative, err := h.storage.SaveProjectImage(ctx, cmd.UserID, cmd.ProjectID, cmd.Content, cmd.ContentType)
	if err != nil {
		if bErr := mediaError(err); bErr != nil {
			return Fail[ProfileDTO](bErr), nil
		}
		log.Error(ctx, errCtxSaveMedia, zap.Error(err))
		return Result[ProfileDTO]{}, wrapErr(errCtxSaveMedia, err)
	}

	icon, err := values.NewProjectIcon(h.absoluteURL(cmd.BaseURL, relative))
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	result, err := mutate(ctx, h.repo, h.clock, methodUploadProjectImage, cmd.UserID,
		func(p *entities.DeveloperProfile, now time.Time) (*Error, error) {
			if err := p.SetProjectIcon(entities.ProjectID(cmd.ProjectID), &icon, now); err != nil {
				if errors.Is(err, entities.ErrProjectNotFound) {
					return NotFound(CodeProjectNotFound, "project not found"), nil
				}
				return nil, err
			}
			return nil, nil
		})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	h.deleteStale(ctx, log, cmd.BaseURL, services.ProjectImageDir(cmd.UserID, cmd.ProjectID), previous, relative)
	return result, nil
}

func (h *MediaHandlers) checkUpload(cmd any, content io.Reader, size int64) *Error {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return vErr
	}
	if content == nil {
		return ValidationFailed(FieldViolation{Field: "file", Message: "file is required"})
	}
	if h.maxSize > 0 && size > h.maxSize {
		return &Error{Kind: KindValidation, Code: CodeMediaTooLarge, Message: services.ErrMediaTooLarge.Error()}
	}
	return nil
}

func mediaError(err error) *Error {
	switch {
	case errors.Is(err, services.ErrUnsupportedContentType):
		return &Error{Kind: KindValidation, Code: CodeMediaType, Message: err.Error()}
	case errors.Is(err, services.ErrMediaTooLarge):
		return &Error{Kind: KindValidation, Code: CodeMediaTooLarge, Message: err.Error()}
	default:
		return nil
	}
}

func (h *MediaHandlers) absoluteURL(baseURL, relative string) string {
	return strings.TrimRight(baseURL, "/") + h.publicPath + "/" + strings.TrimLeft(relative, "/")
}

// deleteStale удаляет предыдущий файл, только если он лежит в каталоге владельца.
// Ошибка удаления только логируется.
func (h *MediaHandlers) deleteStale(ctx context.Context, log *logger.Logger, baseURL, ownerDir, previous, current string) {
	stale, ok := relativePathFromURL(previous, baseURL, h.publicPath)
	if !ok || stale == current {
		return
	}
	if !strings.HasPrefix(stale, ownerDir) {
		log.Warn(ctx, msgStaleMediaForeign, zap.String("path", stale))
		return
	}
	if err := h.storage.Delete(ctx, stale); err != nil {
		log.Warn(ctx, msgStaleMediaFailed, zap.String("path", stale), zap.Error(err))
		return
	}
	log.Debug(ctx, msgStaleMediaDeleted, zap.String("path", stale))
}

// relativePathFromURL возвращает путь файла внутри хранилища, если ссылка указывает
// на тот же хост и лежит под publicPath.
func relativePathFromURL(raw, baseURL, publicPath string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	base, err := url.Parse(baseURL)
	if err != nil || !strings.EqualFold(u.Host, base.Host) {
		return "", false
	}

	prefix := "/" + strings.Trim(publicPath, "/") + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	relative := strings.TrimPrefix(u.Path, prefix)
	if relative == "" || strings.Contains(relative, "..") {
		return "", false
	}
	return relative, true
}
