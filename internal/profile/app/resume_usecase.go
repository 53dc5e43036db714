package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/internal/profile/ports/services"
	"devprofile/pkg/logger"
)

const (
	methodGetResume = "GetResumePDF"

	msgResumeCacheHit    = "resume served from cache"
	msgResumeRendered    = "resume rendered"
	msgResumeCacheFailed = "failed to cache rendered resume"

	errCtxReadResumeCache = "failed to read resume cache"
	errCtxRenderHTML      = "failed to render resume html"
	errCtxRenderPDF       = "failed to convert resume to pdf"
)

// PDFContentType - тип содержимого резюме.
const PDFContentType = "application/pdf"

// ResumeUseCase строит PDF-резюме и кеширует его в объектном хранилище.
type ResumeUseCase struct {
	repo      repositories.ProfileRepository
	template  services.ResumeTemplate
	renderer  services.PDFRenderer
	cache     services.ObjectStorage
	validator *Validator
	prefix    string
}

// NewResumeUseCase создает сценарий резюме. prefix - префикс ключей в хранилище.
func NewResumeUseCase(
	repo repositories.ProfileRepository,
	template services.ResumeTemplate,
	renderer services.PDFRenderer,
	cache services.ObjectStorage,
	validator *Validator,
	prefix string,
) *ResumeUseCase {
	if prefix == "" {
		prefix = "resumes"
	}
	return &ResumeUseCase{
		repo:      repo,
		template:  template,
		renderer:  renderer,
		cache:     cache,
		validator: validator,
		prefix:    prefix,
	}
}

// ResumeKey - ключ кеша. Меняется при каждом изменении профиля.
func ResumeKey(prefix string, profile *entities.DeveloperProfile) string {
	return fmt.Sprintf("%s/%s/%d.pdf", prefix, profile.ID(), profile.UpdatedAt().UnixNano())
}

// GetResumePDF возвращает PDF из кеша или строит его заново.
func (u *ResumeUseCase) GetResumePDF(ctx context.Context, q GetResumeQuery) (Result[[]byte], error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetResume), zap.String("profileID", q.ProfileID))

	if vErr := u.validator.Validate(q); vErr != nil {
		return Fail[[]byte](vErr), nil
	}

	profile, err := u.repo.GetByID(ctx, entities.DeveloperID(q.ProfileID))
	if err != nil {
		log.Error(ctx, errCtxLoadProfile, zap.Error(err))
		return Result[[]byte]{}, wrapErr(errCtxLoadProfile, err)
	}
	if profile == nil {
		return Fail[[]byte](NotFound(CodeProfileNotFound, msgProfileNotFound)), nil
	}

	key := ResumeKey(u.prefix, profile)
	cached, err := u.cache.Get(ctx, key)
	switch {
	case err == nil:
		log.Debug(ctx, msgResumeCacheHit, zap.String("key", key))
		return Ok(cached), nil
	case !errors.Is(err, services.ErrObjectNotFound):
		log.Warn(ctx, errCtxReadResumeCache, zap.String("key", key), zap.Error(err))
	}

	html, err := u.template.Render(profile)
	if err != nil {
		log.Error(ctx, errCtxRenderHTML, zap.Error(err))
		return Fail[[]byte](Failure(CodeResumeRendering, errCtxRenderHTML)), nil
	}

	pdf, err := u.renderer.RenderPDF(ctx, html)
	if err != nil {
		log.Error(ctx, errCtxRenderPDF, zap.Error(err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result[[]byte]{}, ctxErr
		}
		return Fail[[]byte](Failure(CodeResumeRendering, errCtxRenderPDF)), nil
	}

	if err := u.cache.Put(ctx, key, pdf, PDFContentType); err != nil {
		log.Warn(ctx, msgResumeCacheFailed, zap.String("key", key), zap.Error(err))
	}

	log.Info(ctx, msgResumeRendered, zap.Int("bytes", len(pdf)))
	return Ok(pdf), nil
}
