package app_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devprofile/internal/profile/app"
	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/ports/services"
)

func TestGetResumePDF(t *testing.T) {
	t.Run("cache hit skips rendering", func(t *testing.T) {
		ctx := testContext(t)
		profile := existingProfile(t, "user-1")
		key := app.ResumeKey("resumes", profile)

		repo := new(mockProfileRepository)
		repo.On("GetByID", mock.Anything, entities.DeveloperID("user-1")).Return(profile, nil).Once()
		cache := new(mockObjectStorage)
		cache.On("Get", mock.Anything, key).Return([]byte("%PDF-cached"), nil).Once()
		tmpl := new(mockTemplate)
		renderer := new(mockRenderer)

		uc := app.NewResumeUseCase(repo, tmpl, renderer, cache, app.NewValidator(), "")
		res, err := uc.GetResumePDF(ctx, app.GetResumeQuery{ProfileID: "user-1"})

		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Equal(t, []byte("%PDF-cached"), res.Value())
		tmpl.AssertNotCalled(t, "Render", mock.Anything)
		renderer.AssertNotCalled(t, "RenderPDF", mock.Anything, mock.Anything)
	})

	t.Run("cache miss renders and stores", func(t *testing.T) {
		ctx := testContext(t)
		profile := existingProfile(t, "user-1")
		key := app.ResumeKey("cv", profile)

		repo := new(mockProfileRepository)
		repo.On("GetByID", mock.Anything, entities.DeveloperID("user-1")).Return(profile, nil).Once()
		cache := new(mockObjectStorage)
		cache.On("Get", mock.Anything, key).Return(nil, services.ErrObjectNotFound).Once()
		cache.On("Put", mock.Anything, key, []byte("%PDF-new"), app.PDFContentType).Return(nil).Once()
		tmpl := new(mockTemplate)
		tmpl.On("Render", profile).Return([]byte("<html></html>"), nil).Once()
		renderer := new(mockRenderer)
		renderer.On("RenderPDF", mock.Anything, []byte("<html></html>")).Return([]byte("%PDF-new"), nil).Once()

		uc := app.NewResumeUseCase(repo, tmpl, renderer, cache, app.NewValidator(), "cv")
		res, err := uc.GetResumePDF(ctx, app.GetResumeQuery{ProfileID: "user-1"})

		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Equal(t, []byte("%PDF-new"), res.Value())
		cache.AssertExpectations(t)
		renderer.AssertExpectations(t)
	})

	t.Run("renderer failure", func(t *testing.T) {
		ctx := testContext(t)
		profile := existingProfile(t, "user-1")

		repo := new(mockProfileRepository)
		repo.On("GetByID", mock.Anything, entities.DeveloperID("user-1")).Return(profile, nil).Once()
		cache := new(mockObjectStorage)
		cache.On("Get", mock.Anything, mock.Anything).Return(nil, services.ErrObjectNotFound).Once()
		tmpl := new(mockTemplate)
		tmpl.On("Render", profile).Return([]byte("<html></html>"), nil).Once()
		renderer := new(mockRenderer)
		renderer.On("RenderPDF", mock.Anything, mock.Anything).Return(nil, errors.New("gotenberg down")).Once()

		uc := app.NewResumeUseCase(repo, tmpl, renderer, cache, app.NewValidator(), "")
		res, err := uc.GetResumePDF(ctx, app.GetResumeQuery{ProfileID: "user-1"})

		require.NoError(t, err)
		require.False(t, res.IsSuccess())
		assert.Equal(t, app.CodeResumeRendering, res.Err().Code)
		cache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing profile", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(mockProfileRepository)
		repo.On("GetByID", mock.Anything, entities.DeveloperID("ghost")).Return(nil, nil).Once()

		uc := app.NewResumeUseCase(repo, new(mockTemplate), new(mockRenderer), new(mockObjectStorage), app.NewValidator(), "")
		res, err := uc.GetResumePDF(ctx, app.GetResumeQuery{ProfileID: "ghost"})

		require.NoError(t, err)
		assert.Equal(t, app.KindNotFound, res.Err().Kind)
	})
}

func TestResumeKeyChangesWithProfile(t *testing.T) {
	profile := existingProfile(t, "user-1")
	before := app.ResumeKey("resumes", profile)

	profile.SetVerified(0, now)

	assert.NotEqual(t, before, app.ResumeKey("resumes", profile))
	assert.Contains(t, before, "resumes/user-1/")
}
