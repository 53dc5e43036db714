package app

import (
	"context"
	"time"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/internal/profile/ports/services"
)

const (
	methodAddWorkExperience    = "AddWorkExperience"
	methodUpdateWorkExperience = "UpdateWorkExperience"
	methodRemoveWorkExperience = "RemoveWorkExperience"
)

// WorkExperienceHandlers управляет опытом работы.
type WorkExperienceHandlers struct {
	repo      repositories.ProfileRepository
	clock     services.Clock
	validator *Validator
}

func NewWorkExperienceHandlers(repo repositories.ProfileRepository, clock services.Clock, validator *Validator) *WorkExperienceHandlers {
	return &WorkExperienceHandlers{repo: repo, clock: clock, validator: validator}
}

func (h *WorkExperienceHandlers) AddWorkExperience(ctx context.Context, cmd AddWorkExperienceCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}
	details, err := buildWorkExperience(cmd.Experience)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	return mutate(ctx, h.repo, h.clock, methodAddWorkExperience, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			_, err := profile.AddWorkExperience(details, now)
			return nil, err
		})
}

func (h *WorkExperienceHandlers) UpdateWorkExperience(ctx context.Context, cmd UpdateWorkExperienceCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}
	details, err := buildWorkExperience(cmd.Experience)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	return mutate(ctx, h.repo, h.clock, methodUpdateWorkExperience, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			return nil, profile.UpdateWorkExperience(entities.WorkExperienceID(cmd.WorkExperienceID), details, now)
		})
}

func (h *WorkExperienceHandlers) RemoveWorkExperience(ctx context.Context, cmd RemoveWorkExperienceCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}

	return mutate(ctx, h.repo, h.clock, methodRemoveWorkExperience, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			return nil, profile.RemoveWorkExperience(entities.WorkExperienceID(cmd.WorkExperienceID), now)
		})
}
