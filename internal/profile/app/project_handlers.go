package app

import (
	"context"
	"time"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/internal/profile/ports/services"
)

const (
	methodAddProject    = "AddProject"
	methodUpdateProject = "UpdateProject"
	methodRemoveProject = "RemoveProject"
)

// ProjectHandlers управляет проектами внутри профиля.
type ProjectHandlers struct {
	repo      repositories.ProfileRepository
	clock     services.Clock
	validator *Validator
}

func NewProjectHandlers(repo repositories.ProfileRepository, clock services.Clock, validator *Validator) *ProjectHandlers {
	return &ProjectHandlers{repo: repo, clock: clock, validator: validator}
}

func (h *ProjectHandlers) AddProject(ctx context.Context, cmd AddProjectCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}
	details, err := buildProject(cmd.Project)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	return mutate(ctx, h.repo, h.clock, methodAddProject, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			_, err := profile.AddProject(details, now)
			return nil, err
		})
}

// UpdateProject заменяет поля проекта. Отсутствующий проект возвращается как ошибка домена.
func (h *ProjectHandlers) UpdateProject(ctx context.Context, cmd UpdateProjectCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}
	details, err := buildProject(cmd.Project)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	return mutate(ctx, h.repo, h.clock, methodUpdateProject, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			return nil, profile.UpdateProject(entities.ProjectID(cmd.ProjectID), details, now)
		})
}

func (h *ProjectHandlers) RemoveProject(ctx context.Context, cmd RemoveProjectCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}

	return mutate(ctx, h.repo, h.clock, methodRemoveProject, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			return nil, profile.RemoveProject(entities.ProjectID(cmd.ProjectID), now)
		})
}
