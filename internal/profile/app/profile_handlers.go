package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/values"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/internal/profile/ports/services"
	"devprofile/pkg/logger"
)

// Имена методов для логирования.
const (
	methodCreateProfile   = "CreateProfile"
	methodReplaceProfile  = "ReplaceProfile"
	methodUpdateHeader    = "UpdateHeader"
	methodUpdateSummary   = "UpdateSummary"
	methodUpdateContacts  = "UpdateContacts"
	methodReplaceSkills   = "ReplaceSkills"
	methodSetVerification = "SetVerification"
	methodDeleteProfile   = "DeleteProfile"
)

// Сообщения logger.
const (
	msgProfileNotFound  = "profile not found"
	msgProfileExists    = "profile already exists"
	msgProfileSaved     = "profile saved"
	msgProfileDeleted   = "profile deleted"
	msgUpdateReturnsNil = "repository returned no profile after update"
	msgValidationFailed = "command validation failed"
)

// Контексты ошибок.
const (
	errCtxLoadProfile   = "failed to load profile"
	errCtxCreateProfile = "failed to create profile"
	errCtxUpdateProfile = "failed to update profile"
	errCtxDeleteProfile = "failed to delete profile"
	errCtxApplyChange   = "failed to apply profile change"
)

// wrapErr оборачивает ошибку, не трогая отмену контекста.
func wrapErr(errCtx string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w", errCtx, err)
}

// mutation применяет изменение к загруженному агрегату.
// Возвращенная *Error становится неуспешным Result, error пробрасывается как есть.
type mutation func(profile *entities.DeveloperProfile, now time.Time) (*Error, error)

// ProfileHandlers обрабатывает команды, изменяющие заголовок и контакты профиля.
type ProfileHandlers struct {
	repo      repositories.ProfileRepository
	clock     services.Clock
	validator *Validator
}

func NewProfileHandlers(repo repositories.ProfileRepository, clock services.Clock, validator *Validator) *ProfileHandlers {
	return &ProfileHandlers{repo: repo, clock: clock, validator: validator}
}

// mutate реализует общий шаблон: загрузить, изменить, сохранить, отобразить.
func mutate(
	ctx context.Context,
	repo repositories.ProfileRepository,
	clock services.Clock,
	method string,
	id string,
	apply mutation,
) (Result[ProfileDTO], error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("profileID", id))

	profile, err := repo.GetByID(ctx, entities.DeveloperID(id))
	if err != nil {
		log.Error(ctx, errCtxLoadProfile, zap.Error(err))
		return Result[ProfileDTO]{}, wrapErr(errCtxLoadProfile, err)
	}
	if profile == nil {
		log.Debug(ctx, msgProfileNotFound)
		return Fail[ProfileDTO](NotFound(CodeProfileNotFound, msgProfileNotFound)), nil
	}

	businessErr, err := apply(profile, clock.Now())
	if err != nil {
		log.Warn(ctx, errCtxApplyChange, zap.Error(err))
		return Result[ProfileDTO]{}, wrapErr(errCtxApplyChange, err)
	}
	if businessErr != nil {
		return Fail[ProfileDTO](businessErr), nil
	}

	saved, err := repo.Update(ctx, profile)
	if err != nil {
		log.Error(ctx, errCtxUpdateProfile, zap.Error(err))
		return Result[ProfileDTO]{}, wrapErr(errCtxUpdateProfile, err)
	}
	if saved == nil {
		log.Warn(ctx, msgUpdateReturnsNil)
		return Fail[ProfileDTO](Failure(CodeProfileUpdate, "profile could not be saved")), nil
	}

	log.Debug(ctx, msgProfileSaved)
	return Ok(ToProfileDTO(saved)), nil
}

// validationOrError разделяет ошибки построения значений и прочие ошибки.
func validationOrError[T any](err error) (Result[T], error) {
	if vErr := asValidation(err); vErr != nil {
		return Fail[T](vErr), nil
	}
	return Result[T]{}, err
}

// CreateProfile создает профиль текущего пользователя. Повторное создание дает Conflict.
func (h *ProfileHandlers) CreateProfile(ctx context.Context, cmd CreateProfileCommand) (Result[ProfileDTO], error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateProfile), zap.String("userID", cmd.UserID))

	if vErr := h.validator.Validate(cmd); vErr != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(vErr))
		return Fail[ProfileDTO](vErr), nil
	}

	details, skills, err := buildProfile(cmd.Profile)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	id := entities.DeveloperID(cmd.UserID)
	existing, err := h.repo.GetByID(ctx, id)
	if err != nil {
		log.Error(ctx, errCtxLoadProfile, zap.Error(err))
		return Result[ProfileDTO]{}, wrapErr(errCtxLoadProfile, err)
	}
	if existing != nil {
		log.Debug(ctx, msgProfileExists)
		return Fail[ProfileDTO](Conflict(CodeProfileExists, msgProfileExists)), nil
	}

	now := h.clock.Now()
	profile := entities.CreateDeveloperProfile(id, details, now)
	if err := profile.ReplaceSkills(skills, now); err != nil {
		return Result[ProfileDTO]{}, wrapErr(errCtxApplyChange, err)
	}

	saved, err := h.repo.Create(ctx, profile)
	if errors.Is(err, repositories.ErrProfileExists) {
		log.Debug(ctx, msgProfileExists)
		return Fail[ProfileDTO](Conflict(CodeProfileExists, msgProfileExists)), nil
	}
	if err != nil {
		log.Error(ctx, errCtxCreateProfile, zap.Error(err))
		return Result[ProfileDTO]{}, wrapErr(errCtxCreateProfile, err)
	}
	if saved == nil {
		return Fail[ProfileDTO](Failure(CodeProfileCreate, "profile could not be created")), nil
	}

	log.Info(ctx, msgProfileSaved)
	return Ok(ToProfileDTO(saved)), nil
}

// ReplaceProfile заново строит профиль из полного набора полей.
// Сохраняются дата создания, статус проверки, проекты и опыт работы.
func (h *ProfileHandlers) ReplaceProfile(ctx context.Context, cmd ReplaceProfileCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}
	details, skills, err := buildProfile(cmd.Profile)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	return mutate(ctx, h.repo, h.clock, methodReplaceProfile, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			previous := profile.Snapshot()
			details.Verification = previous.Details.Verification

			fresh := entities.CreateDeveloperProfile(profile.ID(), details, now)
			if err := fresh.ReplaceSkills(skills, now); err != nil {
				return nil, err
			}

			next := fresh.Snapshot()
			next.CreatedAt = previous.CreatedAt
			next.Projects = previous.Projects
			next.WorkExperience = previous.WorkExperience

			replaced, err := entities.RestoreDeveloperProfile(next)
			if err != nil {
				return nil, err
			}
			*profile = *replaced
			return nil, nil
		})
}

// UpdateHeader меняет имя, должность, стаж и флаг "открыт к работе".
func (h *ProfileHandlers) UpdateHeader(ctx context.Context, cmd UpdateHeaderCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}

	name, err := values.NewPersonName(cmd.FirstName, cmd.LastName)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}
	role, err := values.TryRoleTitle(cmd.Role)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}
	years, err := buildYears(cmd.YearsOfExperience)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	return mutate(ctx, h.repo, h.clock, methodUpdateHeader, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			profile.ChangeName(name, now)
			profile.ChangeRole(role, now)
			profile.SetOpenToWork(values.NewOpenToWorkStatus(cmd.OpenToWork), now)
			if years != nil {
				profile.UpdateYearsOfExperience(*years, now)
			}
			return nil, nil
		})
}

// UpdateSummary меняет текст "о себе". Пустой текст очищает его.
func (h *ProfileHandlers) UpdateSummary(ctx context.Context, cmd UpdateSummaryCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}
	summary, err := values.TryProfileSummary(cmd.Summary)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	return mutate(ctx, h.repo, h.clock, methodUpdateSummary, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			profile.ChangeSummary(summary, now)
			return nil, nil
		})
}

func (h *ProfileHandlers) UpdateContacts(ctx context.Context, cmd UpdateContactsCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}
	contact, err := buildContact(cmd.Contact)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}
	social, err := buildSocial(cmd.Social)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	return mutate(ctx, h.repo, h.clock, methodUpdateContacts, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			profile.ChangeContact(contact, now)
			profile.ChangeSocialLinks(social, now)
			return nil, nil
		})
}

func (h *ProfileHandlers) ReplaceSkills(ctx context.Context, cmd ReplaceSkillsCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}
	skills, err := values.NewSkillTags(cmd.Skills)
	if err != nil {
		return validationOrError[ProfileDTO](err)
	}

	return mutate(ctx, h.repo, h.clock, methodReplaceSkills, cmd.UserID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			return nil, profile.ReplaceSkills(skills, now)
		})
}

// SetVerification меняет статус проверки чужого профиля. Доступно администратору.
func (h *ProfileHandlers) SetVerification(ctx context.Context, cmd SetVerificationCommand) (Result[ProfileDTO], error) {
	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}
	status := values.ParseVerificationStatus(cmd.Status)

	return mutate(ctx, h.repo, h.clock, methodSetVerification, cmd.ProfileID,
		func(profile *entities.DeveloperProfile, now time.Time) (*Error, error) {
			profile.SetVerified(status, now)
			return nil, nil
		})
}

func (h *ProfileHandlers) DeleteProfile(ctx context.Context, cmd DeleteProfileCommand) (Result[Empty], error) {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteProfile), zap.String("userID", cmd.UserID))

	if vErr := h.validator.Validate(cmd); vErr != nil {
		return Fail[Empty](vErr), nil
	}

	deleted, err := h.repo.Delete(ctx, entities.DeveloperID(cmd.UserID))
	if err != nil {
		log.Error(ctx, errCtxDeleteProfile, zap.Error(err))
		return Result[Empty]{}, wrapErr(errCtxDeleteProfile, err)
	}
	if !deleted {
		return Fail[Empty](NotFound(CodeProfileNotFound, msgProfileNotFound)), nil
	}

	log.Info(ctx, msgProfileDeleted)
	return Ok(Empty{}), nil
}
