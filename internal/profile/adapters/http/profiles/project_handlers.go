package profiles

import (
	"github.com/gofiber/fiber/v3"

	"devprofile/internal/profile/app"
)

func (h *Handler) AddProject(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var input app.ProjectInput
	if ok, err := bindJSON(ctx, &input); !ok {
		return err
	}
	cmd := app.AddProjectCommand{UserID: userID, Project: input}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusCreated)
}

func (h *Handler) UpdateProject(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var input app.ProjectInput
	if ok, err := bindJSON(ctx, &input); !ok {
		return err
	}
	cmd := app.UpdateProjectCommand{UserID: userID, ProjectID: ctx.Params("projectId"), Project: input}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}

func (h *Handler) RemoveProject(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	cmd := app.RemoveProjectCommand{UserID: userID, ProjectID: ctx.Params("projectId")}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}

func (h *Handler) AddWorkExperience(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var input app.WorkExperienceInput
	if ok, err := bindJSON(ctx, &input); !ok {
		return err
	}
	cmd := app.AddWorkExperienceCommand{UserID: userID, Experience: input}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusCreated)
}

func (h *Handler) UpdateWorkExperience(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	var input app.WorkExperienceInput
	if ok, err := bindJSON(ctx, &input); !ok {
		return err
	}
	cmd := app.UpdateWorkExperienceCommand{
		UserID:           userID,
		WorkExperienceID: ctx.Params("experienceId"),
		Experience:       input,
	}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}

func (h *Handler) RemoveWorkExperience(ctx fiber.Ctx) error {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return unauthorized(ctx)
	}
	cmd := app.RemoveWorkExperienceCommand{UserID: userID, WorkExperienceID: ctx.Params("experienceId")}
	return dispatch[app.ProfileDTO](ctx, h.dispatcher, cmd, fiber.StatusOK)
}
