// Package http собирает HTTP сервер профилей разработчиков.
package http

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"

	"devprofile/internal/profile/adapters/http/auth"
	"devprofile/internal/profile/adapters/http/middleware"
	"devprofile/internal/profile/adapters/http/profiles"
	"devprofile/internal/profile/app"
	"devprofile/internal/profile/ports/api"
	"devprofile/pkg/logger"
)

// Dependencies - зависимости маршрутизатора.
type Dependencies struct {
	Auth       api.AuthUseCase
	Dispatcher *app.Dispatcher
	Logger     *logger.Logger
	// BaseURL - внешний адрес сервиса. Пустой - берется из запроса.
	BaseURL string
	// MediaRoot - каталог локального хранилища медиа. Пустой, если файлы лежат в S3.
	MediaRoot       string
	MediaPublicPath string
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(server *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.Auth)
	profileHandler := profiles.NewHandler(deps.Dispatcher, deps.BaseURL)
	requireAuth := middleware.NewAuthMiddleware(deps.Auth)

	server.Use(middleware.NewRequestIDMiddleware(deps.Logger))
	server.Use(middleware.NewLoggerMiddleware())
	server.Use(middleware.NewRecoveryMiddleware())

	server.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if deps.MediaRoot != "" {
		prefix := "/" + strings.Trim(deps.MediaPublicPath, "/")
		server.Get(prefix+"/*", static.New(deps.MediaRoot))
	}

	apiV1 := server.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/google", authHandler.GoogleLogin)
	authRoutes.Post("/refresh", authHandler.RefreshTokens)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/logout-all", authHandler.LogoutAll, requireAuth)

	// Публичный каталог.
	profileRoutes := apiV1.Group("/profiles")
	profileRoutes.Get("/", profileHandler.SearchCatalog)
	profileRoutes.Get("/filter", profileHandler.FilterCatalog)
	profileRoutes.Get("/:id", profileHandler.GetProfile)
	profileRoutes.Get("/:id/resume.pdf", profileHandler.GetResume)
	profileRoutes.Put("/:id/verification", profileHandler.SetVerification, requireAuth, middleware.NewAdminMiddleware())

	// Профиль текущего пользователя.
	meRoutes := apiV1.Group("/me", requireAuth)
	meRoutes.Get("/", profileHandler.GetMyProfile)
	meRoutes.Post("/", profileHandler.CreateProfile)
	meRoutes.Put("/", profileHandler.ReplaceProfile)
	meRoutes.Delete("/", profileHandler.DeleteProfile)
	meRoutes.Patch("/header", profileHandler.UpdateHeader)
	meRoutes.Patch("/summary", profileHandler.UpdateSummary)
	meRoutes.Patch("/contacts", profileHandler.UpdateContacts)
	meRoutes.Put("/skills", profileHandler.ReplaceSkills)
	meRoutes.Post("/avatar", profileHandler.UploadAvatar)

	meRoutes.Post("/projects", profileHandler.AddProject)
	meRoutes.Put("/projects/:projectId", profileHandler.UpdateProject)
	meRoutes.Delete("/projects/:projectId", profileHandler.RemoveProject)
	meRoutes.Post("/projects/:projectId/image", profileHandler.UploadProjectImage)

	meRoutes.Post("/experience", profileHandler.AddWorkExperience)
	meRoutes.Put("/experience/:experienceId", profileHandler.UpdateWorkExperience)
	meRoutes.Delete("/experience/:experienceId", profileHandler.RemoveWorkExperience)

	server.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"code":    "route.not_found",
			"message": "Route not found",
		})
	})
}
