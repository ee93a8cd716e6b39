package handler

import (
	"interview-agent/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the /api routes on app.
func RegisterRoutes(app *fiber.App, interviews *InterviewHandler, health *HealthHandler) {
	vm := middleware.NewValidationMiddleware()

	api := app.Group("/api")
	api.Post("/agent", interviews.Generate)
	api.Get("/history", vm.ValidateHistoryQuery(), interviews.History)
	api.Get("/interviews/:id", vm.ValidateRecordID(), interviews.GetInterview)
	api.Get("/health", health.Health)
}
