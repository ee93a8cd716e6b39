package handler

import (
	"interview-agent/internal/dto"
	"interview-agent/internal/service"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	health service.HealthService
}

func NewHealthHandler(health service.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// Health godoc
// @Summary Service health
// @Description Reports database and cache reachability and whether question generation is configured
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	report := h.health.Check(c.UserContext())

	status := fiber.StatusOK
	if report.Status != service.StatusOK {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(dto.HealthResponse{
		Status:              report.Status,
		Database:            report.Database,
		Cache:               report.Cache,
		GenerationAvailable: report.GenerationAvailable,
	})
}
