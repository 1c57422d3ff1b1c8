package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	env string
}

func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{env: env}
}

// GetHealth reports service liveness.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "Crystal Power Supply-Demand Matcher",
		"version": "1.0.0",
		"env":     h.env,
	})
}
