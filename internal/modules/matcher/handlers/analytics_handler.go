package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/services"
)

// AnalyticsHandler serves the dashboard statistics projection.
type AnalyticsHandler struct {
	processor *services.ProcessorService
}

func NewAnalyticsHandler(processor *services.ProcessorService) *AnalyticsHandler {
	return &AnalyticsHandler{processor: processor}
}

// Summary aggregates supply, demand and matching statistics.
// @Summary Matching statistics
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.Statistics
// @Router /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.processor.Statistics())
}
