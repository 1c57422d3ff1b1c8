package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crystalpower/wa-property-matcher/internal/core/insights"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/services"
	"github.com/crystalpower/wa-property-matcher/internal/shared/utils"
)

// RequirementsHandler exposes the demand side for agent tooling.
type RequirementsHandler struct {
	processor *services.ProcessorService
	insights  *insights.Service
}

func NewRequirementsHandler(processor *services.ProcessorService, insightsService *insights.Service) *RequirementsHandler {
	return &RequirementsHandler{processor: processor, insights: insightsService}
}

// List returns every customer's requirement with summary, newest first.
// @Summary List requirements
// @Tags Requirements
// @Produce json
// @Success 200 {array} models.DemandSummary
// @Router /api/requirements [get]
func (h *RequirementsHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.processor.ListRequirements())
}

// Get returns one customer's requirement; unknown customers get an empty
// default record rather than an error.
// @Summary Get requirement
// @Tags Requirements
// @Produce json
// @Success 200 {object} models.Requirement
// @Router /api/requirements/{customerId} [get]
func (h *RequirementsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.processor.GetRequirement(c.Params("customerId")))
}

// Matches returns the cached match list for one customer.
// @Summary Get matches for a customer
// @Tags Requirements
// @Produce json
// @Success 200 {array} models.MatchResult
// @Router /api/requirements/{customerId}/matches [get]
func (h *RequirementsHandler) Matches(c *fiber.Ctx) error {
	return c.JSON(h.processor.MatchesFor(c.Params("customerId")))
}

// Brief generates an agent-facing summary of the requirement and its top
// matches. Unavailable when no LLM is configured.
// @Summary Generate agent brief
// @Tags Requirements
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/requirements/{customerId}/brief [post]
func (h *RequirementsHandler) Brief(c *fiber.Ctx) error {
	if h.insights == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "insights service not configured"})
	}

	customerID := c.Params("customerId")
	requirement := h.processor.GetRequirement(customerID)
	matches := h.processor.MatchesFor(customerID)

	brief, err := h.insights.MatchBrief(c.Context(), &requirement, matches)
	if err != nil {
		utils.LogError("Failed to generate agent brief", err, map[string]interface{}{"customer": customerID})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to generate brief"})
	}
	return c.JSON(fiber.Map{"customer_id": customerID, "brief": brief})
}
