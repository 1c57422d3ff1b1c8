package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/services"
	"github.com/crystalpower/wa-property-matcher/internal/shared/utils"
)

// InventoryHandler exposes the supply side: property CRUD and reload.
type InventoryHandler struct {
	processor *services.ProcessorService
}

func NewInventoryHandler(processor *services.ProcessorService) *InventoryHandler {
	return &InventoryHandler{processor: processor}
}

// List returns the current inventory snapshot.
// @Summary List properties
// @Tags Inventory
// @Produce json
// @Success 200 {array} models.Property
// @Router /api/properties [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.processor.ListInventory())
}

// Upsert creates or replaces a property. A missing id is generated.
// @Summary Upsert property
// @Tags Inventory
// @Accept json
// @Produce json
// @Success 201 {object} models.Property
// @Router /api/properties [post]
func (h *InventoryHandler) Upsert(c *fiber.Ctx) error {
	var property models.Property
	if err := c.BodyParser(&property); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	if property.Status == "" {
		property.Status = models.StatusAvailable
	}

	if err := h.processor.UpsertProperty(c.Context(), property); err != nil {
		if errors.Is(err, models.ErrInvalidProperty) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store property"})
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

// Update replaces a property under an explicit id.
// @Summary Update property
// @Tags Inventory
// @Accept json
// @Produce json
// @Success 200 {object} models.Property
// @Router /api/properties/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var property models.Property
	if err := c.BodyParser(&property); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	property.ID = c.Params("id")
	if property.Status == "" {
		property.Status = models.StatusAvailable
	}

	if err := h.processor.UpsertProperty(c.Context(), property); err != nil {
		if errors.Is(err, models.ErrInvalidProperty) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store property"})
	}
	return c.JSON(property)
}

// Remove deletes a property; deleting an unknown id still returns 200.
// @Summary Remove property
// @Tags Inventory
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/properties/{id} [delete]
func (h *InventoryHandler) Remove(c *fiber.Ctx) error {
	h.processor.RemoveProperty(c.Context(), c.Params("id"))
	return c.JSON(fiber.Map{"status": "removed"})
}

// Reload refreshes the inventory from the external source. A failed reload
// keeps the last-known-good snapshot and reports 503.
// @Summary Reload inventory
// @Tags Inventory
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/properties/reload [post]
func (h *InventoryHandler) Reload(c *fiber.Ctx) error {
	count, err := h.processor.ReloadInventory(c.Context())
	if err != nil {
		utils.LogWarn("Inventory reload failed, keeping last snapshot", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":  "inventory source unavailable, serving last known snapshot",
			"detail": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "reloaded", "count": count})
}
