package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/housekeeping-service/internal/service"
)

// StateHandler serves the unified state snapshot.
type StateHandler struct {
	serviceName string
	housekeeper *service.HousekeepingService
}

// NewStateHandler constructs handler.
func NewStateHandler(serviceName string, housekeeper *service.HousekeepingService) *StateHandler {
	return &StateHandler{serviceName: serviceName, housekeeper: housekeeper}
}

// Root handles GET /.
func (h *StateHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": h.serviceName + " is running"})
}

// GetState handles GET /state.
func (h *StateHandler) GetState(c *fiber.Ctx) error {
	snap, err := h.housekeeper.Snapshot(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(snapshotResponse(snap))
}
