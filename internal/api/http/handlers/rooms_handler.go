package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/housekeeping-service/internal/api/dto"
	"github.com/spec-kit/housekeeping-service/internal/service"
	apperrors "github.com/spec-kit/housekeeping-service/pkg/util"
)

// RoomsHandler exposes room status endpoints.
type RoomsHandler struct {
	housekeeper *service.HousekeepingService
}

// NewRoomsHandler constructs handler.
func NewRoomsHandler(housekeeper *service.HousekeepingService) *RoomsHandler {
	return &RoomsHandler{housekeeper: housekeeper}
}

// SetStatus handles PATCH /room/:id.
func (h *RoomsHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.RoomStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	snap, err := h.housekeeper.SetRoomStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(snapshotResponse(snap))
}
