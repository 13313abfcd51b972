package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/housekeeping-service/internal/api/dto"
	"github.com/spec-kit/housekeeping-service/internal/service"
	apperrors "github.com/spec-kit/housekeeping-service/pkg/util"
)

// StaffHandler exposes staff roster endpoints.
type StaffHandler struct {
	housekeeper *service.HousekeepingService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(housekeeper *service.HousekeepingService) *StaffHandler {
	return &StaffHandler{housekeeper: housekeeper}
}

// Create handles POST /staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	snap, err := h.housekeeper.AddStaff(c.UserContext(), service.StaffInput{
		Name:     req.Name,
		Role:     req.Role,
		Type:     req.Type,
		Status:   req.Status,
		Assigned: req.Assigned,
	})
	if err != nil {
		return err
	}
	return c.JSON(snapshotResponse(snap))
}

// Update handles PATCH /staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	snap, err := h.housekeeper.UpdateStaff(c.UserContext(), id, service.StaffPatch{
		Name:     req.Name,
		Role:     req.Role,
		Type:     req.Type,
		Status:   req.Status,
		Assigned: req.Assigned,
	})
	if err != nil {
		return err
	}
	return c.JSON(snapshotResponse(snap))
}

// Delete handles DELETE /staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	snap, err := h.housekeeper.DeleteStaff(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(snapshotResponse(snap))
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}
