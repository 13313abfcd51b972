package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/housekeeping-service/internal/api/dto"
	"github.com/spec-kit/housekeeping-service/internal/service"
	apperrors "github.com/spec-kit/housekeeping-service/pkg/util"
)

// TasksHandler exposes task endpoints.
type TasksHandler struct {
	housekeeper *service.HousekeepingService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(housekeeper *service.HousekeepingService) *TasksHandler {
	return &TasksHandler{housekeeper: housekeeper}
}

// Create handles POST /task.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	var req dto.TaskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	snap, err := h.housekeeper.CreateTask(c.UserContext(), service.TaskInput{
		Title:    req.Title,
		Assignee: req.Assignee,
		Room:     req.Room,
	})
	if err != nil {
		return err
	}
	return c.JSON(snapshotResponse(snap))
}

// Complete handles PATCH /task/:id.
func (h *TasksHandler) Complete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	snap, err := h.housekeeper.CompleteTask(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(snapshotResponse(snap))
}
