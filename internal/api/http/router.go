package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/housekeeping-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	State  *handlers.StateHandler
	Staff  *handlers.StaffHandler
	Rooms  *handlers.RoomsHandler
	Tasks  *handlers.TasksHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.State.Root)
	app.Get("/state", cfg.State.GetState)

	app.Post("/staff", cfg.Staff.Create)
	app.Patch("/staff/:id", cfg.Staff.Update)
	app.Delete("/staff/:id", cfg.Staff.Delete)

	app.Patch("/room/:id", cfg.Rooms.SetStatus)

	app.Post("/task", cfg.Tasks.Create)
	app.Patch("/task/:id", cfg.Tasks.Complete)
}
