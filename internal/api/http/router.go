package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smart-agence/agence-api/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Agents  *handlers.AgentsHandler
	Tickets *handlers.TicketsHandler
	Stats   *handlers.StatsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Bienvenue dans Smart Agence API"})
	})

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	agents := app.Group("/agents")
	agents.Post("/", cfg.Agents.Create)
	agents.Get("/", cfg.Agents.List)
	agents.Get("/:id", cfg.Agents.Get)
	agents.Put("/:id", cfg.Agents.Update)
	agents.Delete("/:id", cfg.Agents.Delete)

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/:id/status", cfg.Tickets.PostStatus)
	tickets.Get("/:id/status", cfg.Tickets.CurrentStatus)
	tickets.Get("/:id/events", cfg.Tickets.ListEvents)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", cfg.Tickets.Update)

	app.Get("/stats/overview", cfg.Stats.Overview)
}
