package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/usuario-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Home   *handlers.HomeHandler
	Health *handlers.HealthHandler
	Users  *handlers.UsersHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Home.Index)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	users := app.Group("/usuarios")
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.List)
	users.Patch("/", cfg.Users.Update)
	users.Patch("/:id", cfg.Users.Update)
	users.Delete("/", cfg.Users.Delete)
	users.Delete("/:id", cfg.Users.Delete)
}
