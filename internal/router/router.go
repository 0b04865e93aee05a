package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emscoord/internship-api/internal/config"
	"github.com/emscoord/internship-api/internal/handler"
	"github.com/emscoord/internship-api/internal/middleware"
	"github.com/emscoord/internship-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	InternshipHandler *handler.InternshipHandler
	PlacementHandler  *handler.PlacementHandler
	CloseoutHandler   *handler.CloseoutHandler
	EvaluationHandler *handler.EvaluationHandler
	DashboardHandler  *handler.DashboardHandler
	ReferenceHandler  *handler.ReferenceHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/api/v1/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	api := app.Group("/api/v1", jwtMiddleware, func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.InternshipHandler != nil {
		deps.InternshipHandler.Register(api.Group("/internships"))
	}
	if deps.PlacementHandler != nil {
		deps.PlacementHandler.Register(api)
	}
	if deps.CloseoutHandler != nil {
		deps.CloseoutHandler.Register(api)
	}
	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.Register(api)
	}
	if deps.DashboardHandler != nil {
		guard := middleware.RequireRole("coordinator", "director")
		limit := middleware.RateLimit("dashboard", 30, time.Minute)
		api.Use("/dashboard", guard, limit)
		api.Use("/reminders", guard, limit)
		deps.DashboardHandler.Register(api)
	}
	if deps.ReferenceHandler != nil {
		deps.ReferenceHandler.Register(api)
	}
}
