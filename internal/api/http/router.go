package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-assignment/internal/api/http/handlers"
	"github.com/spec-kit/ticket-assignment/internal/auth"
	"github.com/spec-kit/ticket-assignment/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Operators      *handlers.OperatorsHandler
	Agents         *handlers.AgentsHandler
	Tickets        *handlers.TicketsHandler
	Assignments    *handlers.AssignmentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Operators.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/operators", auth.RequireRole(domain.OperatorRoleAdmin), cfg.Operators.Create)
	authProtected.Post("/password/change", auth.RequireRole(), cfg.Operators.ChangePassword)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	agents := api.Group("/agents")
	agents.Get("/", auth.RequireRole(), cfg.Agents.List)
	agents.Get("/:id", auth.RequireRole(), cfg.Agents.Get)
	agents.Post("/", auth.RequireRole(domain.OperatorRoleAdmin), cfg.Agents.Create)
	agents.Put("/:id", auth.RequireRole(domain.OperatorRoleAdmin), cfg.Agents.Update)
	agents.Delete("/:id", auth.RequireRole(domain.OperatorRoleAdmin), cfg.Agents.Delete)

	tickets := api.Group("/tickets")
	tickets.Get("/", auth.RequireRole(), cfg.Tickets.List)
	tickets.Get("/:id", auth.RequireRole(), cfg.Tickets.Get)
	tickets.Post("/classify", auth.RequireRole(), cfg.Tickets.Classify)
	tickets.Post("/", auth.RequireRole(domain.OperatorRoleAdmin, domain.OperatorRoleDispatcher), cfg.Tickets.Create)
	tickets.Delete("/:id", auth.RequireRole(domain.OperatorRoleAdmin, domain.OperatorRoleDispatcher), cfg.Tickets.Delete)

	assignments := api.Group("/assignments")
	assignments.Post("/runs", auth.RequireRole(domain.OperatorRoleAdmin, domain.OperatorRoleDispatcher), cfg.Assignments.Run)
	assignments.Get("/stats", auth.RequireRole(), cfg.Assignments.Stats)
	assignments.Get("/runs", auth.RequireRole(), cfg.Assignments.List)
	assignments.Get("/runs/:id", auth.RequireRole(), cfg.Assignments.Get)
	assignments.Get("/runs/:id/report", auth.RequireRole(), cfg.Assignments.Report)
}
