package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/handler"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Event  *handler.EventHandler
	Venue  *handler.VenueHandler
	Host   *handler.HostHandler
	Vote   *handler.VoteHandler
	Stats  *handler.StatsHandler
	Export *handler.ExportHandler
	Admin  *handler.AdminHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks (before API group, not rate limited)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus metrics
	app.Get("/metrics", handler.MetricsHandler())

	// Per-route rate limiters
	listLimit := middleware.NewListRateLimiter().Handler()
	voteLimit := middleware.NewVoteRateLimiter().Handler()
	writeLimit := middleware.NewWriteRateLimiter().Handler()
	exportLimit := middleware.NewExportRateLimiter().Handler()

	// API routes
	api := app.Group("/api")

	// Listing routes
	api.Get("/events", h.Event.List, listLimit)
	api.Get("/venues", h.Venue.List, listLimit)
	api.Get("/hosts", h.Host.List, listLimit)
	api.Get("/hosts/:hostId", h.Host.GetByID, listLimit)

	// Catalog writes
	api.Post("/events", h.Event.Create, writeLimit)
	api.Post("/venues", h.Venue.Create, writeLimit)
	api.Post("/hosts", h.Host.Create, writeLimit)

	// Vote routes
	api.Post("/votes", h.Vote.Cast, voteLimit)
	api.Delete("/votes/:voteId", h.Vote.Retract, voteLimit)
	api.Get("/votes", h.Vote.GetOwn, listLimit)

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, listLimit)

	// Directory export
	api.Get("/directory/export", h.Export.Export, exportLimit)

	// Admin routes
	api.Post("/admin/audit", h.Admin.Audit, writeLimit)
}
