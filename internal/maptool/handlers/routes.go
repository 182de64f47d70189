package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// Register вешает маршруты сервиса карт. docs может быть nil.
func Register(app fiber.Router, health *HealthHandler, maps *MapHandler, docs *DocsHandler) {
	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", health.Liveness)
	app.Get("/health/ready", health.Readiness)
	app.Get("/health/startup", health.Startup)

	// ============================================================
	// Map Routes
	// ============================================================

	app.Get("/defaults", maps.Defaults)
	app.Post("/maps", maps.Create)
	app.Get("/maps", maps.List)
	app.Get("/maps/:id", maps.Get)
	app.Get("/maps/:id/svg", maps.GetSVG)
	app.Delete("/maps/:id", maps.Delete)

	// ============================================================
	// Stateless Tools
	// ============================================================

	app.Post("/resolve", Resolve)
	app.Post("/render", Render)
	app.Post("/import", Import)

	if docs != nil {
		app.Get("/docs", docs.UI)
		app.Get("/docs/openapi.yaml", docs.Spec)
	}
}
