// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baskit-app/baskit/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	assistantHandler *handlers.AssistantHandler,
	listHandler *handlers.ListHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Natural-language message flow and direct tool execution.
		r.Post("/assistant/messages", assistantHandler.HandleMessage)
		r.Post("/tools/execute", assistantHandler.ExecuteTool)

		// List views and operations without a dispatch-table tool.
		r.Get("/lists", listHandler.ListSummaries)
		r.Get("/lists/default", listHandler.GetDefaultList)
		r.Get("/lists/{name}", listHandler.GetList)
		r.Post("/lists/{name}/restore", listHandler.RestoreList)
		r.Post("/lists/{name}/rename", listHandler.RenameList)
	})

	return r
}
