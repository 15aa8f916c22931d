package routes

import (
	"harbourwatch/sealog/internal/api"
	"harbourwatch/sealog/internal/db/repositories"
	"harbourwatch/sealog/internal/metrics"
	"harbourwatch/sealog/internal/middleware"
	"harbourwatch/sealog/internal/services"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, keysRepo *repositories.KeysRepo,
	seaTimeSvc *services.SeaTimeService, vesselSvc *services.VesselService, reportingSvc *services.ReportingService) {

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(middleware.AuthMiddleware(keysRepo)) // global: all routes are owner-scoped

		// Confirmation surface
		v1.Get("/entries/pending", api.ListPendingEntriesHandler(seaTimeSvc))
		v1.Post("/entries/{entry_id}/confirm", api.ConfirmEntryHandler(seaTimeSvc))
		v1.Post("/entries/{entry_id}/reject", api.RejectEntryHandler(seaTimeSvc))
		v1.Delete("/entries/{entry_id}", api.DeleteEntryHandler(seaTimeSvc))

		// Manual-entry surface
		v1.Post("/entries/manual", api.CreateManualEntryHandler(seaTimeSvc))

		// Vessel tracking control
		v1.Get("/vessels", api.ListVesselsHandler(vesselSvc))
		v1.Post("/vessels/{vessel_id}/activate", api.ActivateVesselHandler(vesselSvc))
		v1.Post("/vessels/{vessel_id}/deactivate", api.DeactivateVesselHandler(vesselSvc))

		// Reporting surface
		v1.Get("/reports/sea-service", api.SeaServiceReportHandler(reportingSvc))

		// Dashboard link generation for companion-app access
		v1.Post("/auth/generate-dashboard-link", api.GenerateLinkTokenHandler())
	})
}
