package routes

import (
	"context"
	"net/http"
	"time"

	"harbourwatch/sealog/internal/api"
	"harbourwatch/sealog/internal/common"
	"harbourwatch/sealog/internal/db"
	"harbourwatch/sealog/internal/db/repositories"
	"harbourwatch/sealog/internal/jobs"
	"harbourwatch/sealog/internal/logging"
	"harbourwatch/sealog/internal/metrics"
	"harbourwatch/sealog/internal/middleware"
	"harbourwatch/sealog/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time, cache common.CacheInterface) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Repositories
	entryRepo := repositories.NewEntryRepository(db.DB)
	taskRepo := repositories.NewTaskRepository(db.DB)
	debugLogRepo := repositories.NewDebugLogRepository(db.DB)
	keysRepo := repositories.NewKeysRepo(db.DB)
	vesselRepo := repositories.NewVesselRepository(db.PgDB)

	// Services
	seaTimeSvc := services.NewSeaTimeService(entryRepo, vesselRepo, metricsReg)
	vesselSvc := services.NewVesselService(vesselRepo, taskRepo, cache)
	reportingSvc := services.NewReportingService(entryRepo, vesselRepo, cache)

	// Setup the detection scheduler
	jobs.InitializeJobs(
		context.Background(),
		taskRepo,
		vesselRepo,
		debugLogRepo,
		entryRepo,
		metricsReg,
	)

	// Register API routes
	RegisterAPIRoutes(r, metricsReg, keysRepo, seaTimeSvc, vesselSvc, reportingSvc)

	return r
}
