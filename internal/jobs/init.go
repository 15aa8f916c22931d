package jobs

import (
	"context"
	"os"
	"strconv"
	"time"

	"harbourwatch/sealog/internal/db/repositories"
	"harbourwatch/sealog/internal/detector"
	"harbourwatch/sealog/internal/metrics"
	"harbourwatch/sealog/internal/providers"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	tasks *repositories.TaskRepository,
	vessels *repositories.VesselRepository,
	debugLogs *repositories.DebugLogRepository,
	entries *repositories.EntryRepository,
	metricsReg *metrics.MetricsRegistry,
) *PositionPollJob {
	workers := 4
	if v := os.Getenv("POLL_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workers = n
		}
	}

	pollJob := NewPositionPollJob(
		tasks,
		vessels,
		debugLogs,
		providers.NewAISProvider(),
		detector.NewTracker(entries),
		metricsReg,
		workers,
	)

	// The tick cadence is fixed; per-vessel cadence lives on the task rows.
	go pollJob.RunScheduled(ctx, 1*time.Minute)

	return pollJob
}
