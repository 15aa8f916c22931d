package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"harbourwatch/sealog/internal/db/repositories"
	"harbourwatch/sealog/internal/detector"
	"harbourwatch/sealog/internal/metrics"
	"harbourwatch/sealog/internal/models/dtos"
	"harbourwatch/sealog/internal/models/entities"
	"harbourwatch/sealog/internal/providers"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Lease horizon: a claimed task is invisible to other ticks (and other
// scheduler processes) for this long. A crashed worker's task resurfaces
// once the lease expires.
const leaseHorizon = 10 * time.Minute

// PositionPollJob drives the detection pipeline: for every due vessel task it
// fetches a position, classifies movement, and applies the resulting entry
// transition. Vessels are polled concurrently; one vessel's failure never
// blocks another's.
type PositionPollJob struct {
	tasks     *repositories.TaskRepository
	vessels   *repositories.VesselRepository
	debugLogs *repositories.DebugLogRepository
	provider  providers.PositionProvider
	tracker   *detector.Tracker
	metrics   *metrics.MetricsRegistry
	workers   int64
}

// NewPositionPollJob creates a new position poll job instance
func NewPositionPollJob(
	tasks *repositories.TaskRepository,
	vessels *repositories.VesselRepository,
	debugLogs *repositories.DebugLogRepository,
	provider providers.PositionProvider,
	tracker *detector.Tracker,
	metricsReg *metrics.MetricsRegistry,
	workers int,
) *PositionPollJob {
	if workers < 1 {
		workers = 4
	}
	return &PositionPollJob{
		tasks:     tasks,
		vessels:   vessels,
		debugLogs: debugLogs,
		provider:  provider,
		tracker:   tracker,
		metrics:   metricsReg,
		workers:   int64(workers),
	}
}

// Tick runs one scheduling pass: lease every due task, poll each vessel on a
// bounded worker pool, and reschedule. A task advances (last_run, next_run)
// only on success; on failure it is released back to `now` so the next tick
// retries it.
func (j *PositionPollJob) Tick(ctx context.Context, now time.Time) error {
	start := time.Now()

	tasks, err := j.tasks.LeaseDue(ctx, now, now.Add(leaseHorizon))
	if err != nil {
		return fmt.Errorf("failed to lease due tasks: %w", err)
	}

	if j.metrics != nil {
		j.metrics.TasksLeased.Set(float64(len(tasks)))
	}
	if len(tasks) == 0 {
		return nil
	}

	log.Printf("[PositionPollJob] Leased %d due tasks", len(tasks))

	sem := semaphore.NewWeighted(j.workers)
	g, gctx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		task := task
		if err := sem.Acquire(gctx, 1); err != nil {
			// Context cancelled mid-tick; release the unstarted task.
			_ = j.tasks.Release(ctx, task.ID, now)
			continue
		}
		g.Go(func() error {
			defer sem.Release(1)

			if err := j.runTask(gctx, &task, now); err != nil {
				log.Printf("[PositionPollJob] Error polling vessel %s: %v", task.VesselID, err)
				if relErr := j.tasks.Release(ctx, task.ID, now); relErr != nil {
					log.Printf("[PositionPollJob] Warning - failed to release task %s: %v", task.ID, relErr)
				}
				// Per-task failures are isolated; never abort the tick.
				return nil
			}

			interval := task.Interval()
			if markErr := j.tasks.MarkRun(ctx, task.ID, now, now.Add(interval)); markErr != nil {
				log.Printf("[PositionPollJob] Warning - failed to mark task %s run: %v", task.ID, markErr)
			}
			return nil
		})
	}

	_ = g.Wait()

	if j.metrics != nil {
		j.metrics.TickDuration.Observe(time.Since(start).Seconds())
	}
	log.Printf("[PositionPollJob] Tick completed in %s for %d tasks",
		time.Since(start).Truncate(time.Millisecond), len(tasks))

	return nil
}

// runTask polls one vessel and applies the detected transition. No persisted
// entry state changes before a successful fetch, so any failure here is safe
// to retry at the next tick.
func (j *PositionPollJob) runTask(ctx context.Context, task *entities.ScheduledTask, now time.Time) error {
	pollStart := time.Now()

	vessel, err := j.vessels.GetByID(ctx, task.VesselID)
	if err != nil {
		return fmt.Errorf("failed to load vessel: %w", err)
	}
	if !vessel.IsActive {
		// Deactivated between scheduling and execution; skip quietly.
		return nil
	}

	snapshot, status, fetchErr := j.provider.FetchPosition(ctx, vessel.ID, vessel.MMSI)
	j.appendDebugLog(ctx, vessel.ID, vessel.MMSI, now, status, snapshot, fetchErr)

	outcome := "success"
	if fetchErr != nil {
		if providers.IsAuthError(fetchErr) {
			outcome = "auth_error"
			if j.metrics != nil {
				j.metrics.ProviderAuthFails.Inc()
			}
		} else {
			outcome = "provider_error"
		}
	}
	if j.metrics != nil {
		j.metrics.PollsTotal.WithLabelValues(outcome).Inc()
		j.metrics.PollDuration.WithLabelValues(outcome).Observe(time.Since(pollStart).Seconds())
	}

	if fetchErr != nil {
		return fetchErr
	}

	open, err := j.tracker.OpenEntry(ctx, vessel.ID)
	if err != nil {
		return fmt.Errorf("failed to load open entry: %w", err)
	}

	prior := detector.Observation{
		Latitude:  task.LastLatitude,
		Longitude: task.LastLongitude,
		SeenAt:    task.LastSeen,
	}
	effect := detector.Decide(snapshot, vessel.PropulsionType, prior, open != nil)

	entry, err := j.tracker.Apply(ctx, vessel.ID, snapshot, effect)
	if err != nil {
		return fmt.Errorf("failed to apply %s: %w", effect, err)
	}

	if j.metrics != nil && entry != nil {
		switch effect {
		case detector.EffectOpen:
			j.metrics.EntriesOpenedTotal.Inc()
		case detector.EffectClose:
			j.metrics.EntriesClosedTotal.Inc()
		}
	}

	if err := j.tasks.UpdateObservation(ctx, task.ID, snapshot.Latitude, snapshot.Longitude, snapshot.Timestamp); err != nil {
		log.Printf("[PositionPollJob] Warning - failed to store observation for task %s: %v", task.ID, err)
	}

	return nil
}

// Upstream payloads are stored truncated; the log is for diagnosis, not
// archival.
const maxLoggedBodyBytes = 2048

// appendDebugLog records one poll attempt in the append-only diagnostic log.
// Provider failures surface here, not to the end user.
func (j *PositionPollJob) appendDebugLog(ctx context.Context, vesselID, mmsi string, requestTime time.Time, status int, snapshot *dtos.PositionSnapshot, fetchErr error) {
	authStatus := "ok"
	var errMsg *string
	if fetchErr != nil {
		msg := fetchErr.Error()
		errMsg = &msg
		if providers.IsAuthError(fetchErr) {
			authStatus = "failed"
		}
	}

	var respStatus *int
	if status != 0 {
		respStatus = &status
	}

	logEntry := &entities.AISDebugLog{
		VesselID:       vesselID,
		MMSI:           mmsi,
		APIURL:         j.provider.PositionURL(mmsi),
		RequestTime:    requestTime,
		ResponseStatus: respStatus,
		ResponseBody:   responseBodyForLog(snapshot, fetchErr),
		AuthStatus:     authStatus,
		ErrorMessage:   errMsg,
	}

	if err := j.debugLogs.Append(ctx, logEntry); err != nil {
		log.Printf("[PositionPollJob] Warning - failed to append debug log for vessel %s: %v", vesselID, err)
	}
}

// responseBodyForLog picks the upstream payload to store with a poll record:
// the error details when the provider failed, else the snapshot's raw body.
func responseBodyForLog(snapshot *dtos.PositionSnapshot, fetchErr error) *string {
	var pErr *providers.ProviderError
	if errors.As(fetchErr, &pErr) && pErr.Details != "" {
		return truncateBody(pErr.Details)
	}
	if snapshot != nil && snapshot.RawBody != "" {
		return truncateBody(snapshot.RawBody)
	}
	return nil
}

func truncateBody(body string) *string {
	if len(body) > maxLoggedBodyBytes {
		body = body[:maxLoggedBodyBytes]
	}
	return &body
}

// RunScheduled runs the poll job on a fixed tick (e.g., every minute).
func (j *PositionPollJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start so due tasks don't wait a full tick.
	if err := j.Tick(ctx, time.Now().UTC()); err != nil {
		log.Printf("[PositionPollJob] Error in initial tick: %v", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Tick(ctx, time.Now().UTC()); err != nil {
				log.Printf("[PositionPollJob] Error in scheduled tick: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[PositionPollJob] Shutting down scheduler")
			return
		}
	}
}
