package repositories

import (
	"context"
	"time"

	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/models/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TaskRepository owns scheduled_tasks. The scheduler is its only writer.
type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db}
}

// LeaseDue atomically claims every active task due at `now` by pushing its
// next_run out to the lease horizon in the same statement that selects it.
// An overlapping tick, or a second scheduler process, cannot claim the same
// task until the lease expires or the worker releases it.
func (r *TaskRepository) LeaseDue(ctx context.Context, now time.Time, leaseUntil time.Time) ([]entities.ScheduledTask, error) {
	rows, err := r.db.QueryxContext(ctx, constants.LeaseDueTasks, now, leaseUntil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []entities.ScheduledTask{}
	for rows.Next() {
		var task entities.ScheduledTask
		if err := rows.StructScan(&task); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// MarkRun records a successful run: last_run advances and the next poll is
// scheduled one interval out.
func (r *TaskRepository) MarkRun(ctx context.Context, taskID string, lastRun, nextRun time.Time) error {
	_, err := r.db.ExecContext(ctx, constants.MarkTaskRun, taskID, lastRun, nextRun)
	return err
}

// Release returns a leased task to the queue without advancing last_run,
// so a failed poll is retried on the next tick.
func (r *TaskRepository) Release(ctx context.Context, taskID string, nextRun time.Time) error {
	_, err := r.db.ExecContext(ctx, constants.ReleaseTask, taskID, nextRun)
	return err
}

// CreateForVessel schedules polling for a newly activated vessel.
func (r *TaskRepository) CreateForVessel(ctx context.Context, vesselID string, intervalHours float64) (*entities.ScheduledTask, error) {
	var task entities.ScheduledTask

	err := r.db.QueryRowxContext(ctx, constants.InsertTask,
		uuid.New().String(),
		vesselID,
		string(constants.TaskTypePositionPoll),
		intervalHours,
		time.Now().UTC(),
	).StructScan(&task)
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// DeleteForVessel removes the vessel's polling task on deactivation/deletion.
func (r *TaskRepository) DeleteForVessel(ctx context.Context, vesselID string) error {
	_, err := r.db.ExecContext(ctx, constants.DeleteTasksForVessel, vesselID)
	return err
}

// UpdateObservation stores the most recent fix on the task row so the next
// poll can recognise a stale repeated position.
func (r *TaskRepository) UpdateObservation(ctx context.Context, taskID string, lat, lon *float64, seenAt time.Time) error {
	_, err := r.db.ExecContext(ctx, constants.UpdateTaskObservation, taskID, lat, lon, seenAt)
	return err
}
