package entities

import "time"

// ScheduledTask drives the polling cadence for one vessel. Rows are owned and
// mutated only by the scheduler; last_latitude/last_longitude carry the most
// recent fix so a stale repeated position can be recognised on the next poll.
type ScheduledTask struct {
	ID            string     `db:"id"`
	VesselID      string     `db:"vessel_id"`
	TaskType      string     `db:"task_type"`
	IntervalHours float64    `db:"interval_hours"`
	LastRun       *time.Time `db:"last_run"`
	NextRun       time.Time  `db:"next_run"`
	IsActive      bool       `db:"is_active"`
	LastLatitude  *float64   `db:"last_latitude"`
	LastLongitude *float64   `db:"last_longitude"`
	LastSeen      *time.Time `db:"last_seen"`
	CreatedAt     time.Time  `db:"created_at"`
}

// Interval returns the polling interval as a duration.
func (t *ScheduledTask) Interval() time.Duration {
	return time.Duration(t.IntervalHours * float64(time.Hour))
}
