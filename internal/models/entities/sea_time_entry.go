package entities

import "time"

// SeaTimeEntry is one detected or manually logged period at sea.
// An open entry (end_time IS NULL) is still being tracked; a closed entry
// waits in 'pending' until the mariner confirms or rejects it.
type SeaTimeEntry struct {
	ID                          string     `db:"id"`
	VesselID                    string     `db:"vessel_id"`
	StartTime                   time.Time  `db:"start_time"`
	EndTime                     *time.Time `db:"end_time"`
	DurationHours               *float64   `db:"duration_hours"`
	Status                      string     `db:"status"`
	ServiceType                 *string    `db:"service_type"`
	WatchkeepingHours           float64    `db:"watchkeeping_hours"`
	AdditionalWatchkeepingHours float64    `db:"additional_watchkeeping_hours"`
	IsStationary                bool       `db:"is_stationary"`
	StartLatitude               *float64   `db:"start_latitude"`
	StartLongitude              *float64   `db:"start_longitude"`
	EndLatitude                 *float64   `db:"end_latitude"`
	EndLongitude                *float64   `db:"end_longitude"`
	EffectiveSeaHours           *float64   `db:"effective_sea_hours"`
	Notes                       *string    `db:"notes"`
	CreatedAt                   time.Time  `db:"created_at"`
	UpdatedAt                   time.Time  `db:"updated_at"`
}

// IsOpen reports whether the entry is still being tracked.
func (e *SeaTimeEntry) IsOpen() bool {
	return e.EndTime == nil
}

// IsTerminal reports whether the entry can no longer change status.
func (e *SeaTimeEntry) IsTerminal() bool {
	return e.Status == "confirmed" || e.Status == "rejected"
}
