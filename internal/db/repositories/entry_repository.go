package repositories

import (
	"context"
	"database/sql"
	"time"

	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/models/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// EntryRepository owns all reads and writes of sea_time_entries. It enforces
// the two structural invariants the tracker depends on: at most one open
// entry per vessel, and no overlapping [start_time, end_time) ranges.
type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db}
}

// ConfirmParams carries the accrual output written alongside confirmation.
type ConfirmParams struct {
	ServiceType                 string
	WatchkeepingHours           float64
	AdditionalWatchkeepingHours float64
	IsStationary                bool
	Notes                       string
	// EffectiveSeaHours is set when anchor periods reduced the creditable
	// hours below the raw duration; nil means the full duration counts.
	EffectiveSeaHours *float64
}

// GetOpenEntry returns the vessel's open entry, or nil if the vessel is not
// currently being tracked.
func (r *EntryRepository) GetOpenEntry(ctx context.Context, vesselID string) (*entities.SeaTimeEntry, error) {
	var entry entities.SeaTimeEntry

	err := r.db.QueryRowxContext(ctx, constants.GetOpenEntryByVessel, vesselID).StructScan(&entry)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id string) (*entities.SeaTimeEntry, error) {
	var entry entities.SeaTimeEntry

	err := r.db.QueryRowxContext(ctx, constants.GetEntryByID, id).StructScan(&entry)
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// CreateEntry opens a new entry for a vessel. It refuses to create a second
// open entry for the same vessel and refuses ranges that overlap an existing
// entry; both cases leave the store untouched so scheduler retries are safe.
func (r *EntryRepository) CreateEntry(ctx context.Context, vesselID string, start time.Time, lat, lon *float64) (*entities.SeaTimeEntry, error) {
	existing, err := r.GetOpenEntry(ctx, vesselID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, ErrDuplicateOpenEntry
	}

	// An open entry extends to infinity for overlap purposes.
	if err := r.checkOverlap(ctx, vesselID, start, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		return nil, err
	}

	var entry entities.SeaTimeEntry
	err = r.db.QueryRowxContext(ctx, constants.InsertEntry,
		uuid.New().String(),
		vesselID,
		start,
		lat,
		lon,
	).StructScan(&entry)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// InsertConfirmed writes a manual entry directly in confirmed status.
// Used by the manual-entry surface, never by the detection pipeline.
func (r *EntryRepository) InsertConfirmed(ctx context.Context, e *entities.SeaTimeEntry) error {
	if err := r.checkOverlap(ctx, e.VesselID, e.StartTime, *e.EndTime); err != nil {
		return err
	}

	query := `
	INSERT INTO sea_time_entries (
		id, vessel_id, start_time, end_time, duration_hours, status, service_type,
		start_latitude, start_longitude, end_latitude, end_longitude, is_stationary, notes
	)
	VALUES ($1, $2, $3, $4, $5, 'confirmed', $6, $7, $8, $9, $10, false, $11)
	RETURNING *
	`
	return r.db.QueryRowxContext(ctx, query,
		e.ID, e.VesselID, e.StartTime, e.EndTime, e.DurationHours, e.ServiceType,
		e.StartLatitude, e.StartLongitude, e.EndLatitude, e.EndLongitude, e.Notes,
	).StructScan(e)
}

// CloseEntry sets end_time and derived duration on an open entry, moving it
// into pending. Closing an already-closed entry is a no-op returning the
// current row, which keeps the transition idempotent under retries.
func (r *EntryRepository) CloseEntry(ctx context.Context, id string, end time.Time, durationHours float64, lat, lon *float64) (*entities.SeaTimeEntry, error) {
	var entry entities.SeaTimeEntry

	err := r.db.QueryRowxContext(ctx, constants.CloseEntry, id, end, durationHours, lat, lon).StructScan(&entry)
	if err == sql.ErrNoRows {
		return r.GetByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *EntryRepository) ListPending(ctx context.Context, ownerID string) ([]entities.SeaTimeEntry, error) {
	entries := []entities.SeaTimeEntry{}
	err := r.db.SelectContext(ctx, &entries, constants.ListPendingEntries, ownerID)
	return entries, err
}

// Confirm resolves a pending entry. Confirming a terminal entry returns
// ErrInvalidEntryState with no mutation; status transitions are monotonic.
func (r *EntryRepository) Confirm(ctx context.Context, id string, params ConfirmParams) (*entities.SeaTimeEntry, error) {
	var entry entities.SeaTimeEntry

	err := r.db.QueryRowxContext(ctx, constants.ConfirmEntry,
		id,
		params.ServiceType,
		params.WatchkeepingHours,
		params.AdditionalWatchkeepingHours,
		params.IsStationary,
		params.Notes,
		params.EffectiveSeaHours,
	).StructScan(&entry)
	if err == sql.ErrNoRows {
		if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, ErrInvalidEntryState
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// Reject resolves a pending entry without crediting any service.
func (r *EntryRepository) Reject(ctx context.Context, id string, notes string) (*entities.SeaTimeEntry, error) {
	var entry entities.SeaTimeEntry

	err := r.db.QueryRowxContext(ctx, constants.RejectEntry, id, notes).StructScan(&entry)
	if err == sql.ErrNoRows {
		if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, ErrInvalidEntryState
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, constants.DeleteEntry, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ListConfirmedForMonth returns the owner's confirmed entries starting within
// [from, to), ordered by start time. Used by the reporting surface.
func (r *EntryRepository) ListConfirmedForMonth(ctx context.Context, ownerID string, from, to time.Time) ([]entities.SeaTimeEntry, error) {
	entries := []entities.SeaTimeEntry{}
	err := r.db.SelectContext(ctx, &entries, constants.ListConfirmedEntriesForMonth, ownerID, from, to)
	return entries, err
}

func (r *EntryRepository) checkOverlap(ctx context.Context, vesselID string, start, end time.Time) error {
	var count int
	if err := r.db.GetContext(ctx, &count, constants.CountOverlappingEntries, vesselID, start, end); err != nil {
		return err
	}
	if count > 0 {
		return ErrOverlappingEntry
	}
	return nil
}
