package detector

import (
	"context"
	"errors"
	"time"

	"harbourwatch/sealog/internal/accrual"
	"harbourwatch/sealog/internal/db/repositories"
	"harbourwatch/sealog/internal/logging"
	"harbourwatch/sealog/internal/models/dtos"
	"harbourwatch/sealog/internal/models/entities"
)

// EntryStore is the slice of the entry repository the tracker mutates.
type EntryStore interface {
	GetOpenEntry(ctx context.Context, vesselID string) (*entities.SeaTimeEntry, error)
	CreateEntry(ctx context.Context, vesselID string, start time.Time, lat, lon *float64) (*entities.SeaTimeEntry, error)
	CloseEntry(ctx context.Context, id string, end time.Time, durationHours float64, lat, lon *float64) (*entities.SeaTimeEntry, error)
}

// Tracker applies decided effects to the entry store. It is the mutation half
// of the decide/apply split; every repository write in the detection pipeline
// goes through here.
type Tracker struct {
	entries EntryStore
}

func NewTracker(entries EntryStore) *Tracker {
	return &Tracker{entries: entries}
}

// OpenEntry returns the vessel's open entry, if any. The scheduler calls this
// before Decide so the decision is made against persisted state, never an
// in-memory cache.
func (t *Tracker) OpenEntry(ctx context.Context, vesselID string) (*entities.SeaTimeEntry, error) {
	return t.entries.GetOpenEntry(ctx, vesselID)
}

// Apply executes one effect for one vessel. Open re-checks for an existing
// open entry and reuses it rather than duplicating, which makes the
// transition safe under scheduler retries and duplicate ticks. Extend and
// None touch nothing.
func (t *Tracker) Apply(ctx context.Context, vesselID string, snapshot *dtos.PositionSnapshot, effect Effect) (*entities.SeaTimeEntry, error) {
	switch effect {
	case EffectOpen:
		entry, err := t.entries.CreateEntry(ctx, vesselID, snapshot.Timestamp, snapshot.Latitude, snapshot.Longitude)
		if errors.Is(err, repositories.ErrDuplicateOpenEntry) {
			// A concurrent or retried tick got there first; the existing
			// open entry is extended implicitly.
			logging.Warn("Duplicate open entry suppressed",
				"vessel_id", vesselID,
				"entry_id", entry.ID,
			)
			return entry, nil
		}
		if err != nil {
			return nil, err
		}
		logging.Info("Sea time entry opened",
			"vessel_id", vesselID,
			"entry_id", entry.ID,
			"start_time", entry.StartTime,
		)
		return entry, nil

	case EffectClose:
		open, err := t.entries.GetOpenEntry(ctx, vesselID)
		if err != nil {
			return nil, err
		}
		if open == nil {
			// Already closed by an earlier retry; nothing to do.
			return nil, nil
		}

		duration := accrual.RoundHours(open.StartTime, snapshot.Timestamp)
		entry, err := t.entries.CloseEntry(ctx, open.ID, snapshot.Timestamp, duration, snapshot.Latitude, snapshot.Longitude)
		if err != nil {
			return nil, err
		}
		logging.Info("Sea time entry closed",
			"vessel_id", vesselID,
			"entry_id", entry.ID,
			"duration_hours", duration,
			"mca_compliant", accrual.MCACompliant(duration),
		)
		return entry, nil

	case EffectExtend, EffectNone:
		return nil, nil
	}

	return nil, nil
}
