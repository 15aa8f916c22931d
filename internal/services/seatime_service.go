package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"harbourwatch/sealog/internal/accrual"
	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/db/repositories"
	"harbourwatch/sealog/internal/logging"
	"harbourwatch/sealog/internal/metrics"
	"harbourwatch/sealog/internal/models/dtos"
	"harbourwatch/sealog/internal/models/entities"
	gormModels "harbourwatch/sealog/internal/models/gorm"

	"github.com/google/uuid"
)

var (
	ErrEntryStillOpen       = errors.New("entry is still open and cannot be resolved")
	ErrIdenticalCoordinates = errors.New("start and end coordinates are identical")
	ErrUnknownServiceType   = errors.New("unknown service type")
	ErrVesselNotOwned       = errors.New("vessel does not belong to this owner")
	ErrInvalidTimeRange     = errors.New("end time must be after start time")
)

var validServiceTypes = map[string]bool{
	constants.ServiceTypeActualSea:              true,
	constants.ServiceTypeWatchkeeping:           true,
	constants.ServiceTypeAdditionalWatchkeeping: true,
	constants.ServiceTypeYard:                   true,
}

// EntryStore is the slice of the entry repository this service mutates.
type EntryStore interface {
	GetByID(ctx context.Context, id string) (*entities.SeaTimeEntry, error)
	ListPending(ctx context.Context, ownerID string) ([]entities.SeaTimeEntry, error)
	Confirm(ctx context.Context, id string, params repositories.ConfirmParams) (*entities.SeaTimeEntry, error)
	Reject(ctx context.Context, id string, notes string) (*entities.SeaTimeEntry, error)
	InsertConfirmed(ctx context.Context, e *entities.SeaTimeEntry) error
	Delete(ctx context.Context, id string) error
}

// VesselStore resolves a vessel for ownership checks.
type VesselStore interface {
	GetByID(ctx context.Context, vesselID string) (*gormModels.Vessel, error)
}

// SeaTimeService is the confirmation and manual-entry surface over pending
// entries. Confirming an entry is what feeds the accrual engine.
type SeaTimeService struct {
	entries EntryStore
	vessels VesselStore
	metrics *metrics.MetricsRegistry
}

func NewSeaTimeService(entries EntryStore, vessels VesselStore, metricsReg *metrics.MetricsRegistry) *SeaTimeService {
	return &SeaTimeService{entries: entries, vessels: vessels, metrics: metricsReg}
}

func (s *SeaTimeService) ListPending(ctx context.Context, ownerID string) ([]entities.SeaTimeEntry, error) {
	return s.entries.ListPending(ctx, ownerID)
}

// ConfirmEntry resolves a pending entry with a department and service type.
// The anchor-period annotations are applied here so the stored watchkeeping
// figures and effective sea hours already reflect the anchor exclusions.
func (s *SeaTimeService) ConfirmEntry(ctx context.Context, ownerID, entryID string, req *dtos.ConfirmEntryRequest) (*entities.SeaTimeEntry, error) {
	if !validServiceTypes[req.ServiceType] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownServiceType, req.ServiceType)
	}

	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEntry(ctx, ownerID, entry); err != nil {
		return nil, err
	}
	if entry.IsOpen() {
		return nil, ErrEntryStillOpen
	}

	anchors, err := parseAnchorPeriods(req.AnchorPeriods)
	if err != nil {
		return nil, err
	}

	watchHours := req.WatchkeepingHours
	var effectivePtr *float64
	if len(anchors) > 0 && entry.EndTime != nil {
		effective := accrual.EffectiveSeaHours(entry.StartTime, *entry.EndTime, anchors)
		effectivePtr = &effective
		if watchHours > effective {
			watchHours = effective
		}
	}

	isStationary := req.WasStationary
	additional := req.AdditionalWatchkeepingHours
	// Additional watchkeeping only accrues while stationary under own power.
	if req.ServiceType == constants.ServiceTypeAdditionalWatchkeeping && !(req.WasStationary && req.UnderOwnPower) {
		additional = 0
	}

	confirmed, err := s.entries.Confirm(ctx, entryID, repositories.ConfirmParams{
		ServiceType:                 req.ServiceType,
		WatchkeepingHours:           watchHours,
		AdditionalWatchkeepingHours: additional,
		IsStationary:                isStationary,
		Notes:                       req.Notes,
		EffectiveSeaHours:           effectivePtr,
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.EntriesConfirmedTotal.WithLabelValues("confirmed").Inc()
	}
	logging.Info("Sea time entry confirmed",
		"entry_id", confirmed.ID,
		"service_type", req.ServiceType,
		"department", req.Department,
	)
	return confirmed, nil
}

// RejectEntry discards a pending entry; the record is kept for audit.
func (s *SeaTimeService) RejectEntry(ctx context.Context, ownerID, entryID string, notes string) (*entities.SeaTimeEntry, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEntry(ctx, ownerID, entry); err != nil {
		return nil, err
	}
	if entry.IsOpen() {
		return nil, ErrEntryStillOpen
	}

	rejected, err := s.entries.Reject(ctx, entryID, notes)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.EntriesConfirmedTotal.WithLabelValues("rejected").Inc()
	}
	return rejected, nil
}

// CreateManualEntry records sea time directly in confirmed status, bypassing
// detection. A request whose start and end coordinates are identical is
// rejected as a conflict: it is indistinguishable from a stale repeated fix.
func (s *SeaTimeService) CreateManualEntry(ctx context.Context, ownerID string, req *dtos.ManualEntryRequest) (*entities.SeaTimeEntry, error) {
	if !validServiceTypes[req.ServiceType] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownServiceType, req.ServiceType)
	}

	vessel, err := s.vessels.GetByID(ctx, req.VesselID)
	if err != nil {
		return nil, err
	}
	if vessel.OwnerID != ownerID {
		return nil, ErrVesselNotOwned
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end_time: %w", err)
	}
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	if req.StartLatitude != nil && req.StartLongitude != nil &&
		req.EndLatitude != nil && req.EndLongitude != nil &&
		*req.StartLatitude == *req.EndLatitude && *req.StartLongitude == *req.EndLongitude {
		return nil, ErrIdenticalCoordinates
	}

	duration := accrual.RoundHours(start, end)
	endUTC := end.UTC()
	notes := req.Notes

	entry := &entities.SeaTimeEntry{
		ID:             uuid.New().String(),
		VesselID:       req.VesselID,
		StartTime:      start.UTC(),
		EndTime:        &endUTC,
		DurationHours:  &duration,
		Status:         constants.EntryStatusConfirmed,
		ServiceType:    &req.ServiceType,
		StartLatitude:  req.StartLatitude,
		StartLongitude: req.StartLongitude,
		EndLatitude:    req.EndLatitude,
		EndLongitude:   req.EndLongitude,
		Notes:          &notes,
	}

	if err := s.entries.InsertConfirmed(ctx, entry); err != nil {
		return nil, err
	}

	logging.Info("Manual sea time entry recorded",
		"entry_id", entry.ID,
		"vessel_id", entry.VesselID,
		"duration_hours", duration,
	)
	return entry, nil
}

func (s *SeaTimeService) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if err := s.authorizeEntry(ctx, ownerID, entry); err != nil {
		return err
	}
	return s.entries.Delete(ctx, entryID)
}

// authorizeEntry checks that the entry's vessel belongs to the caller. Every
// mutation of a sea time entry must pass through this check.
func (s *SeaTimeService) authorizeEntry(ctx context.Context, ownerID string, entry *entities.SeaTimeEntry) error {
	vessel, err := s.vessels.GetByID(ctx, entry.VesselID)
	if err != nil {
		return err
	}
	if vessel.OwnerID != ownerID {
		return ErrVesselNotOwned
	}
	return nil
}

func parseAnchorPeriods(raw []dtos.AnchorPeriod) ([]accrual.AnchorPeriod, error) {
	periods := make([]accrual.AnchorPeriod, 0, len(raw))
	for _, p := range raw {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid anchor period start: %w", err)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("invalid anchor period end: %w", err)
		}
		periods = append(periods, accrual.AnchorPeriod{
			Start:                 start.UTC(),
			End:                   end.UTC(),
			OperationallyRequired: p.OperationallyRequired,
			TerminalEnd:           p.TerminalEnd,
		})
	}
	return periods, nil
}
