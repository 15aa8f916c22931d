package services

import (
	"context"
	"testing"
	"time"

	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/db/repositories"
	"harbourwatch/sealog/internal/models/dtos"
	"harbourwatch/sealog/internal/models/entities"
	gormModels "harbourwatch/sealog/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntryStore mirrors the entry repository's contract in memory: monotonic
// status transitions, ErrEntryNotFound on misses.
type fakeEntryStore struct {
	entries   map[string]*entities.SeaTimeEntry
	confirmed map[string]repositories.ConfirmParams
	inserted  []*entities.SeaTimeEntry
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{
		entries:   map[string]*entities.SeaTimeEntry{},
		confirmed: map[string]repositories.ConfirmParams{},
	}
}

func (f *fakeEntryStore) GetByID(_ context.Context, id string) (*entities.SeaTimeEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, repositories.ErrEntryNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEntryStore) ListPending(_ context.Context, _ string) ([]entities.SeaTimeEntry, error) {
	return nil, nil
}

func (f *fakeEntryStore) Confirm(_ context.Context, id string, params repositories.ConfirmParams) (*entities.SeaTimeEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, repositories.ErrEntryNotFound
	}
	if e.Status != constants.EntryStatusPending {
		return nil, repositories.ErrInvalidEntryState
	}
	e.Status = constants.EntryStatusConfirmed
	e.ServiceType = &params.ServiceType
	e.WatchkeepingHours = params.WatchkeepingHours
	e.AdditionalWatchkeepingHours = params.AdditionalWatchkeepingHours
	e.IsStationary = params.IsStationary
	e.EffectiveSeaHours = params.EffectiveSeaHours
	f.confirmed[id] = params
	copied := *e
	return &copied, nil
}

func (f *fakeEntryStore) Reject(_ context.Context, id string, notes string) (*entities.SeaTimeEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, repositories.ErrEntryNotFound
	}
	if e.Status != constants.EntryStatusPending {
		return nil, repositories.ErrInvalidEntryState
	}
	e.Status = constants.EntryStatusRejected
	e.Notes = &notes
	copied := *e
	return &copied, nil
}

func (f *fakeEntryStore) InsertConfirmed(_ context.Context, e *entities.SeaTimeEntry) error {
	f.inserted = append(f.inserted, e)
	stored := *e
	f.entries[e.ID] = &stored
	return nil
}

func (f *fakeEntryStore) Delete(_ context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return repositories.ErrEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

type fakeVesselStore struct {
	vessels map[string]*gormModels.Vessel
}

func (f *fakeVesselStore) GetByID(_ context.Context, vesselID string) (*gormModels.Vessel, error) {
	v, ok := f.vessels[vesselID]
	if !ok {
		return nil, repositories.ErrVesselNotFound
	}
	return v, nil
}

func newTestSeaTimeService() (*SeaTimeService, *fakeEntryStore) {
	entries := newFakeEntryStore()
	vessels := &fakeVesselStore{vessels: map[string]*gormModels.Vessel{
		"v1": {ID: "v1", MMSI: "235000001", Name: "MV v1", PropulsionType: constants.PropulsionEngine, OwnerID: "owner-1"},
	}}
	return NewSeaTimeService(entries, vessels, nil), entries
}

func pendingEntry(id, vesselID string, start, end time.Time) *entities.SeaTimeEntry {
	d := end.Sub(start).Hours()
	return &entities.SeaTimeEntry{
		ID:            id,
		VesselID:      vesselID,
		StartTime:     start,
		EndTime:       &end,
		DurationHours: &d,
		Status:        constants.EntryStatusPending,
	}
}

func TestConfirmEntry_WrongOwner(t *testing.T) {
	svc, entries := newTestSeaTimeService()
	start := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	entries.entries["e1"] = pendingEntry("e1", "v1", start, start.Add(8*time.Hour))

	_, err := svc.ConfirmEntry(context.Background(), "owner-2", "e1", &dtos.ConfirmEntryRequest{
		ServiceType: constants.ServiceTypeActualSea,
	})
	assert.ErrorIs(t, err, ErrVesselNotOwned)

	// The entry must be untouched: still pending, no confirmation recorded.
	assert.Empty(t, entries.confirmed)
	assert.Equal(t, constants.EntryStatusPending, entries.entries["e1"].Status)
}

func TestRejectEntry_WrongOwner(t *testing.T) {
	svc, entries := newTestSeaTimeService()
	start := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	entries.entries["e1"] = pendingEntry("e1", "v1", start, start.Add(8*time.Hour))

	_, err := svc.RejectEntry(context.Background(), "owner-2", "e1", "not mine")
	assert.ErrorIs(t, err, ErrVesselNotOwned)
	assert.Equal(t, constants.EntryStatusPending, entries.entries["e1"].Status)
}

func TestDeleteEntry_OwnerScoped(t *testing.T) {
	svc, entries := newTestSeaTimeService()
	start := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	entries.entries["e1"] = pendingEntry("e1", "v1", start, start.Add(8*time.Hour))

	err := svc.DeleteEntry(context.Background(), "owner-2", "e1")
	assert.ErrorIs(t, err, ErrVesselNotOwned)
	assert.Contains(t, entries.entries, "e1")

	require.NoError(t, svc.DeleteEntry(context.Background(), "owner-1", "e1"))
	assert.NotContains(t, entries.entries, "e1")
}

func TestConfirmEntry_PersistsAnchorExclusions(t *testing.T) {
	svc, entries := newTestSeaTimeService()
	start := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	entries.entries["e1"] = pendingEntry("e1", "v1", start, start.Add(12*time.Hour))

	// 10 of the 12 hours were spent at a non-required anchorage.
	confirmed, err := svc.ConfirmEntry(context.Background(), "owner-1", "e1", &dtos.ConfirmEntryRequest{
		ServiceType:       constants.ServiceTypeActualSea,
		WatchkeepingHours: 8,
		AnchorPeriods: []dtos.AnchorPeriod{{
			Start: start.Add(1 * time.Hour).Format(time.RFC3339),
			End:   start.Add(11 * time.Hour).Format(time.RFC3339),
		}},
	})
	require.NoError(t, err)

	params := entries.confirmed["e1"]
	require.NotNil(t, params.EffectiveSeaHours)
	assert.Equal(t, 2.0, *params.EffectiveSeaHours)
	// Watchkeeping cannot exceed the effective hours either.
	assert.Equal(t, 2.0, params.WatchkeepingHours)
	require.NotNil(t, confirmed.EffectiveSeaHours)
	assert.Equal(t, 2.0, *confirmed.EffectiveSeaHours)
}

func TestConfirmEntry_OpenEntryRefused(t *testing.T) {
	svc, entries := newTestSeaTimeService()
	start := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	open := pendingEntry("e1", "v1", start, start.Add(8*time.Hour))
	open.EndTime = nil
	open.DurationHours = nil
	entries.entries["e1"] = open

	_, err := svc.ConfirmEntry(context.Background(), "owner-1", "e1", &dtos.ConfirmEntryRequest{
		ServiceType: constants.ServiceTypeActualSea,
	})
	assert.ErrorIs(t, err, ErrEntryStillOpen)
}

func TestCreateManualEntry_IdenticalCoordinates(t *testing.T) {
	svc, entries := newTestSeaTimeService()
	start := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	lat, lon := 50.36, -4.14
	_, err := svc.CreateManualEntry(context.Background(), "owner-1", &dtos.ManualEntryRequest{
		VesselID:       "v1",
		StartTime:      start.Format(time.RFC3339),
		EndTime:        start.Add(6 * time.Hour).Format(time.RFC3339),
		ServiceType:    constants.ServiceTypeActualSea,
		StartLatitude:  &lat,
		StartLongitude: &lon,
		EndLatitude:    &lat,
		EndLongitude:   &lon,
	})

	// Identical start and end coordinates are indistinguishable from a stale
	// repeated fix; the request is refused as a conflict.
	assert.ErrorIs(t, err, ErrIdenticalCoordinates)
	assert.Empty(t, entries.inserted)
}

func TestCreateManualEntry_WrongOwner(t *testing.T) {
	svc, entries := newTestSeaTimeService()
	start := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	_, err := svc.CreateManualEntry(context.Background(), "owner-2", &dtos.ManualEntryRequest{
		VesselID:    "v1",
		StartTime:   start.Format(time.RFC3339),
		EndTime:     start.Add(6 * time.Hour).Format(time.RFC3339),
		ServiceType: constants.ServiceTypeActualSea,
	})
	assert.ErrorIs(t, err, ErrVesselNotOwned)
	assert.Empty(t, entries.inserted)
}

func TestCreateManualEntry_InvalidTimeRange(t *testing.T) {
	svc, _ := newTestSeaTimeService()
	start := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	_, err := svc.CreateManualEntry(context.Background(), "owner-1", &dtos.ManualEntryRequest{
		VesselID:    "v1",
		StartTime:   start.Format(time.RFC3339),
		EndTime:     start.Add(-time.Hour).Format(time.RFC3339),
		ServiceType: constants.ServiceTypeActualSea,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
