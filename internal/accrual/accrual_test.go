package accrual

import (
	"fmt"
	"testing"
	"time"

	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/models/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func f64Ptr(f float64) *float64   { return &f }
func tPtr(t time.Time) *time.Time { return &t }

func TestRoundHours(t *testing.T) {
	start := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want float64
	}{
		{"whole hours", start.Add(4 * time.Hour), 4.0},
		{"rounds to 2 decimals", start.Add(4*time.Hour + 20*time.Minute), 4.33},
		{"sub-minute", start.Add(36 * time.Second), 0.01},
		{"zero", start, 0},
		{"end before start clamps to zero", start.Add(-2 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundHours(start, tt.end))
		})
	}
}

func TestMCACompliant(t *testing.T) {
	assert.True(t, MCACompliant(4.0))
	assert.True(t, MCACompliant(12.5))
	assert.False(t, MCACompliant(3.99))
	assert.False(t, MCACompliant(0))
}

func TestWatchkeepingDays(t *testing.T) {
	tests := []struct {
		hours float64
		want  int
	}{
		{0, 0},
		{-1, 0},
		{0.5, 1},
		{4.0, 1},
		{4.01, 2},
		{8.0, 2},
		{8.5, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.2fh", tt.hours), func(t *testing.T) {
			assert.Equal(t, tt.want, WatchkeepingDays(tt.hours))
		})
	}
}

func TestDayBuckets_SingleDay(t *testing.T) {
	start := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	end := start.Add(6 * time.Hour)

	buckets := DayBuckets(start, end)
	require.Len(t, buckets, 1)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), buckets[0].Date)
	assert.Equal(t, 6.0, buckets[0].Hours)
}

func TestDayBuckets_SpansMidnight(t *testing.T) {
	start := time.Date(2026, 8, 25, 22, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 26, 5, 0, 0, 0, time.UTC)

	buckets := DayBuckets(start, end)
	require.Len(t, buckets, 2)
	assert.Equal(t, 2.0, buckets[0].Hours)
	assert.Equal(t, 5.0, buckets[1].Hours)
}

func TestDayBuckets_NonUTCInput(t *testing.T) {
	// 23:00 local in UTC+2 is 21:00 UTC; bucketing must follow UTC days.
	loc := time.FixedZone("UTC+2", 2*3600)
	start := time.Date(2026, 8, 25, 23, 0, 0, 0, loc)
	end := start.Add(4 * time.Hour)

	buckets := DayBuckets(start, end)
	require.Len(t, buckets, 2)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), buckets[0].Date)
	assert.Equal(t, 3.0, buckets[0].Hours)
	assert.Equal(t, 1.0, buckets[1].Hours)
}

func TestDayBuckets_EmptyRange(t *testing.T) {
	now := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	assert.Nil(t, DayBuckets(now, now))
	assert.Nil(t, DayBuckets(now, now.Add(-time.Hour)))
}

func TestQualifiesSeaDay(t *testing.T) {
	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	assert.True(t, QualifiesSeaDay(DayBucket{day, 4.0}, constants.PropulsionEngine))
	assert.False(t, QualifiesSeaDay(DayBucket{day, 3.5}, constants.PropulsionEngine))

	// Any passage time counts for a wind-powered vessel.
	assert.True(t, QualifiesSeaDay(DayBucket{day, 0.5}, constants.PropulsionSail))
	assert.False(t, QualifiesSeaDay(DayBucket{day, 0}, constants.PropulsionSail))
}

func TestEffectiveSeaHours(t *testing.T) {
	start := time.Date(2026, 8, 25, 6, 0, 0, 0, time.UTC)
	end := start.Add(12 * time.Hour) // 06:00 - 18:00

	t.Run("no anchors", func(t *testing.T) {
		assert.Equal(t, 12.0, EffectiveSeaHours(start, end, nil))
	})

	t.Run("operationally required anchor shorter than preceding leg stays", func(t *testing.T) {
		anchors := []AnchorPeriod{{
			Start:                 start.Add(5 * time.Hour),
			End:                   start.Add(7 * time.Hour),
			OperationallyRequired: true,
		}}
		assert.Equal(t, 12.0, EffectiveSeaHours(start, end, anchors))
	})

	t.Run("non-required anchor is subtracted", func(t *testing.T) {
		anchors := []AnchorPeriod{{
			Start: start.Add(5 * time.Hour),
			End:   start.Add(7 * time.Hour),
		}}
		assert.Equal(t, 10.0, EffectiveSeaHours(start, end, anchors))
	})

	t.Run("anchor longer than preceding leg is subtracted", func(t *testing.T) {
		anchors := []AnchorPeriod{{
			Start:                 start.Add(2 * time.Hour),
			End:                   start.Add(7 * time.Hour),
			OperationallyRequired: true,
		}}
		assert.Equal(t, 7.0, EffectiveSeaHours(start, end, anchors))
	})

	t.Run("terminal anchor is subtracted", func(t *testing.T) {
		anchors := []AnchorPeriod{{
			Start:                 start.Add(10 * time.Hour),
			End:                   end,
			OperationallyRequired: true,
			TerminalEnd:           true,
		}}
		assert.Equal(t, 10.0, EffectiveSeaHours(start, end, anchors))
	})

	t.Run("anchor outside the voyage is ignored", func(t *testing.T) {
		anchors := []AnchorPeriod{{
			Start: start.Add(-3 * time.Hour),
			End:   start.Add(-1 * time.Hour),
		}}
		assert.Equal(t, 12.0, EffectiveSeaHours(start, end, anchors))
	})
}

func confirmedEntry(id, vesselID string, start, end time.Time, serviceType string, watchHours float64) entities.SeaTimeEntry {
	d := RoundHours(start, end)
	return entities.SeaTimeEntry{
		ID:                id,
		VesselID:          vesselID,
		StartTime:         start,
		EndTime:           tPtr(end),
		DurationHours:     f64Ptr(d),
		Status:            constants.EntryStatusConfirmed,
		ServiceType:       strPtr(serviceType),
		WatchkeepingHours: watchHours,
	}
}

func TestSummarize_ActualSeaDays(t *testing.T) {
	day1 := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	entries := []entities.SeaTimeEntry{
		confirmedEntry("e1", "v1", day1, day1.Add(6*time.Hour), constants.ServiceTypeActualSea, 4),
		// 3h only on the next day: does not qualify for an engine vessel.
		confirmedEntry("e2", "v1", day1.AddDate(0, 0, 1), day1.AddDate(0, 0, 1).Add(3*time.Hour), constants.ServiceTypeActualSea, 0),
	}

	report := Summarize(entries, map[string]string{"v1": constants.PropulsionEngine}, constants.DepartmentDeck)

	assert.Equal(t, 1, report.ActualSeaDays)
	assert.Equal(t, 1, report.WatchkeepingDays)
	assert.Contains(t, report.EntriesRequiringReview, "e2")
	assert.NotContains(t, report.EntriesRequiringReview, "e1")
}

func TestSummarize_AnchorExclusionsReduceSeaDays(t *testing.T) {
	day1 := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	propulsion := map[string]string{"v1": constants.PropulsionEngine}

	// A 12-hour voyage confirmed with 10 hours of non-qualifying anchor
	// time: only 2 effective hours remain, below the 4-hour sea-day floor.
	anchored := confirmedEntry("e1", "v1", day1, day1.Add(12*time.Hour), constants.ServiceTypeActualSea, 0)
	anchored.EffectiveSeaHours = f64Ptr(2.0)

	report := Summarize([]entities.SeaTimeEntry{anchored}, propulsion, constants.DepartmentDeck)
	assert.Equal(t, 0, report.ActualSeaDays)

	// The same voyage without recorded exclusions credits the full day.
	plain := confirmedEntry("e2", "v1", day1, day1.Add(12*time.Hour), constants.ServiceTypeActualSea, 0)
	report = Summarize([]entities.SeaTimeEntry{plain}, propulsion, constants.DepartmentDeck)
	assert.Equal(t, 1, report.ActualSeaDays)

	// Exclusions that leave 4 or more effective hours still qualify.
	partial := confirmedEntry("e3", "v1", day1, day1.Add(12*time.Hour), constants.ServiceTypeActualSea, 0)
	partial.EffectiveSeaHours = f64Ptr(6.0)
	report = Summarize([]entities.SeaTimeEntry{partial}, propulsion, constants.DepartmentDeck)
	assert.Equal(t, 1, report.ActualSeaDays)
}

func TestSummarize_SailVesselShortPassage(t *testing.T) {
	day1 := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	entries := []entities.SeaTimeEntry{
		confirmedEntry("e1", "v1", day1, day1.Add(2*time.Hour), constants.ServiceTypeActualSea, 0),
	}

	report := Summarize(entries, map[string]string{"v1": constants.PropulsionSail}, constants.DepartmentDeck)
	assert.Equal(t, 1, report.ActualSeaDays)
}

func TestSummarize_DeckWatchkeepingCappedAtSeaDays(t *testing.T) {
	day1 := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	// One qualifying sea day but 12 watchkeeping hours claimed.
	entries := []entities.SeaTimeEntry{
		confirmedEntry("e1", "v1", day1, day1.Add(8*time.Hour), constants.ServiceTypeActualSea, 12),
	}

	deck := Summarize(entries, map[string]string{"v1": constants.PropulsionEngine}, constants.DepartmentDeck)
	assert.Equal(t, 1, deck.ActualSeaDays)
	assert.Equal(t, 1, deck.WatchkeepingDays)

	// Engineering watchkeeping is not capped by sea days.
	eng := Summarize(entries, map[string]string{"v1": constants.PropulsionEngine}, constants.DepartmentEngineering)
	assert.Equal(t, 3, eng.WatchkeepingDays)
}

func TestSummarize_AdditionalWatchkeeping(t *testing.T) {
	day1 := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	additional := confirmedEntry("a1", "v1", day2, day2.Add(6*time.Hour), constants.ServiceTypeAdditionalWatchkeeping, 0)
	additional.AdditionalWatchkeepingHours = 6
	additional.IsStationary = true

	entries := []entities.SeaTimeEntry{
		confirmedEntry("e1", "v1", day1, day1.Add(8*time.Hour), constants.ServiceTypeActualSea, 8),
		additional,
	}
	propulsion := map[string]string{"v1": constants.PropulsionEngine}

	eng := Summarize(entries, propulsion, constants.DepartmentEngineering)
	assert.Equal(t, 1, eng.ActualSeaDays)
	// 6h is two started 4-hour blocks, but only one calendar date was worked.
	assert.Equal(t, 1, eng.AdditionalWatchkeepingDays)

	// Deck never accrues additional watchkeeping.
	deck := Summarize(entries, propulsion, constants.DepartmentDeck)
	assert.Equal(t, 0, deck.AdditionalWatchkeepingDays)
}

func TestSummarize_AdditionalExcludedOnSeaDay(t *testing.T) {
	day1 := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	additional := confirmedEntry("a1", "v1", day1.Add(10*time.Hour), day1.Add(16*time.Hour), constants.ServiceTypeAdditionalWatchkeeping, 0)
	additional.AdditionalWatchkeepingHours = 6
	additional.IsStationary = true

	entries := []entities.SeaTimeEntry{
		confirmedEntry("e1", "v1", day1, day1.Add(8*time.Hour), constants.ServiceTypeActualSea, 4),
		additional,
	}

	// The same date cannot count as both a sea day and an additional
	// watchkeeping day; the sea day wins.
	report := Summarize(entries, map[string]string{"v1": constants.PropulsionEngine}, constants.DepartmentEngineering)
	assert.Equal(t, 1, report.ActualSeaDays)
	assert.Equal(t, 0, report.AdditionalWatchkeepingDays)
}

func TestSummarize_YardServiceCap(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// 95 consecutive yard days across two entries.
	entries := []entities.SeaTimeEntry{
		confirmedEntry("y1", "v1", start, start.AddDate(0, 0, 60), constants.ServiceTypeYard, 0),
		confirmedEntry("y2", "v1", start.AddDate(0, 0, 60), start.AddDate(0, 0, 95), constants.ServiceTypeYard, 0),
	}

	report := Summarize(entries, map[string]string{"v1": constants.PropulsionEngine}, constants.DepartmentDeck)

	assert.Equal(t, constants.YardServiceCapDays, report.YardServiceDays)
	assert.Equal(t, 5, report.YardServiceFlagged)
	assert.Equal(t, []string{"y2"}, report.EntriesRequiringDocuments)
	assert.Equal(t, 0, report.ActualSeaDays)
}

func TestSummarize_IgnoresOpenAndUnconfirmed(t *testing.T) {
	day1 := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	open := entities.SeaTimeEntry{
		ID:        "open",
		VesselID:  "v1",
		StartTime: day1,
		Status:    constants.EntryStatusPending,
	}
	pending := confirmedEntry("p1", "v1", day1, day1.Add(8*time.Hour), constants.ServiceTypeActualSea, 8)
	pending.Status = constants.EntryStatusPending

	report := Summarize([]entities.SeaTimeEntry{open, pending}, map[string]string{"v1": constants.PropulsionEngine}, constants.DepartmentDeck)
	assert.Equal(t, 0, report.ActualSeaDays)
	assert.Equal(t, 0, report.WatchkeepingDays)
}
