package accrual

import (
	"sort"
	"time"

	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/models/dtos"
	"harbourwatch/sealog/internal/models/entities"

	"github.com/shopspring/decimal"
)

// The accrual engine converts confirmed sea-time entries into the figures an
// MCA sea-service application is built from: actual sea days, watchkeeping
// days, additional (stationary) watchkeeping, and yard service. All
// calendar-day bucketing is done in UTC.

var (
	watchBlock = decimal.NewFromFloat(constants.WatchkeepingBlockHours)
	minSeaDay  = decimal.NewFromFloat(constants.MCAMinimumSeaDayHours)
)

// RoundHours returns (end - start) in hours, rounded to 2 decimals and
// clamped to zero. This is the only place entry durations are derived.
func RoundHours(start, end time.Time) float64 {
	if end.Before(start) {
		return 0
	}
	hours := decimal.NewFromFloat(end.Sub(start).Hours())
	f, _ := hours.Round(2).Float64()
	return f
}

// MCACompliant reports whether a duration meets the 4-hour minimum for an
// actual sea day. Entries below the threshold are flagged for manual review,
// never discarded.
func MCACompliant(durationHours float64) bool {
	return decimal.NewFromFloat(durationHours).GreaterThanOrEqual(minSeaDay)
}

// WatchkeepingDays converts summed watchkeeping hours into accrued days:
// every started 4-hour block counts as one day. 0h → 0, 4h → 1, 4.01h → 2.
func WatchkeepingDays(totalHours float64) int {
	if totalHours <= 0 {
		return 0
	}
	days := decimal.NewFromFloat(totalHours).Div(watchBlock).Ceil()
	return int(days.IntPart())
}

// DayBucket is one UTC calendar day's share of an entry.
type DayBucket struct {
	Date  time.Time // midnight UTC
	Hours float64
}

// DayBuckets splits [start, end) across UTC calendar days.
func DayBuckets(start, end time.Time) []DayBucket {
	if !end.After(start) {
		return nil
	}

	var buckets []DayBucket
	cursor := start.UTC()
	for cursor.Before(end) {
		day := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), 0, 0, 0, 0, time.UTC)
		next := day.AddDate(0, 0, 1)
		segEnd := end.UTC()
		if next.Before(segEnd) {
			segEnd = next
		}
		buckets = append(buckets, DayBucket{
			Date:  day,
			Hours: RoundHours(cursor, segEnd),
		})
		cursor = segEnd
	}
	return buckets
}

// QualifiesSeaDay reports whether one calendar day's bucket counts as an
// actual sea day: at least 4 continuous propulsion hours, or any passage
// time for a wind-powered vessel.
func QualifiesSeaDay(bucket DayBucket, propulsion string) bool {
	if propulsion == constants.PropulsionSail {
		return bucket.Hours > 0
	}
	return decimal.NewFromFloat(bucket.Hours).GreaterThanOrEqual(minSeaDay)
}

// AnchorPeriod is a resolved annotation of time at anchor or moorings inside
// a voyage.
type AnchorPeriod struct {
	Start                 time.Time
	End                   time.Time
	OperationallyRequired bool
	TerminalEnd           bool
}

// EffectiveSeaHours subtracts non-qualifying anchor time from a voyage.
// Anchor time stays in the total only when it is operationally required, is
// not the terminal end of the passage, and is no longer than the voyage
// segment immediately preceding it.
func EffectiveSeaHours(start, end time.Time, anchors []AnchorPeriod) float64 {
	total := decimal.NewFromFloat(RoundHours(start, end))

	sorted := make([]AnchorPeriod, len(anchors))
	copy(sorted, anchors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	segStart := start
	for _, a := range sorted {
		if a.End.Before(a.Start) || a.Start.Before(start) || a.End.After(end) {
			continue
		}
		anchorHours := RoundHours(a.Start, a.End)
		precedingHours := RoundHours(segStart, a.Start)

		included := a.OperationallyRequired && !a.TerminalEnd && anchorHours <= precedingHours
		if !included {
			total = total.Sub(decimal.NewFromFloat(anchorHours))
		}
		segStart = a.End
	}

	if total.IsNegative() {
		return 0
	}
	f, _ := total.Round(2).Float64()
	return f
}

// Summarize aggregates a set of confirmed entries into the accrual figures
// for one department. propulsionByVessel supplies each vessel's propulsion
// type for the sea-day rule.
func Summarize(entries []entities.SeaTimeEntry, propulsionByVessel map[string]string, department string) dtos.AccrualReport {
	report := dtos.AccrualReport{}

	seaDayDates := map[time.Time]bool{}
	yardDates := map[time.Time]bool{}
	var yardOrder []time.Time
	yardEntryByDate := map[time.Time]string{}

	var watchHours, additionalHours decimal.Decimal
	additionalDates := map[time.Time]bool{}

	for _, e := range entries {
		if e.EndTime == nil || e.Status != constants.EntryStatusConfirmed {
			continue
		}
		serviceType := ""
		if e.ServiceType != nil {
			serviceType = *e.ServiceType
		}

		if e.DurationHours != nil && !MCACompliant(*e.DurationHours) {
			report.EntriesRequiringReview = append(report.EntriesRequiringReview, e.ID)
		}

		switch serviceType {
		case constants.ServiceTypeYard:
			for _, b := range DayBuckets(e.StartTime, *e.EndTime) {
				if !yardDates[b.Date] {
					yardDates[b.Date] = true
					yardOrder = append(yardOrder, b.Date)
					yardEntryByDate[b.Date] = e.ID
				}
			}
			continue

		case constants.ServiceTypeAdditionalWatchkeeping:
			// Engineering only, and only while stationary on own power.
			if department != constants.DepartmentEngineering || !e.IsStationary {
				continue
			}
			additionalHours = additionalHours.Add(decimal.NewFromFloat(e.AdditionalWatchkeepingHours))
			for _, b := range DayBuckets(e.StartTime, *e.EndTime) {
				additionalDates[b.Date] = true
			}
			continue
		}

		// Actual sea service and watchkeeping both ride on passage entries.
		// Anchor exclusions recorded at confirmation shrink the creditable
		// hours pro rata across the entry's calendar days.
		propulsion := propulsionByVessel[e.VesselID]
		factor := 1.0
		if e.EffectiveSeaHours != nil && e.DurationHours != nil && *e.DurationHours > 0 {
			factor = *e.EffectiveSeaHours / *e.DurationHours
			if factor > 1 {
				factor = 1
			}
		}
		for _, b := range DayBuckets(e.StartTime, *e.EndTime) {
			b.Hours = b.Hours * factor
			if QualifiesSeaDay(b, propulsion) {
				seaDayDates[b.Date] = true
			}
		}
		watchHours = watchHours.Add(decimal.NewFromFloat(e.WatchkeepingHours))
	}

	// An additional-watchkeeping day is mutually exclusive with an actual
	// sea day on the same date; the sea day wins.
	for date := range additionalDates {
		if seaDayDates[date] {
			delete(additionalDates, date)
		}
	}

	report.ActualSeaDays = len(seaDayDates)

	wf, _ := watchHours.Float64()
	report.WatchkeepingDays = WatchkeepingDays(wf)
	// Watchkeeping cannot exceed actual sea days for deck; applied at
	// reporting time, not entry time.
	if department == constants.DepartmentDeck && report.WatchkeepingDays > report.ActualSeaDays {
		report.WatchkeepingDays = report.ActualSeaDays
	}

	af, _ := additionalHours.Float64()
	additionalDays := WatchkeepingDays(af)
	// Never more additional days than dates that survived the exclusivity
	// rule above.
	if additionalDays > len(additionalDates) {
		additionalDays = len(additionalDates)
	}
	report.AdditionalWatchkeepingDays = additionalDays

	// Yard service: 90-day cap per application. Days beyond the cap are
	// still recorded but flagged for supporting documentation.
	sort.Slice(yardOrder, func(i, j int) bool { return yardOrder[i].Before(yardOrder[j]) })
	if len(yardOrder) > constants.YardServiceCapDays {
		report.YardServiceDays = constants.YardServiceCapDays
		report.YardServiceFlagged = len(yardOrder) - constants.YardServiceCapDays
		flaggedSeen := map[string]bool{}
		for _, date := range yardOrder[constants.YardServiceCapDays:] {
			id := yardEntryByDate[date]
			if !flaggedSeen[id] {
				flaggedSeen[id] = true
				report.EntriesRequiringDocuments = append(report.EntriesRequiringDocuments, id)
			}
		}
	} else {
		report.YardServiceDays = len(yardOrder)
	}

	return report
}
