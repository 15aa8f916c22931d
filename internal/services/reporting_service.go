package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"harbourwatch/sealog/internal/accrual"
	"harbourwatch/sealog/internal/common"
	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/db/repositories"
	"harbourwatch/sealog/internal/models/dtos"
	"harbourwatch/sealog/internal/models/entities"

	"github.com/shopspring/decimal"
)

// ReportingService aggregates confirmed hours by vessel, month and service
// type. Reports are cached briefly; confirmation volume is low and reports
// are read repeatedly while filling in an application.
type ReportingService struct {
	entries *repositories.EntryRepository
	vessels *repositories.VesselRepository
	cache   common.CacheInterface
}

func NewReportingService(entries *repositories.EntryRepository, vessels *repositories.VesselRepository, cache common.CacheInterface) *ReportingService {
	return &ReportingService{entries: entries, vessels: vessels, cache: cache}
}

// MonthlySummary builds the sea-service report for one owner and month
// ("2026-08"), split per vessel.
func (s *ReportingService) MonthlySummary(ctx context.Context, ownerID, month, department string) ([]dtos.MonthlyServiceReport, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}
	to := from.AddDate(0, 1, 0)

	cacheKey := fmt.Sprintf("%s%s:%s:%s", constants.CachePrefixMonthlyReport, ownerID, month, department)
	if s.cache != nil {
		if val, found := s.cache.Get(cacheKey); found {
			if reports, ok := val.([]dtos.MonthlyServiceReport); ok {
				return reports, nil
			}
		}
	}

	reports, err := s.buildSummary(ctx, ownerID, month, department, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, reports, 10*time.Minute)
	}
	return reports, nil
}

func (s *ReportingService) buildSummary(ctx context.Context, ownerID, month, department string, from, to time.Time) ([]dtos.MonthlyServiceReport, error) {
	entries, err := s.entries.ListConfirmedForMonth(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	byVessel := map[string][]entities.SeaTimeEntry{}
	for _, e := range entries {
		byVessel[e.VesselID] = append(byVessel[e.VesselID], e)
	}

	reports := make([]dtos.MonthlyServiceReport, 0, len(byVessel))
	for vesselID, vesselEntries := range byVessel {
		vessel, err := s.vessels.GetByID(ctx, vesselID)
		if err != nil {
			return nil, err
		}

		hoursByService := map[string]decimal.Decimal{}
		for _, e := range vesselEntries {
			if e.DurationHours == nil || e.ServiceType == nil {
				continue
			}
			hoursByService[*e.ServiceType] = hoursByService[*e.ServiceType].
				Add(decimal.NewFromFloat(*e.DurationHours))
		}

		hours := make(map[string]float64, len(hoursByService))
		for svc, d := range hoursByService {
			f, _ := d.Round(2).Float64()
			hours[svc] = f
		}

		reports = append(reports, dtos.MonthlyServiceReport{
			VesselID:       vesselID,
			VesselName:     vessel.Name,
			Month:          month,
			HoursByService: hours,
			Accrual: accrual.Summarize(vesselEntries,
				map[string]string{vesselID: vessel.PropulsionType}, department),
		})
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].VesselName < reports[j].VesselName })
	return reports, nil
}
