package dtos

// EntryResponse is the outward shape of a sea-time entry.
type EntryResponse struct {
	ID                          string   `json:"id"`
	VesselID                    string   `json:"vessel_id"`
	StartTime                   string   `json:"start_time"`
	EndTime                     *string  `json:"end_time,omitempty"`
	DurationHours               *float64 `json:"duration_hours,omitempty"`
	Status                      string   `json:"status"`
	ServiceType                 *string  `json:"service_type,omitempty"`
	WatchkeepingHours           float64  `json:"watchkeeping_hours"`
	AdditionalWatchkeepingHours float64  `json:"additional_watchkeeping_hours"`
	EffectiveSeaHours           *float64 `json:"effective_sea_hours,omitempty"`
	IsStationary                bool     `json:"is_stationary"`
	MCACompliant                bool     `json:"mca_compliant"`
	RequiresReview              bool     `json:"requires_review"`
	Notes                       *string  `json:"notes,omitempty"`
}

// MonthlyServiceReport aggregates confirmed hours for one vessel and month.
type MonthlyServiceReport struct {
	VesselID       string             `json:"vessel_id"`
	VesselName     string             `json:"vessel_name"`
	Month          string             `json:"month"`
	HoursByService map[string]float64 `json:"hours_by_service"`
	Accrual        AccrualReport      `json:"accrual"`
}

// AccrualReport carries the MCA accrual figures for a set of entries.
type AccrualReport struct {
	ActualSeaDays              int      `json:"actual_sea_days"`
	WatchkeepingDays           int      `json:"watchkeeping_days"`
	AdditionalWatchkeepingDays int      `json:"additional_watchkeeping_days"`
	YardServiceDays            int      `json:"yard_service_days"`
	YardServiceFlagged         int      `json:"yard_service_flagged"`
	EntriesRequiringReview     []string `json:"entries_requiring_review,omitempty"`
	EntriesRequiringDocuments  []string `json:"entries_requiring_documents,omitempty"`
}
