package dtos

// ConfirmEntryRequest resolves a pending entry into a confirmed one and feeds
// the accrual engine.
type ConfirmEntryRequest struct {
	Department                  string         `json:"department"`
	ServiceType                 string         `json:"service_type"`
	WatchkeepingHours           float64        `json:"watchkeeping_hours"`
	AdditionalWatchkeepingHours float64        `json:"additional_watchkeeping_hours"`
	WasStationary               bool           `json:"was_stationary"`
	UnderOwnPower               bool           `json:"under_own_power"`
	AnchorPeriods               []AnchorPeriod `json:"anchor_periods,omitempty"`
	Notes                       string         `json:"notes"`
}

// AnchorPeriod annotates time at anchor or moorings inside a voyage so the
// accrual engine can decide whether it counts toward the sea day.
type AnchorPeriod struct {
	Start                 string `json:"start"`
	End                   string `json:"end"`
	OperationallyRequired bool   `json:"operationally_required"`
	TerminalEnd           bool   `json:"terminal_end"`
}

// RejectEntryRequest discards a pending entry.
type RejectEntryRequest struct {
	Notes string `json:"notes"`
}

// ManualEntryRequest creates a confirmed entry directly, bypassing detection.
type ManualEntryRequest struct {
	VesselID       string   `json:"vessel_id"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	ServiceType    string   `json:"service_type"`
	StartLatitude  *float64 `json:"start_latitude,omitempty"`
	StartLongitude *float64 `json:"start_longitude,omitempty"`
	EndLatitude    *float64 `json:"end_latitude,omitempty"`
	EndLongitude   *float64 `json:"end_longitude,omitempty"`
	Notes          string   `json:"notes"`
}
