package entities

import "time"

// AISDebugLog is an append-only record of one poll attempt against the AIS
// feed. Rows are never mutated; they exist for operational diagnosis only.
type AISDebugLog struct {
	ID             string    `db:"id"`
	VesselID       string    `db:"vessel_id"`
	MMSI           string    `db:"mmsi"`
	APIURL         string    `db:"api_url"`
	RequestTime    time.Time `db:"request_time"`
	ResponseStatus *int      `db:"response_status"`
	ResponseBody   *string   `db:"response_body"`
	AuthStatus     string    `db:"authentication_status"`
	ErrorMessage   *string   `db:"error_message"`
	CreatedAt      time.Time `db:"created_at"`
}
