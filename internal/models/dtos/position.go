package dtos

import (
	"encoding/json"
	"time"
)

// PositionSnapshot is one normalized fix from the AIS feed. It is transient:
// the engine never persists snapshots, only the entries derived from them.
// Latitude, longitude and speed are nullable because the feed regularly
// returns partial fixes for vessels between AIS receivers.
type PositionSnapshot struct {
	VesselID   string
	MMSI       string
	Timestamp  time.Time
	Latitude   *float64
	Longitude  *float64
	SpeedKnots *float64
	RawStatus  string
	// RawBody is the verbatim provider payload the snapshot was decoded
	// from, kept for the diagnostic log.
	RawBody string
}

// HasFix reports whether the snapshot carries usable coordinates.
func (s *PositionSnapshot) HasFix() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// SameCoordinates reports whether two fixes share identical coordinates.
// Used to recognise a stale repeated position from the upstream feed.
func (s *PositionSnapshot) SameCoordinates(lat, lon *float64) bool {
	if s.Latitude == nil || s.Longitude == nil || lat == nil || lon == nil {
		return false
	}
	return *s.Latitude == *lat && *s.Longitude == *lon
}

// AISPositionRaw mirrors the provider's wire payload. Numeric fields arrive
// as string, number or null depending on the upstream receiver, so they are
// kept raw here and normalized once at the provider boundary.
type AISPositionRaw struct {
	MMSI      string          `json:"mmsi"`
	Timestamp string          `json:"timestamp"`
	Latitude  json.RawMessage `json:"latitude"`
	Longitude json.RawMessage `json:"longitude"`
	Speed     json.RawMessage `json:"speed"`
	Status    string          `json:"status"`
}

// AISPositionResponse is the provider's response envelope.
type AISPositionResponse struct {
	ErrorCode int            `json:"errorCode"`
	Result    AISPositionRaw `json:"result"`
}
