package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"harbourwatch/sealog/internal/common"
	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/models/dtos"

	"golang.org/x/time/rate"
)

// PositionProvider is the interface the scheduler polls against.
type PositionProvider interface {
	// FetchPosition returns the vessel's latest fix, the upstream HTTP
	// status, and a typed error on failure.
	FetchPosition(ctx context.Context, vesselID, mmsi string) (*dtos.PositionSnapshot, int, error)

	// PositionURL returns the request URL for a given MMSI, for the
	// diagnostic log.
	PositionURL(mmsi string) string

	// GetProviderType returns the provider type identifier
	GetProviderType() string
}

// AISProvider implements PositionProvider against the AIS position API
type AISProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	limiter *rate.Limiter
}

var _ PositionProvider = (*AISProvider)(nil)

// NewAISProvider creates a new AIS position API provider
func NewAISProvider() *AISProvider {
	baseURL := os.Getenv("AIS_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.aishub-gateway.net/v2" // Default
	}
	apiKey := os.Getenv("AIS_API_KEY")

	return &AISProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Client-side pacing so a misbehaving tick cannot hammer the feed.
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// GetProviderType returns the provider type identifier
func (p *AISProvider) GetProviderType() string {
	return "ais_position_api"
}

// PositionURL builds the request URL for one vessel.
func (p *AISProvider) PositionURL(mmsi string) string {
	return fmt.Sprintf("%s/vessels/%s/position", p.BaseURL, mmsi)
}

// FetchPosition fetches the latest fix for one vessel. Numeric fields in the
// payload may arrive as string, number or null; they are normalized here,
// once, at the system boundary.
func (p *AISProvider) FetchPosition(ctx context.Context, vesselID, mmsi string) (*dtos.PositionSnapshot, int, error) {
	// Input validation
	if mmsi == "" {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "MMSI cannot be empty",
		}
	}

	// Validate API key
	if p.APIKey == "" {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: "AIS_API_KEY environment variable is not set",
		}
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, 0, &ProviderError{
				Code:    constants.ErrCodeRequestTimeout,
				Message: constants.GetErrorMessage(constants.ErrCodeRequestTimeout),
				Err:     err,
			}
		}
	}

	// Build request
	url := p.PositionURL(mmsi)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	// Set headers
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	// Execute request
	resp, err := p.Client.Do(req)
	if err != nil {
		code := constants.ErrCodeNetworkError
		if ctx.Err() == context.DeadlineExceeded {
			code = constants.ErrCodeRequestTimeout
		}
		return nil, 0, &ProviderError{
			Code:    code,
			Message: constants.GetErrorMessage(code),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to read response body",
			Err:     readErr,
		}
	}

	// Handle HTTP errors
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, p.buildHTTPError(resp.StatusCode, mmsi, string(bodyBytes))
	}

	// Parse response
	var raw dtos.AISPositionResponse
	if err := json.Unmarshal(bodyBytes, &raw); err != nil {
		return nil, resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to decode response",
			Details: string(bodyBytes),
			Err:     err,
		}
	}

	snapshot, err := p.normalize(vesselID, &raw.Result)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	snapshot.RawBody = string(bodyBytes)

	return snapshot, resp.StatusCode, nil
}

// normalize converts the raw wire payload into a PositionSnapshot.
func (p *AISProvider) normalize(vesselID string, raw *dtos.AISPositionRaw) (*dtos.PositionSnapshot, error) {
	ts, err := common.ParseAISTime(raw.Timestamp)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: fmt.Sprintf("Unparseable position timestamp %q", raw.Timestamp),
			Err:     err,
		}
	}

	lat := common.ParseNullableFloat(raw.Latitude)
	lon := common.ParseNullableFloat(raw.Longitude)
	speed := common.ParseNullableFloat(raw.Speed)

	if lat != nil && (*lat < -90 || *lat > 90) {
		return nil, &ProviderError{
			Code:    constants.ErrCodeDataOutOfRange,
			Message: fmt.Sprintf("Latitude %f out of range", *lat),
		}
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		return nil, &ProviderError{
			Code:    constants.ErrCodeDataOutOfRange,
			Message: fmt.Sprintf("Longitude %f out of range", *lon),
		}
	}

	return &dtos.PositionSnapshot{
		VesselID:   vesselID,
		MMSI:       raw.MMSI,
		Timestamp:  ts.UTC(),
		Latitude:   lat,
		Longitude:  lon,
		SpeedKnots: speed,
		RawStatus:  raw.Status,
	}, nil
}

// buildHTTPError creates appropriate error based on status code
func (p *AISProvider) buildHTTPError(statusCode int, mmsi string, body string) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: fmt.Sprintf("Authentication failed fetching position for MMSI %s", mmsi),
			Details: body,
		}
	case http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeVesselNotFound,
			Message: fmt.Sprintf("No position for MMSI %s", mmsi),
			Details: body,
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: body,
		}
	case http.StatusGatewayTimeout:
		return &ProviderError{
			Code:    constants.ErrCodeRequestTimeout,
			Message: constants.GetErrorMessage(constants.ErrCodeRequestTimeout),
			Details: body,
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d fetching position for MMSI %s", statusCode, mmsi),
			Details: body,
		}
	}
}
