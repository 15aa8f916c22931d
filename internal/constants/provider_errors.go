package constants

// Position Provider Error Codes
// These constants define specific error scenarios for the external AIS feed

// Credential-related errors
const (
	ErrCodeInvalidAPIKey        = "INVALID_API_KEY"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeNetworkError         = "NETWORK_ERROR"
	ErrCodeRequestTimeout       = "REQUEST_TIMEOUT"
	ErrCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
)

// Vessel/data errors
const (
	ErrCodeVesselNotFound    = "VESSEL_NOT_FOUND"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
	ErrCodeDataOutOfRange    = "DATA_OUT_OF_RANGE"
)

// Error Messages
// Human-readable messages corresponding to error codes

var ProviderErrorMessages = map[string]string{
	ErrCodeInvalidAPIKey:        "The AIS API key is invalid or has been revoked",
	ErrCodeRateLimited:          "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:         "Unable to reach the AIS position service",
	ErrCodeRequestTimeout:       "The AIS position service did not respond in time",
	ErrCodeAuthenticationFailed: "Authentication with the AIS position service failed",

	ErrCodeVesselNotFound:    "No vessel with this MMSI is known to the AIS position service",
	ErrCodeInvalidDataFormat: "The position payload format is invalid",
	ErrCodeDataOutOfRange:    "The position value is outside the acceptable range",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ProviderErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
