package providers

import (
	"errors"
	"fmt"

	"harbourwatch/sealog/internal/constants"
)

// ProviderError is the typed error surfaced by position providers. Code maps
// onto the constants error-code table so callers can branch on scenario
// without string matching.
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err is a credential failure. The scheduler
// keeps the task scheduled regardless; a fixed credential resumes tracking
// without manual re-enable.
func IsAuthError(err error) bool {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Code == constants.ErrCodeInvalidAPIKey ||
			pErr.Code == constants.ErrCodeAuthenticationFailed
	}
	return false
}

// IsTransient reports whether err should simply be retried at the next tick.
func IsTransient(err error) bool {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		switch pErr.Code {
		case constants.ErrCodeNetworkError, constants.ErrCodeRequestTimeout, constants.ErrCodeRateLimited:
			return true
		}
	}
	return false
}
