package jobs

import (
	"errors"
	"strings"
	"testing"

	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/models/dtos"
	"harbourwatch/sealog/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseBodyForLog(t *testing.T) {
	payload := `{"errorCode":0,"result":{"mmsi":"235099999"}}`

	t.Run("successful poll stores the snapshot payload", func(t *testing.T) {
		body := responseBodyForLog(&dtos.PositionSnapshot{RawBody: payload}, nil)
		require.NotNil(t, body)
		assert.Equal(t, payload, *body)
	})

	t.Run("provider failure stores the error details", func(t *testing.T) {
		fetchErr := &providers.ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: "rate limited",
			Details: `{"error":"too many requests"}`,
		}
		body := responseBodyForLog(nil, fetchErr)
		require.NotNil(t, body)
		assert.Equal(t, `{"error":"too many requests"}`, *body)
	})

	t.Run("failure without upstream body stores nothing", func(t *testing.T) {
		assert.Nil(t, responseBodyForLog(nil, errors.New("connection refused")))
	})

	t.Run("oversized payloads are truncated", func(t *testing.T) {
		huge := strings.Repeat("x", maxLoggedBodyBytes+500)
		body := responseBodyForLog(&dtos.PositionSnapshot{RawBody: huge}, nil)
		require.NotNil(t, body)
		assert.Len(t, *body, maxLoggedBodyBytes)
	})
}
