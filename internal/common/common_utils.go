package common

import (
	"fmt"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// ParseAISTime converts strings like
// "2025-07-27 09:57:51Z"  →  time.Time (UTC)
// The feed also emits plain RFC3339, so both layouts are accepted.
func ParseAISTime(s string) (time.Time, error) {
	const layout = "2006-01-02 15:04:05Z07:00" // space-separated, UTC suffix

	if t, err := time.Parse(layout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
