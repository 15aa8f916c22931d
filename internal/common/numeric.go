package common

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseNullableFloat normalizes a numeric field from the AIS wire payload.
// Upstream receivers return these fields as a JSON number, a quoted string,
// or null; NaN and Infinity are treated as missing. All numeric boundary
// conversion goes through here so business logic never re-validates.
func ParseNullableFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}

	// Quoted string form: "12.4"
	if strings.HasPrefix(s, `"`) {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil
		}
		s = strings.TrimSpace(inner)
		if s == "" {
			return nil
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Float64Ptr is a convenience for building nullable numeric fields.
func Float64Ptr(f float64) *float64 {
	return &f
}
