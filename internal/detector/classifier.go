package detector

import (
	"time"

	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/models/dtos"
)

type (
	Movement string
	Effect   string
)

const (
	MovementMoving     Movement = "moving"
	MovementStationary Movement = "stationary"
	MovementUnknown    Movement = "unknown"

	EffectNone   Effect = "none"
	EffectOpen   Effect = "open"
	EffectExtend Effect = "extend"
	EffectClose  Effect = "close"
)

// Observation is the previous fix recorded for a vessel, used to recognise a
// stale repeated position from the feed.
type Observation struct {
	Latitude  *float64
	Longitude *float64
	SeenAt    *time.Time
}

// MovingThreshold returns the underway speed threshold in knots for a
// propulsion type. Sail vessels make way at lower speeds, so their threshold
// sits below the engine one; propulsion is an explicit vessel attribute, not
// inferred from AIS data.
func MovingThreshold(propulsion string) float64 {
	if propulsion == constants.PropulsionSail {
		return constants.MovingThresholdSailKnots
	}
	return constants.MovingThresholdEngineKnots
}

// Classify maps a snapshot to a movement state. Pure: identical inputs always
// yield identical output. A missing speed yields Unknown, never a transition,
// so a bad fix can never open or close an entry.
func Classify(snapshot *dtos.PositionSnapshot, propulsion string) Movement {
	if snapshot == nil || snapshot.SpeedKnots == nil {
		return MovementUnknown
	}

	if *snapshot.SpeedKnots >= MovingThreshold(propulsion) {
		return MovementMoving
	}
	return MovementStationary
}

// Decide is the pure decision half of the tracker: given the new snapshot,
// the previous observation and whether an entry is open, it names the single
// effect to apply. Apply (tracker.go) is the only code that touches the
// repository.
func Decide(snapshot *dtos.PositionSnapshot, propulsion string, prior Observation, hasOpenEntry bool) Effect {
	movement := Classify(snapshot, propulsion)
	if movement == MovementUnknown {
		return EffectNone
	}

	// Identical coordinates at a different timestamp means the upstream
	// receiver is replaying a stale fix; suppress any transition.
	if prior.SeenAt != nil && !prior.SeenAt.Equal(snapshot.Timestamp) &&
		snapshot.SameCoordinates(prior.Latitude, prior.Longitude) {
		return EffectNone
	}

	switch movement {
	case MovementMoving:
		if hasOpenEntry {
			return EffectExtend
		}
		return EffectOpen
	case MovementStationary:
		if hasOpenEntry {
			return EffectClose
		}
	}
	return EffectNone
}
