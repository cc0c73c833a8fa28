// Package apdex implements the user-satisfaction zone calculation.
package apdex

import "time"

// Zone is one of the three Apdex satisfaction zones.
type Zone int

const (
	// Satisfying means the transaction finished under the threshold.
	Satisfying Zone = iota
	// Tolerating means the transaction finished under four times the threshold.
	Tolerating
	// Failing means the transaction took four times the threshold or longer.
	Failing
)

// String renders the single-letter wire form used in transaction events.
func (z Zone) String() string {
	switch z {
	case Satisfying:
		return "S"
	case Tolerating:
		return "T"
	case Failing:
		return "F"
	default:
		return "F"
	}
}

// MarshalJSON encodes the zone as its single-letter wire form.
func (z Zone) MarshalJSON() ([]byte, error) {
	return []byte(`"` + z.String() + `"`), nil
}

// Calculate classifies duration against threshold: Satisfying if d<threshold,
// Tolerating if threshold<=d<4*threshold, else Failing. Argument order is
// always (threshold, duration).
func Calculate(threshold, duration time.Duration) Zone {
	switch {
	case duration < threshold:
		return Satisfying
	case duration < 4*threshold:
		return Tolerating
	default:
		return Failing
	}
}
