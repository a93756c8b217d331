package angles

// This package includes scalar helpers for working with angles in degrees.

import (
	"math"
)

const (
	// FullTurn is one full rotation in degrees
	FullTurn float64 = 360.0
	// HalfTurn is half a rotation in degrees
	HalfTurn float64 = 180.0
)

// Normalize returns the angle wrapped into the range [0, 360).
// Negative inputs wrap from the top, e.g. -90 normalizes to 270.
func Normalize(angle float64) float64 {
	angle = math.Mod(angle, FullTurn)
	if angle < 0 {
		angle += FullTurn
	}
	return angle
}

// ShortestDelta returns the signed difference to - from rewrapped into
// (-180, 180], the rotation of least magnitude that carries from onto to.
// Normalize(from + ShortestDelta(from, to)) == Normalize(to) up to
// floating point error.
func ShortestDelta(from float64, to float64) float64 {
	delta := math.Mod(to-from, FullTurn)
	if delta > HalfTurn {
		delta -= FullTurn
	} else if delta <= -HalfTurn {
		delta += FullTurn
	}
	return delta
}
