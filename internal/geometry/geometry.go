// Package geometry holds the small numeric helpers shared by the tracker,
// the control laws, and the safety monitor: distance measures, yaw wrapping,
// and clamping. None of it is vehicle- or mode-specific.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon guards divisions in the avoidance field and the objective pull
// term against a zero denominator when an agent sits exactly on a
// reference point.
const Epsilon = 0.001

// Distance3 returns the Euclidean distance between two arena-frame points.
func Distance3(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Distance2 returns the horizontal (x, y) distance between two points,
// ignoring z.
func Distance2(a, b r3.Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Hypot(dx, dy)
}

// VerticalDistance returns |a.Z - b.Z|.
func VerticalDistance(a, b r3.Vec) float64 {
	return math.Abs(a.Z - b.Z)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0, or 1 matching the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// WrapPi wraps an angle in radians to (-pi, pi].
func WrapPi(rad float64) float64 {
	wrapped := math.Mod(rad+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}

// ShortestAngleDelta returns the signed difference target-measured (both in
// radians, already wrapped to (-pi, pi]) with the smallest magnitude among
// the three candidates {delta, delta+2pi, delta-2pi}.
func ShortestAngleDelta(target, measured float64) float64 {
	delta := target - measured
	candidates := [3]float64{delta, delta + 2*math.Pi, delta - 2*math.Pi}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if math.Abs(c) < math.Abs(best) {
			best = c
		}
	}
	return best
}

// XY returns the horizontal projection of v, with z zeroed.
func XY(v r3.Vec) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: 0} }
