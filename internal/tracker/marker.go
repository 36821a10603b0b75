// Package tracker implements the marker-to-agent tracking and identity
// maintenance step of §4.1: the initial nearest-neighbor assignment and the
// per-frame lookup that derives each agent's position and velocity from
// raw optical-tracker frames. The tracker transport itself (the network
// connection to the motion-capture system) is an external collaborator per
// spec §1; this package only consumes already-decoded frames.
package tracker

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Marker is one unlabeled 3D optical marker from a tracker frame, in
// millimeters as received over the wire.
type Marker struct {
	ID      int
	X, Y, Z float64 // millimeters
}

// Position converts the marker's millimeter coordinates to the meter-based
// arena frame the rest of the system works in.
func (m Marker) Position() r3.Vec {
	return r3.Vec{X: MetersFromMillimeters(m.X), Y: MetersFromMillimeters(m.Y), Z: MetersFromMillimeters(m.Z)}
}

// Frame is one tracker sample: a strictly-monotonic timestamp in
// microseconds and the unlabeled markers visible at that instant.
type Frame struct {
	TimestampMicros int64
	Markers         []Marker
}

// MetersFromMillimeters converts a millimeter tracker coordinate to meters.
func MetersFromMillimeters(mm float64) float64 { return mm / 1000.0 }

// MillimetersFromMeters converts a meter arena-frame coordinate back to
// millimeters, rounding to the nearest integer the way the tracker's wire
// format represents it. Round-tripping mm -> m -> mm is stable to +/-1mm.
func MillimetersFromMeters(m float64) int {
	return int(math.Round(m * 1000.0))
}
