// Package joystick implements the axis/button interpretation math of §6's
// joystick input: cubic-response axes with deadband, yaw accumulation from
// both an axis and buttons, and the two mutually-exclusive manual_z
// mappings noted as an open question in §9. The physical input device
// itself carries no algorithmic content and is out of scope per spec §1;
// everything in this file is a pure function over (axis name, raw value)
// so it's testable without one.
package joystick

import "math"

// AxisFullScale is the raw joystick axis range (±32767, matching the Linux
// joystick driver's signed 16-bit event value).
const AxisFullScale = 32767.0

// Deadband is the normalized-axis deadband applied to the pitch/roll axes.
const Deadband = 0.01

// YawAxisGain is the per-tick yaw accumulation gain for the yaw axis.
const YawAxisGain = 2.0

// YawButtonStepDeg is the yaw step applied by the Yaw-/Yaw+ buttons.
const YawButtonStepDeg = 22.5

// Normalize converts a raw signed axis value to [-1, 1].
func Normalize(raw int16) float64 { return float64(raw) / AxisFullScale }

// PitchAxis computes manual_x from the pitch axis: cubic response with a
// deadband around zero.
func PitchAxis(raw int16) float64 { return cubicWithDeadband(raw) }

// RollAxis computes manual_y from the roll axis: cubic response with a
// deadband around zero.
func RollAxis(raw int16) float64 { return cubicWithDeadband(raw) }

func cubicWithDeadband(raw int16) float64 {
	f := Normalize(raw)
	if f > -Deadband && f < Deadband {
		return 0
	}
	return f * f * f
}

// YawAxisDelta returns the per-tick manual_yaw delta contributed by the yaw
// axis: -2 * f^3 (degrees).
func YawAxisDelta(raw int16) float64 {
	f := Normalize(raw)
	return -YawAxisGain * f * f * f
}

// YawTriggerDelta returns the per-tick manual_yaw delta for a one-sided
// trigger axis (yaw- or yaw+, both mapped from [-1, 1] into [0, 1] before
// cubing). sign is +1 for the yaw- axis (accumulates positive) and -1 for
// the yaw+ axis (accumulates negative).
func YawTriggerDelta(raw int16, sign float64) float64 {
	f := (1 + Normalize(raw)) / 2
	return sign * YawAxisGain * f * f * f
}

// YawButtonDelta returns the manual_yaw delta for one press of a Yaw-
// (positive) or Yaw+ (negative) button.
func YawButtonDelta(positive bool) float64 {
	if positive {
		return YawButtonStepDeg
	}
	return -YawButtonStepDeg
}

// ManualZMode selects which of the two mutually exclusive manual_z
// mappings a device profile uses; §9's open question is resolved per
// device rather than globally.
type ManualZMode int

const (
	// ManualZAbsolute maps the height axis directly to an absolute
	// manual_z: (1 - f) / 2.
	ManualZAbsolute ManualZMode = iota
	// ManualZIncremental integrates the height2 axis as a per-tick step:
	// manual_z -= 0.01 * f.
	ManualZIncremental
)

// ManualZAbsoluteValue computes the absolute manual_z mapping.
func ManualZAbsoluteValue(raw int16) float64 {
	f := Normalize(raw)
	return (1 - f) / 2
}

// ManualZIncrementalStepGain is the incremental manual_z mapping's gain.
const ManualZIncrementalStepGain = 0.01

// ManualZIncrementalDelta computes the per-tick incremental manual_z step.
func ManualZIncrementalDelta(raw int16) float64 {
	f := Normalize(raw)
	return -ManualZIncrementalStepGain * f
}

// ClampYawDeg keeps the accumulated manual yaw within (-180, 180].
func ClampYawDeg(yawDeg float64) float64 {
	wrapped := math.Mod(yawDeg+180, 360)
	if wrapped <= 0 {
		wrapped += 360
	}
	return wrapped - 180
}
