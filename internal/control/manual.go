package control

import (
	"math"

	"github.com/picogrid/swarmcore/internal/geometry"
)

// ManualGain and ManualBorderInset (ks) are the manual position-setpoint
// law's constants from §4.4. §9's open question between an asymmetric
// ks=0.1 (x/y only, z upper-bound-only) and a symmetric ks=0.15 on all
// three axes is resolved here in favor of the symmetric form, per the
// spec's stated preference.
const (
	ManualGain         = 0.45
	ManualBorderInset  = 0.15
)

// ManualPositionSetpoint computes the manual-flight position setpoint:
// target_x/y move away from the current position proportionally to
// sign(manual axis) * gain * sqrt(|manual axis|); target_z is the absolute
// manual_z value. Every axis is clamped to [min+ks, max-ks].
func ManualPositionSetpoint(currentX, currentY float64, manualX, manualY, manualZ, manualYawDeg float64, bounds Bounds, zMin, zMax float64) PositionSetpoint {
	targetX := currentX - geometry.Sign(manualX)*ManualGain*math.Sqrt(math.Abs(manualX))
	targetY := currentY - geometry.Sign(manualY)*ManualGain*math.Sqrt(math.Abs(manualY))
	targetZ := manualZ

	targetX = geometry.Clamp(targetX, bounds.XMin+ManualBorderInset, bounds.XMax-ManualBorderInset)
	targetY = geometry.Clamp(targetY, bounds.YMin+ManualBorderInset, bounds.YMax-ManualBorderInset)
	targetZ = geometry.Clamp(targetZ, zMin+ManualBorderInset, zMax-ManualBorderInset)

	return PositionSetpoint{X: targetX, Y: targetY, Z: targetZ, YawDeg: manualYawDeg}
}
