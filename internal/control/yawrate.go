package control

import (
	"math"

	"github.com/picogrid/swarmcore/internal/geometry"
)

// YawRateKp is the yaw-rate proportional gain, k_p = 5.
const YawRateKp = 5.0

// YawRateMax is the yaw-rate clamp, deg/s.
const YawRateMax = 180.0

// YawRate implements the yaw-rate wrap-around controller: both angles are
// wrapped to (-pi, pi], the smallest-magnitude wrap-around delta is chosen,
// and the rate is the negated, clamped proportional command.
func YawRate(targetDeg, measuredDeg float64) float64 {
	target := geometry.WrapPi(geometry.DegToRad(targetDeg))
	measured := geometry.WrapPi(geometry.DegToRad(measuredDeg))
	delta := geometry.ShortestAngleDelta(target, measured)

	rate := -math.Round(YawRateKp * geometry.RadToDeg(delta))
	return geometry.Clamp(rate, -YawRateMax, YawRateMax)
}
