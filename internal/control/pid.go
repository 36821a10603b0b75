package control

import "math"

// Thrust PID gains and operating point from §4.4.
const (
	ThrustKp           = 32500.0
	ThrustKi           = 8125.0
	ThrustKd           = 16250.0
	ThrustSteadyState  = 38000.0
	ThrustMin          = 0
	ThrustMax          = 65000
)

// ThrustPID holds an altitude-hold setpoint through xy-consensus: a
// proportional-integral term on the z error plus a derivative term on
// measured vertical velocity. prevIntegral is the agent's controller
// memory (previous_iz) and is updated in place for the next tick.
func ThrustPID(zTarget, z, vz, dt float64, prevIntegral *float64) uint16 {
	err := zTarget - z
	pz := ThrustKp * err
	iz := *prevIntegral + ThrustKi*err*dt
	dz := -ThrustKd * vz

	thrust := math.Round(ThrustSteadyState + pz + iz + dz)
	if thrust < ThrustMin {
		thrust = ThrustMin
	}
	if thrust > ThrustMax {
		thrust = ThrustMax
	}

	*prevIntegral = iz
	return uint16(thrust)
}
