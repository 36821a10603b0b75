// Package control holds the pure control laws of §4.4: the avoidance
// velocity field, the linear z-consensus and double-integrator xy-consensus
// laws, the thrust PID, the yaw-rate wrap-around controller, and the
// position-setpoint trackers for takeoff/land/manual. Every law here is a
// pure function of its inputs plus the small piece of controller memory the
// agent carries (prev_iz, captured anchors) — none of it touches a vehicle
// link or a clock directly, which is what makes the scenarios in spec §8
// testable without a tracker or a radio.
package control

import "gonum.org/v1/gonum/spatial/r3"

// PositionSetpoint is emitted to send_position_setpoint.
type PositionSetpoint struct {
	X, Y, Z float64
	YawDeg  float64
}

// VelocitySetpoint is emitted to send_velocity_world_setpoint.
type VelocitySetpoint struct {
	Vx, Vy, Vz float64
	YawRateDeg float64
}

// AttitudeSetpoint is emitted to send_setpoint.
type AttitudeSetpoint struct {
	RollDeg, PitchDeg float64
	YawRateDeg        float64
	Thrust            uint16
}

// PeerState is the subset of a peer agent's live state the control laws
// need: its position, velocity, and yaw.
type PeerState struct {
	Name     string
	Position r3.Vec
	Velocity r3.Vec
	YawDeg   float64
}
