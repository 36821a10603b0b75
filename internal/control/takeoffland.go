package control

// AnchorPositionSetpoint emits the position-setpoint tracker shared by
// Takeoff and Land: hold the anchor position and yaw until the agent's
// distance check (see internal/agent's MaybeCompleteTakeoff/MaybeCompleteLand)
// says the mode is done.
func AnchorPositionSetpoint(anchorX, anchorY, anchorZ, anchorYawDeg float64) PositionSetpoint {
	return PositionSetpoint{X: anchorX, Y: anchorY, Z: anchorZ, YawDeg: anchorYawDeg}
}
