// Package vehicle defines the per-agent command transport (§6 "Vehicle
// link") and a concrete websocket-backed implementation. The radio-link
// driver to the physical vehicle is explicitly out of scope per spec §1;
// Link is the boundary the core talks to, and WSLink is one concrete
// transport across that boundary to an external radio-gateway process.
package vehicle

import "context"

// EstimatorKalman and PosSetDisabled are the two startup parameters every
// agent pushes to its vehicle before flight: the Kalman position estimator
// and a disabled legacy position-set mode.
const (
	EstimatorKalman = 2
	PosSetDisabled  = 0
)

// LogPeriodMillis is the subscription period for the roll/pitch/yaw/
// power-state attitude log block.
const LogPeriodMillis = 50

// Link is the outbound per-vehicle command surface of §6. Every method
// maps one-to-one onto a wire message; none of them carry algorithmic
// content; they're exercised by the supervisor's dispatch loop once per
// tick per enabled, in-flight agent.
type Link interface {
	SendPositionSetpoint(ctx context.Context, x, y, z, yawDeg float64) error
	SendVelocityWorldSetpoint(ctx context.Context, vx, vy, vz, yawRateDeg float64) error
	SendSetpoint(ctx context.Context, rollDeg, pitchDeg, yawRateDeg float64, thrust uint16) error
	SendStopSetpoint(ctx context.Context) error
	SendExtPos(ctx context.Context, x, y, z float64) error

	// SetupParameters pushes the startup parameter set (estimator, posSet).
	SetupParameters(ctx context.Context) error
	// SubscribeAttitudeLog registers the roll/pitch/yaw/power-state log
	// block at LogPeriodMillis and a one-shot battery-voltage read, and
	// returns a channel of samples until the context is cancelled.
	SubscribeAttitudeLog(ctx context.Context) (<-chan AttitudeSample, error)

	Close() error
}

// AttitudeSample is one asynchronous telemetry sample off a vehicle's
// attitude log block.
type AttitudeSample struct {
	RollDeg, PitchDeg, YawDeg float64
	PowerState                int
	BatteryVolts              float64
}
