// Package safety implements §4.2's asynchronous attitude/envelope/battery
// checks. Telemetry samples arrive off the control tick (~20 Hz per
// vehicle); this package only decides what should happen to an agent —
// the supervisor is the one place that actually mutates swarm membership
// and sends vehicle commands, so these checks stay pure and unit-testable
// without a link.
package safety

import (
	"github.com/picogrid/swarmcore/internal/agent"
	"github.com/picogrid/swarmcore/internal/faults"
)

// LowEnergyPowerState is the vehicle power-state code that signals low
// battery in flight.
const LowEnergyPowerState = 3

// AttitudeSample is one asynchronous telemetry sample from a vehicle.
type AttitudeSample struct {
	RollDeg, PitchDeg, YawDeg float64
	PowerState                int
}

// Action is what the supervisor must do in response to a telemetry sample.
type Action int

const (
	// NoAction: the sample was recorded, nothing else to do.
	NoAction Action = iota
	// StopAndRemove: an EnvelopeViolation occurred; stop the vehicle and
	// transition the agent to Not-flying.
	StopAndRemove
	// ForceLand: low battery in flight; force a transition to Land.
	ForceLand
)

// CheckAttitude records the sample's yaw on the agent and evaluates the
// envelope and battery conditions of §4.2, returning the action the
// supervisor must take.
func CheckAttitude(a *agent.Agent, sample AttitudeSample) (Action, error) {
	a.Yaw = sample.YawDeg

	if !a.IsFlying {
		return NoAction, nil
	}

	if err := a.CheckEnvelope(sample.RollDeg, sample.PitchDeg); err != nil {
		return StopAndRemove, err
	}

	if sample.PowerState == LowEnergyPowerState && !a.LowBatteryLandTriggered() {
		a.MarkLowBatteryLandTriggered()
		return ForceLand, faults.New(faults.LowBatteryInFlight, a.Name, nil)
	}

	return NoAction, nil
}
