// Package faults defines the fault taxonomy and latching policy shared by
// the tracker, the control laws, and the supervisor. It follows the plain
// sentinel-error-plus-wrapping style used throughout the controllers in the
// reference corpus: a small Kind enum, one struct that carries the failing
// agent's name, and errors.Is/errors.As-friendly wrapping.
package faults

import "fmt"

// Kind enumerates the fault taxonomy from the error handling design:
// pre-flight faults that disable a single agent, setup faults that are
// fatal for the whole swarm, runtime faults that stop-and-remove a single
// agent, the control-law fault that only demotes to Standby, and the
// realtime overrun that halts everything.
type Kind int

const (
	// LowBattery is a pre-flight fault: the agent is disabled, others continue.
	LowBattery Kind = iota
	// TrackerAbsent is a pre-flight fault: the agent is disabled, others continue.
	TrackerAbsent
	// MarkerCountMismatch is a setup fault: fatal for the whole swarm.
	MarkerCountMismatch
	// DuplicateTimestamp is a runtime fault: fatal for that agent.
	DuplicateTimestamp
	// EnvelopeViolation is a runtime fault: stop + remove.
	EnvelopeViolation
	// TrackingLost is a runtime fault: stop + remove.
	TrackingLost
	// ControlLawFault demotes the agent to Standby and latches the error.
	ControlLawFault
	// RealtimeOverrun stops every agent and terminates the loop.
	RealtimeOverrun
	// LowBatteryInFlight forces a transition to Land.
	LowBatteryInFlight
)

func (k Kind) String() string {
	switch k {
	case LowBattery:
		return "LowBattery"
	case TrackerAbsent:
		return "TrackerAbsent"
	case MarkerCountMismatch:
		return "MarkerCountMismatch"
	case DuplicateTimestamp:
		return "DuplicateTimestamp"
	case EnvelopeViolation:
		return "EnvelopeViolation"
	case TrackingLost:
		return "TrackingLost"
	case ControlLawFault:
		return "ControlLawFault"
	case RealtimeOverrun:
		return "RealtimeOverrun"
	case LowBatteryInFlight:
		return "LowBatteryInFlight"
	default:
		return "Unknown"
	}
}

// Fatal reports whether a fault of this kind is fatal for the agent it
// applies to (stop + remove from the swarm), as opposed to recoverable
// (ControlLawFault demotes to Standby, LowBatteryInFlight forces a Land).
func (k Kind) Fatal() bool {
	switch k {
	case MarkerCountMismatch, DuplicateTimestamp, EnvelopeViolation, TrackingLost, RealtimeOverrun:
		return true
	default:
		return false
	}
}

// Flight wraps a fault kind with the agent it happened to and the
// underlying cause, if any. An agent latches the first fault it raises
// (agent.Agent.Error); runtime.Run returns the latched faults of the agents
// still in the swarm when the run ends. Agents removed after a fatal fault
// are reported through the supervisor's event log when the fault happens.
type Flight struct {
	Kind  Kind
	Agent string
	Cause error
}

func (f *Flight) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Agent, f.Kind, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Agent, f.Kind)
}

func (f *Flight) Unwrap() error { return f.Cause }

// New builds a Flight fault for the named agent.
func New(kind Kind, agent string, cause error) *Flight {
	return &Flight{Kind: kind, Agent: agent, Cause: cause}
}
