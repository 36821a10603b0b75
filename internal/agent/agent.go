// Package agent holds the per-vehicle state record and its mode state
// machine. It is grounded on agent_class.py's Agent, restructured the way
// the reference corpus structures a mutable, mutex-guarded entity record
// (see simulation/entities.go's Get/Update method pattern): plain fields
// plus small, named mutator methods instead of one monolithic update call.
package agent

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarmcore/internal/faults"
	"github.com/picogrid/swarmcore/internal/geometry"
)

// TakeoffLandTolerance is the distance, in meters, within which Takeoff and
// Land are considered complete.
const TakeoffLandTolerance = 0.05

// FormationOffset is an agent's (r, rho) xy-consensus formation bias,
// expressed in the navigation frame.
type FormationOffset struct {
	R   float64
	Rho float64
}

// Envelope is the attitude and volumetric safety box an agent must stay
// within while flying.
type Envelope struct {
	MaxRollDeg  float64
	MaxPitchDeg float64
	PosMin      r3.Vec
	PosMax      r3.Vec
}

// Config is the static, operator-supplied description of one vehicle:
// identity, envelope, and consensus/formation parameters. It is the in-memory
// counterpart of one parameters-file line plus the attitude envelope, which
// the parameters file itself does not carry.
type Config struct {
	Name             string
	LinkAddress      string
	Envelope         Envelope
	TakeoffHeight    float64
	InitialPosition  r3.Vec
	Connectivity     map[string]struct{}
	FormationOffset  FormationOffset
	PeersToAvoid     []string
	ManualFlight     bool
	Enabled          bool
}

// Agent is one vehicle's live record, owned exclusively by the supervisor's
// cooperative loop; see internal/realtime for the serialization guarantee
// that makes unsynchronized field access safe.
type Agent struct {
	Config

	// Live tracking state.
	Position  r3.Vec
	MarkerID  int
	hasMarker bool
	Velocity  r3.Vec
	Yaw       float64 // degrees, arena frame
	timestamp int64   // microseconds, tracker clock
	hasTick   bool
	LastDt    float64 // seconds

	// Mode state machine.
	Mode Mode

	// Flags.
	IsFlying      bool
	BatteryOK     bool
	PositionOK    bool
	SetupFinished bool
	landedOnce    bool
	lowBatteryLand bool

	// Controller memory.
	PrevIntegralZ float64

	// Anchors captured at mode entry.
	TakeoffAnchor    r3.Vec
	TakeoffAnchorYaw float64
	LandAnchor       r3.Vec
	LandAnchorYaw    float64
	StandbyAnchor    r3.Vec
	ZConsensusXY     r3.Vec  // xy captured on z_consensus entry
	XYConsensusZ     float64 // z captured on xy_consensus entry

	// Error latched by a ControlLawFault; surfaced once at shutdown.
	Error error
}

// New builds an Agent in the Not-flying state with Enabled taken from cfg
// and battery_ok/position_ok false until preflight checks set them.
func New(cfg Config) *Agent {
	return &Agent{
		Config:     cfg,
		Position:   cfg.InitialPosition,
		Mode:       NotFlying,
		BatteryOK:  false,
		PositionOK: false,
	}
}

// AssignMarker records the marker id the tracker matcher has assigned to
// this agent during initial assignment.
func (a *Agent) AssignMarker(id int) {
	a.MarkerID = id
	a.hasMarker = true
}

// HasMarker reports whether the tracker matcher has ever assigned this
// agent a marker id.
func (a *Agent) HasMarker() bool { return a.hasMarker }

// UpdatePosition applies one tracker sample: §4.2's agent state update.
// A sample whose timestamp does not strictly increase is a fatal
// DuplicateTimestamp fault for this agent alone.
func (a *Agent) UpdatePosition(timestampMicros int64, pos r3.Vec) error {
	if a.hasTick && timestampMicros <= a.timestamp {
		return faults.New(faults.DuplicateTimestamp, a.Name,
			fmt.Errorf("timestamp %d <= last accepted %d", timestampMicros, a.timestamp))
	}

	if a.hasTick {
		dt := float64(timestampMicros-a.timestamp) / 1e6
		a.Velocity = r3.Scale(1/dt, r3.Sub(pos, a.Position))
		a.LastDt = dt
	} else {
		a.Velocity = r3.Vec{}
		a.LastDt = 0
	}

	a.Position = pos
	a.timestamp = timestampMicros
	a.hasTick = true
	return nil
}

// Timestamp returns the last accepted tracker timestamp in microseconds.
func (a *Agent) Timestamp() int64 { return a.timestamp }

// CheckEnvelope reports an EnvelopeViolation if the agent's attitude or
// position is outside its configured safety box.
func (a *Agent) CheckEnvelope(rollDeg, pitchDeg float64) error {
	switch {
	case abs(rollDeg) > a.Envelope.MaxRollDeg:
		return faults.New(faults.EnvelopeViolation, a.Name, fmt.Errorf("roll %.1f exceeds max %.1f", rollDeg, a.Envelope.MaxRollDeg))
	case abs(pitchDeg) > a.Envelope.MaxPitchDeg:
		return faults.New(faults.EnvelopeViolation, a.Name, fmt.Errorf("pitch %.1f exceeds max %.1f", pitchDeg, a.Envelope.MaxPitchDeg))
	case a.Position.X < a.Envelope.PosMin.X || a.Position.X > a.Envelope.PosMax.X,
		a.Position.Y < a.Envelope.PosMin.Y || a.Position.Y > a.Envelope.PosMax.Y,
		a.Position.Z < a.Envelope.PosMin.Z || a.Position.Z > a.Envelope.PosMax.Z:
		return faults.New(faults.EnvelopeViolation, a.Name, fmt.Errorf("position %v outside envelope [%v, %v]", a.Position, a.Envelope.PosMin, a.Envelope.PosMax))
	default:
		return nil
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// EnterTakeoff transitions an enabled, grounded agent into Takeoff,
// capturing the takeoff anchor at the current (x, y) and configured height.
func (a *Agent) EnterTakeoff() error {
	if !a.Enabled || a.IsFlying {
		return fmt.Errorf("agent %s: takeoff requires enabled and not flying", a.Name)
	}
	a.TakeoffAnchor = r3.Vec{X: a.Position.X, Y: a.Position.Y, Z: a.TakeoffHeight}
	a.TakeoffAnchorYaw = a.Yaw
	a.Mode = Takeoff
	a.IsFlying = true
	return nil
}

// MaybeCompleteTakeoff transitions Takeoff -> Standby once the agent is
// within TakeoffLandTolerance of the takeoff anchor, overwriting the new
// standby anchor's z with the configured takeoff height.
func (a *Agent) MaybeCompleteTakeoff() {
	if a.Mode != Takeoff {
		return
	}
	if geometry.Distance3(a.Position, a.TakeoffAnchor) <= TakeoffLandTolerance {
		a.StandbyAnchor = r3.Vec{X: a.Position.X, Y: a.Position.Y, Z: a.TakeoffHeight}
		a.Mode = Standby
	}
}

// EnterLand transitions a flying agent into Land, anchoring (x, y, 0) and
// the current yaw.
func (a *Agent) EnterLand() error {
	if !a.IsFlying || a.Mode == Takeoff || a.Mode == Land {
		return fmt.Errorf("agent %s: land requires an in-flight, non-transitional mode", a.Name)
	}
	a.LandAnchor = r3.Vec{X: a.Position.X, Y: a.Position.Y, Z: 0}
	a.LandAnchorYaw = a.Yaw
	a.Mode = Land
	return nil
}

// MaybeCompleteLand transitions Land -> Not-flying once the agent is within
// TakeoffLandTolerance of the ground, and reports whether it just landed
// (so the supervisor can drop it from the swarm).
func (a *Agent) MaybeCompleteLand() bool {
	if a.Mode != Land {
		return false
	}
	if geometry.VerticalDistance(a.Position, r3.Vec{}) <= TakeoffLandTolerance {
		a.Mode = NotFlying
		a.IsFlying = false
		a.landedOnce = true
		return true
	}
	return false
}

// EnterStandby transitions a flying, non-transitional agent into Standby,
// capturing the current position as the standby anchor.
func (a *Agent) EnterStandby() error {
	if !a.canSwitchAuxMode() {
		return fmt.Errorf("agent %s: standby requires flying and not Takeoff/Land", a.Name)
	}
	a.StandbyAnchor = a.Position
	a.Mode = Standby
	return nil
}

// EnterManual transitions a flying, non-transitional agent into Manual.
func (a *Agent) EnterManual() error {
	if !a.canSwitchAuxMode() {
		return fmt.Errorf("agent %s: manual requires flying and not Takeoff/Land", a.Name)
	}
	a.Mode = Manual
	return nil
}

// EnterZConsensus transitions a flying, non-transitional agent into
// z_consensus, capturing its current (x, y) as the held horizontal anchor.
func (a *Agent) EnterZConsensus() error {
	if !a.canSwitchAuxMode() {
		return fmt.Errorf("agent %s: z_consensus requires flying and not Takeoff/Land", a.Name)
	}
	a.ZConsensusXY = geometry.XY(a.Position)
	a.Mode = ZConsensus
	return nil
}

// EnterXYConsensus transitions a flying, non-transitional agent into
// xy_consensus, capturing its current z as the held altitude target.
func (a *Agent) EnterXYConsensus() error {
	if !a.canSwitchAuxMode() {
		return fmt.Errorf("agent %s: xy_consensus requires flying and not Takeoff/Land", a.Name)
	}
	a.XYConsensusZ = a.Position.Z
	a.Mode = XYConsensus
	return nil
}

// EnterBackToInit transitions a flying, non-transitional agent into
// Back_to_init. No anchor capture is needed: the law targets the
// configured initial position and takeoff height directly.
func (a *Agent) EnterBackToInit() error {
	if !a.canSwitchAuxMode() {
		return fmt.Errorf("agent %s: back_to_init requires flying and not Takeoff/Land", a.Name)
	}
	a.Mode = BackToInit
	return nil
}

func (a *Agent) canSwitchAuxMode() bool {
	return a.IsFlying && a.Mode != Takeoff && a.Mode != Land
}

// EnterNotFlying forces the absorbing terminal state, optionally latching a
// fault as the agent's shutdown-reported error.
func (a *Agent) EnterNotFlying(cause error) {
	a.Mode = NotFlying
	a.IsFlying = false
	if cause != nil && a.Error == nil {
		a.Error = cause
	}
}

// Demote implements the ControlLawFault policy: the agent drops to Standby
// (never Not-flying) and the triggering error is latched for shutdown
// reporting, without disturbing its current position as the new anchor.
func (a *Agent) Demote(cause error) {
	a.StandbyAnchor = a.Position
	a.Mode = Standby
	if a.Error == nil {
		a.Error = faults.New(faults.ControlLawFault, a.Name, cause)
	}
}

// LandedOnce reports whether this agent has ever completed a landing.
func (a *Agent) LandedOnce() bool { return a.landedOnce }

// LowBatteryLandTriggered reports whether the automatic low-battery Land
// transition has already fired for this agent, so the safety monitor only
// forces it once.
func (a *Agent) LowBatteryLandTriggered() bool { return a.lowBatteryLand }

// MarkLowBatteryLandTriggered latches the automatic low-battery Land as
// having fired.
func (a *Agent) MarkLowBatteryLandTriggered() { a.lowBatteryLand = true }
