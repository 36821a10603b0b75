package swarm

import (
	"context"
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarmcore/internal/agent"
	"github.com/picogrid/swarmcore/internal/control"
	"github.com/picogrid/swarmcore/internal/faults"
	"github.com/picogrid/swarmcore/internal/geometry"
	"github.com/picogrid/swarmcore/internal/realtime"
	"github.com/picogrid/swarmcore/internal/safety"
	"github.com/picogrid/swarmcore/internal/telemetry"
	"github.com/picogrid/swarmcore/internal/tracker"
	"github.com/picogrid/swarmcore/internal/vehicle"
	"github.com/picogrid/swarmcore/pkg/logger"
)

// NamedAttitude pairs one vehicle's attitude sample with its agent name,
// the unit the attitude fan-in workers forward into the supervisor.
type NamedAttitude struct {
	Name   string
	Sample vehicle.AttitudeSample
}

// Supervisor is the real-time tick of §4.5: it holds the Swarm, consumes
// one tracker frame per call, dispatches each agent's mode control law,
// and maintains the readiness latch. It is the one place that mutates
// swarm membership and talks to vehicle links.
type Supervisor struct {
	Swarm     *Swarm
	Bounds    control.Bounds
	Links     map[string]vehicle.Link
	Telemetry *telemetry.CSVWriter
	Events    *telemetry.EventLog
	Clock     func() time.Time

	// Attitudes receives asynchronous per-vehicle telemetry forwarded by
	// the attitude fan-in workers (§5). Tick drains it synchronously at
	// the top of every cycle so every Agent mutation still happens on the
	// one cooperative loop goroutine, never concurrently with dispatch.
	Attitudes chan NamedAttitude

	gate            realtime.Gate
	pendingRemovals []string
}

// NewSupervisor builds a Supervisor over an already-populated Swarm.
func NewSupervisor(sw *Swarm, bounds control.Bounds, links map[string]vehicle.Link) *Supervisor {
	return &Supervisor{
		Swarm:     sw,
		Bounds:    bounds,
		Links:     links,
		Events:    &telemetry.EventLog{},
		Clock:     time.Now,
		Attitudes: make(chan NamedAttitude, 256),
	}
}

// Overrun reports whether the tick gate is currently marked in progress,
// that is, whether a Tick starting now would fail with RealtimeOverrun.
func (s *Supervisor) Overrun() bool { return s.gate.InProgress() }

// Tick runs one full control cycle: track, push fused position, resolve
// automatic mode completions, update the readiness latch, dispatch every
// agent's control law, and apply deferred removals. A RealtimeOverrun
// aborts the tick immediately and stops every known vehicle.
func (s *Supervisor) Tick(ctx context.Context, frame tracker.Frame) error {
	if err := s.gate.Begin(); err != nil {
		s.stopAll(ctx)
		return err
	}
	defer s.gate.End()

	s.drainAttitudes(ctx)

	lost, faulted := tracker.TrackFrame(frame, s.Swarm.Agents())
	for _, f := range faulted {
		s.fatalAgent(ctx, f.Agent, f.Err)
	}
	for _, a := range lost {
		s.fatalAgent(ctx, a, faults.New(faults.TrackingLost, a.Name, nil))
	}

	for _, a := range s.Swarm.Agents() {
		link, ok := s.Links[a.Name]
		if !ok {
			continue
		}
		if err := link.SendExtPos(ctx, a.Position.X, a.Position.Y, a.Position.Z); err != nil && a.Enabled {
			safety.ForceConnectionFailure(a)
			if s.Events != nil {
				s.Events.Emit(s.Clock(), telemetry.EventFault, telemetry.SeverityWarn, a.Name, "vehicle link disconnected")
			}
		}
	}

	for _, a := range s.Swarm.Agents() {
		a.MaybeCompleteTakeoff()
		if a.MaybeCompleteLand() {
			s.pendingRemovals = append(s.pendingRemovals, a.Name)
		}
	}

	if s.Swarm.UpdateReadiness() {
		s.printReadinessRecap()
		if s.Events != nil {
			s.Events.Emit(s.Clock(), telemetry.EventReadinessLatch, telemetry.SeverityInfo, "", "swarm readiness latch set")
		}
	}

	if s.Swarm.Ready() {
		for _, a := range s.Swarm.Agents() {
			s.dispatch(ctx, a, frame)
		}
	}

	for _, name := range s.pendingRemovals {
		s.Swarm.Remove(name)
	}
	s.pendingRemovals = s.pendingRemovals[:0]

	return nil
}

func (s *Supervisor) fatalAgent(ctx context.Context, a *agent.Agent, cause error) {
	a.EnterNotFlying(cause)
	if link, ok := s.Links[a.Name]; ok {
		_ = link.SendStopSetpoint(ctx)
	}
	s.pendingRemovals = append(s.pendingRemovals, a.Name)
	if s.Events != nil {
		s.Events.Emit(s.Clock(), telemetry.EventFault, telemetry.SeverityError, a.Name, cause.Error())
	}
}

func (s *Supervisor) stopAll(ctx context.Context) {
	for _, a := range s.Swarm.Agents() {
		if link, ok := s.Links[a.Name]; ok {
			_ = link.SendStopSetpoint(ctx)
		}
	}
	if s.Events != nil {
		s.Events.Emit(s.Clock(), telemetry.EventOverrun, telemetry.SeverityCritical, "", "realtime overrun, halting")
	}
}

// drainAttitudes applies every attitude sample queued since the last tick,
// without blocking if none are waiting.
func (s *Supervisor) drainAttitudes(ctx context.Context) {
	for {
		select {
		case na := <-s.Attitudes:
			s.applyAttitude(ctx, na)
		default:
			return
		}
	}
}

func (s *Supervisor) applyAttitude(ctx context.Context, na NamedAttitude) {
	a, ok := s.Swarm.Get(na.Name)
	if !ok {
		return
	}

	if !a.SetupFinished {
		safety.RunPreflightChecks(a, na.Sample.BatteryVolts, a.HasMarker())
		return
	}

	action, err := safety.CheckAttitude(a, safety.AttitudeSample{
		RollDeg: na.Sample.RollDeg, PitchDeg: na.Sample.PitchDeg,
		YawDeg: na.Sample.YawDeg, PowerState: na.Sample.PowerState,
	})

	switch action {
	case safety.StopAndRemove:
		s.fatalAgent(ctx, a, err)
	case safety.ForceLand:
		if s.Events != nil {
			s.Events.Emit(s.Clock(), telemetry.EventFault, telemetry.SeverityWarn, a.Name, err.Error())
		}
		_ = a.EnterLand()
	}
}

func (s *Supervisor) printReadinessRecap() {
	t := logger.NewTable("agent", "battery_ok", "position_ok")
	for _, a := range s.Swarm.Agents() {
		t.AddRow(a.Name, fmt.Sprint(a.BatteryOK), fmt.Sprint(a.PositionOK))
	}
	logger.LogSection("swarm ready")
	t.Print()
}

// dispatch invokes one agent's per-tick mode control law. A panicking
// control law (§4.5's "throwing control law") demotes the agent to
// Standby rather than propagating; Standby's own law never panics.
func (s *Supervisor) dispatch(ctx context.Context, a *agent.Agent, frame tracker.Frame) {
	link, ok := s.Links[a.Name]
	if !ok {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			a.Demote(fmt.Errorf("control law panic: %v", r))
			_ = link.SendStopSetpoint(ctx)
		}
	}()

	if !a.Enabled || a.Mode == agent.NotFlying {
		_ = link.SendStopSetpoint(ctx)
		return
	}

	row := telemetry.Row{
		Name: a.Name, TimestampMicros: frame.TimestampMicros,
		X: a.Position.X, Y: a.Position.Y, Z: a.Position.Z, Yaw: a.Yaw,
		Vx: a.Velocity.X, Vy: a.Velocity.Y, Vz: a.Velocity.Z,
	}

	switch a.Mode {
	case agent.Takeoff:
		sp := control.AnchorPositionSetpoint(a.TakeoffAnchor.X, a.TakeoffAnchor.Y, a.TakeoffAnchor.Z, a.TakeoffAnchorYaw)
		_ = link.SendPositionSetpoint(ctx, sp.X, sp.Y, sp.Z, sp.YawDeg)

	case agent.Land:
		sp := control.AnchorPositionSetpoint(a.LandAnchor.X, a.LandAnchor.Y, a.LandAnchor.Z, a.LandAnchorYaw)
		_ = link.SendPositionSetpoint(ctx, sp.X, sp.Y, sp.Z, sp.YawDeg)

	case agent.Manual:
		sp := control.ManualPositionSetpoint(a.Position.X, a.Position.Y,
			s.Swarm.ManualX, s.Swarm.ManualY, s.Swarm.ManualZ, s.Swarm.ManualYawDeg,
			s.Bounds, a.Envelope.PosMin.Z, a.Envelope.PosMax.Z)
		_ = link.SendPositionSetpoint(ctx, sp.X, sp.Y, sp.Z, sp.YawDeg)

	case agent.Standby, agent.BackToInit:
		objective, objectiveZ := s.standbyObjective(a)
		peers := peerStates(s.Swarm.PeersToAvoid(a.PeersToAvoid))
		vx, vy := control.AvoidVelocity(a.Position, peers, objective, s.Bounds)
		vz := objectiveZ - a.Position.Z
		_ = link.SendVelocityWorldSetpoint(ctx, vx, vy, vz, 0)
		row.VxC, row.VyC, row.VzC = telemetry.Some(vx), telemetry.Some(vy), telemetry.Some(vz)

	case agent.ZConsensus:
		peers := s.Swarm.InFlightPeers(a.Connectivity)
		peerZs := make([]float64, 0, len(peers))
		for _, p := range peers {
			peerZs = append(peerZs, p.Position.Z)
		}
		vz := control.ZConsensusVelocity(a.Position.Z, peerZs)
		vx := a.ZConsensusXY.X - a.Position.X
		vy := a.ZConsensusXY.Y - a.Position.Y
		_ = link.SendVelocityWorldSetpoint(ctx, vx, vy, vz, 0)
		row.VxC, row.VyC, row.VzC = telemetry.Some(vx), telemetry.Some(vy), telemetry.Some(vz)

	case agent.XYConsensus:
		peers := peerStates(s.Swarm.InFlightPeers(a.Connectivity))
		rollDeg, pitchDeg := control.XYConsensusAttitude(a.Yaw, a.Position, a.Velocity, peers,
			[2]float64{a.FormationOffset.R, a.FormationOffset.Rho})
		thrust := control.ThrustPID(a.XYConsensusZ, a.Position.Z, a.Velocity.Z, dtOrDefault(a.LastDt), &a.PrevIntegralZ)
		yawRate := control.YawRate(s.targetYawDeg(), a.Yaw)
		_ = link.SendSetpoint(ctx, rollDeg, pitchDeg, yawRate, thrust)
		row.RollC, row.PitchC = telemetry.Some(rollDeg), telemetry.Some(pitchDeg)
		row.YawRateC = telemetry.Some(yawRate)
		row.ThrustC = telemetry.Some(float64(thrust))

	default:
		_ = link.SendStopSetpoint(ctx)
		return
	}

	if s.Telemetry != nil {
		_ = s.Telemetry.WriteRow(row)
	}
}

func (s *Supervisor) standbyObjective(a *agent.Agent) (objective r3.Vec, objectiveZ float64) {
	if a.Mode == agent.BackToInit {
		return geometry.XY(a.InitialPosition), a.TakeoffHeight
	}
	return geometry.XY(a.StandbyAnchor), a.StandbyAnchor.Z
}

// targetYawDeg is the mean yaw of agents currently in Manual mode, or 0 if
// there are none.
func (s *Supervisor) targetYawDeg() float64 {
	var sum float64
	var n int
	for _, a := range s.Swarm.Agents() {
		if a.Mode == agent.Manual {
			sum += a.Yaw
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func peerStates(agents []*agent.Agent) []control.PeerState {
	out := make([]control.PeerState, 0, len(agents))
	for _, a := range agents {
		out = append(out, control.PeerState{Name: a.Name, Position: a.Position, Velocity: a.Velocity, YawDeg: a.Yaw})
	}
	return out
}

func dtOrDefault(dt float64) float64 {
	if dt <= 0 {
		return 0.05
	}
	return dt
}
