package joystick

import (
	"context"

	"github.com/picogrid/swarmcore/internal/agent"
	"github.com/picogrid/swarmcore/internal/swarm"
	"github.com/picogrid/swarmcore/internal/vehicle"
	"github.com/picogrid/swarmcore/pkg/logger"
)

// EventKind distinguishes a raw button press/release from an axis move.
type EventKind int

const (
	ButtonEvent EventKind = iota
	AxisEvent
)

// Event is one decoded input event, already translated from a raw ioctl
// code to a name via a DeviceProfile. Reading those raw codes off
// /dev/input/jsN is the external, algorithm-free device boundary per
// spec §1; everything past this struct is this package's own logic.
type Event struct {
	Kind  EventKind
	Name  string
	Value int16
}

// Device is the external input device boundary: a stream of decoded
// events until the context is cancelled.
type Device interface {
	Profile() DeviceProfile
	Events(ctx context.Context) (<-chan Event, error)
}

// Controller runs on its own worker goroutine (§5: "Joystick input runs on
// an independent worker... writes are single-producer") and applies every
// event to the swarm's global manual axes or to an operator mode command.
// It never runs concurrently with the control tick; the cooperative loop
// serializes it the same way it serializes the tracker consumer.
type Controller struct {
	Swarm   *swarm.Swarm
	Profile DeviceProfile
}

// NewController builds a Controller bound to a swarm and a device profile.
func NewController(sw *swarm.Swarm, profile DeviceProfile) *Controller {
	return &Controller{Swarm: sw, Profile: profile}
}

// Run drains dev's event stream until ctx is cancelled, applying each
// event to the bound swarm.
func (c *Controller) Run(ctx context.Context, dev Device) error {
	events, err := dev.Events(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c.Apply(ev)
		}
	}
}

// Apply applies one decoded event to the swarm.
func (c *Controller) Apply(ev Event) {
	switch ev.Kind {
	case AxisEvent:
		c.applyAxis(ev.Name, ev.Value)
	case ButtonEvent:
		if ev.Value != 0 {
			c.applyButton(ev.Name)
		}
	}
}

func (c *Controller) applyAxis(name string, raw int16) {
	s := c.Swarm
	switch name {
	case AxisPitch:
		s.ManualX = PitchAxis(raw)
	case AxisRoll:
		s.ManualY = RollAxis(raw)
	case AxisYaw:
		s.ManualYawDeg = ClampYawDeg(s.ManualYawDeg + YawAxisDelta(raw))
	case AxisYawMinus:
		s.ManualYawDeg = ClampYawDeg(s.ManualYawDeg + YawTriggerDelta(raw, 1))
	case AxisYawPlus:
		s.ManualYawDeg = ClampYawDeg(s.ManualYawDeg + YawTriggerDelta(raw, -1))
	case AxisHeight:
		if c.Profile.ManualZMode == ManualZAbsolute {
			s.ManualZ = ManualZAbsoluteValue(raw)
		}
	case AxisHeight2:
		if c.Profile.ManualZMode == ManualZIncremental {
			s.ManualZ += ManualZIncrementalDelta(raw)
		}
	}
}

func (c *Controller) applyButton(name string) {
	s := c.Swarm
	switch name {
	case ButtonStop:
		logger.Warn("stop button triggered, disabling swarm")
		for _, a := range s.Agents() {
			a.EnterNotFlying(nil)
		}
	case ButtonTakeoffLand:
		for _, a := range s.Agents() {
			if a.Enabled && !a.IsFlying {
				_ = a.EnterTakeoff()
			} else if a.Enabled && a.IsFlying {
				_ = a.EnterLand()
			}
		}
	case ButtonStandby:
		for _, a := range s.Agents() {
			if a.Enabled && a.IsFlying {
				_ = a.EnterStandby()
			}
		}
	case ButtonManualFlight:
		if anyTransitional(s) {
			logger.Warn("manual flight command denied: an agent is mid takeoff/land")
			return
		}
		for _, a := range s.ManualAgents() {
			if a.Enabled && a.IsFlying {
				s.ManualZ = a.Position.Z
				_ = a.EnterManual()
			}
		}
	case ButtonYawMinus:
		s.ManualYawDeg = ClampYawDeg(s.ManualYawDeg + YawButtonDelta(true))
	case ButtonYawPlus:
		s.ManualYawDeg = ClampYawDeg(s.ManualYawDeg + YawButtonDelta(false))
	case ButtonInitialPosition:
		for _, a := range s.Agents() {
			if a.Enabled && a.IsFlying {
				_ = a.EnterBackToInit()
			}
		}
	case ButtonZConsensus:
		for _, a := range s.Agents() {
			if a.Enabled && a.IsFlying {
				_ = a.EnterZConsensus()
			}
		}
	case ButtonXYConsensus:
		for _, a := range s.Agents() {
			if a.Enabled && a.IsFlying {
				_ = a.EnterXYConsensus()
			}
		}
	}
}

func anyTransitional(s *swarm.Swarm) bool {
	for _, a := range s.Agents() {
		if a.Mode == agent.Takeoff || a.Mode == agent.Land {
			return true
		}
	}
	return false
}

// StopAll sends a stop setpoint to every known vehicle and disables
// further flight, mirroring the Stop button's shutdown path for use from
// the escape-key handler too.
func StopAll(ctx context.Context, s *swarm.Swarm, links map[string]vehicle.Link) {
	for _, a := range s.Agents() {
		a.EnterNotFlying(nil)
		if link, ok := links[a.Name]; ok {
			_ = link.SendStopSetpoint(ctx)
		}
	}
}
