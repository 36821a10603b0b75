package agent

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarmcore/internal/faults"
)

func newTestAgent() *Agent {
	return New(Config{
		Name:            "A",
		TakeoffHeight:   0.5,
		InitialPosition: r3.Vec{X: 0.1, Y: 0.2, Z: 0},
		Envelope: Envelope{
			MaxRollDeg:  20,
			MaxPitchDeg: 20,
			PosMin:      r3.Vec{X: -2, Y: -2, Z: 0},
			PosMax:      r3.Vec{X: 2, Y: 2, Z: 2},
		},
		Enabled: true,
	})
}

func TestUpdatePositionDuplicateTimestamp(t *testing.T) {
	a := newTestAgent()
	if err := a.UpdatePosition(1000, r3.Vec{X: 0.1, Y: 0.2, Z: 0}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	err := a.UpdatePosition(1000, r3.Vec{X: 0.1, Y: 0.2, Z: 0})
	if err == nil {
		t.Fatal("expected a fault for a non-increasing timestamp")
	}
	var fl *faults.Flight
	if !errors.As(err, &fl) {
		t.Fatalf("expected *faults.Flight, got %T", err)
	}
	if fl.Kind != faults.DuplicateTimestamp {
		t.Errorf("kind = %v, want DuplicateTimestamp", fl.Kind)
	}
}

func TestUpdatePositionVelocity(t *testing.T) {
	a := newTestAgent()
	if err := a.UpdatePosition(0, r3.Vec{X: 0, Y: 0, Z: 0}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	// 50 ms later, moved 0.05 m along x: vx should be 1 m/s.
	if err := a.UpdatePosition(50000, r3.Vec{X: 0.05, Y: 0, Z: 0}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if got, want := a.Velocity.X, 1.0; abs(got-want) > 1e-9 {
		t.Errorf("vx = %v, want %v", got, want)
	}
}

// S4: agent at (0.10, 0.20, 0.48), takeoff anchor (0.10, 0.20, 0.50).
// distance = 0.02 <= 0.05, so it completes takeoff into Standby with
// standby_position.z overwritten to the takeoff height.
func TestTakeoffCompletion(t *testing.T) {
	a := newTestAgent()
	if err := a.EnterTakeoff(); err != nil {
		t.Fatalf("EnterTakeoff: %v", err)
	}
	if err := a.UpdatePosition(1, r3.Vec{X: 0.10, Y: 0.20, Z: 0.48}); err != nil {
		t.Fatalf("UpdatePosition: %v", err)
	}

	a.MaybeCompleteTakeoff()

	if a.Mode != Standby {
		t.Fatalf("mode = %v, want Standby", a.Mode)
	}
	if a.StandbyAnchor.Z != 0.5 {
		t.Errorf("standby anchor z = %v, want 0.5 (takeoff height)", a.StandbyAnchor.Z)
	}
	if a.StandbyAnchor.X != 0.10 || a.StandbyAnchor.Y != 0.20 {
		t.Errorf("standby anchor xy = (%v, %v), want (0.10, 0.20)", a.StandbyAnchor.X, a.StandbyAnchor.Y)
	}
}

func TestNotFlyingIsAbsorbing(t *testing.T) {
	a := newTestAgent()
	a.EnterTakeoff()
	a.Mode = Standby
	a.IsFlying = true

	a.EnterNotFlying(faults.New(faults.TrackingLost, a.Name, nil))

	if a.Mode != NotFlying || a.IsFlying {
		t.Fatalf("agent did not transition to terminal Not-flying")
	}
	if err := a.EnterStandby(); err == nil {
		t.Fatal("expected Not-flying agent to reject mode switches")
	}
}

func TestDemoteNeverGoesToNotFlying(t *testing.T) {
	a := newTestAgent()
	a.EnterTakeoff()
	a.Mode = XYConsensus
	a.IsFlying = true

	a.Demote(errors.New("diverged"))

	if a.Mode != Standby {
		t.Fatalf("mode = %v, want Standby after demotion", a.Mode)
	}
	if a.Error == nil {
		t.Fatal("expected latched error after demotion")
	}
}
