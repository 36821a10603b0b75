package swarm

import (
	"context"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarmcore/internal/agent"
	"github.com/picogrid/swarmcore/internal/control"
	"github.com/picogrid/swarmcore/internal/tracker"
	"github.com/picogrid/swarmcore/internal/vehicle"
)

func TestTickAppliesQueuedAttitudeEnvelopeViolation(t *testing.T) {
	a := readyAgent("A", r3.Vec{})
	sup, recs := newTestSupervisor(a)
	a.EnterTakeoff()
	a.SetupFinished = true

	sup.Attitudes <- NamedAttitude{Name: "A", Sample: vehicle.AttitudeSample{RollDeg: 45}}

	frame := tracker.Frame{TimestampMicros: 1, Markers: []tracker.Marker{{ID: 1}}}
	if err := sup.Tick(context.Background(), frame); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if _, ok := sup.Swarm.Get("A"); ok {
		t.Error("expected the envelope-violating agent to be removed")
	}
	if got := recs["A"].LastCommand(); got != "stop_setpoint" {
		t.Errorf("last command = %q, want stop_setpoint", got)
	}
}

func TestTickRunsPreflightOnFirstAttitudeSample(t *testing.T) {
	a := readyAgent("A", r3.Vec{})
	a.SetupFinished = false
	a.BatteryOK = false
	sup, _ := newTestSupervisor(a)

	sup.Attitudes <- NamedAttitude{Name: "A", Sample: vehicle.AttitudeSample{BatteryVolts: 4.0}}

	frame := tracker.Frame{TimestampMicros: 1, Markers: []tracker.Marker{{ID: 1}}}
	if err := sup.Tick(context.Background(), frame); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if !a.BatteryOK {
		t.Error("expected preflight to set BatteryOK from a healthy battery voltage")
	}
}

func readyAgent(name string, pos r3.Vec) *agent.Agent {
	a := agent.New(agent.Config{
		Name:            name,
		InitialPosition: pos,
		TakeoffHeight:   0.5,
		Envelope: agent.Envelope{
			MaxRollDeg: 20, MaxPitchDeg: 20,
			PosMin: r3.Vec{X: -5, Y: -5, Z: 0}, PosMax: r3.Vec{X: 5, Y: 5, Z: 2},
		},
		Enabled: true,
	})
	a.BatteryOK = true
	a.PositionOK = true
	a.AssignMarker(1)
	return a
}

func newTestSupervisor(agents ...*agent.Agent) (*Supervisor, map[string]*vehicle.RecordingLink) {
	sw := New()
	links := make(map[string]vehicle.Link)
	recordings := make(map[string]*vehicle.RecordingLink)
	for _, a := range agents {
		sw.Add(a, false)
		rl := &vehicle.RecordingLink{}
		links[a.Name] = rl
		recordings[a.Name] = rl
	}
	bounds := control.Bounds{XMin: -5, XMax: 5, YMin: -5, YMax: 5}
	return NewSupervisor(sw, bounds, links), recordings
}

func TestTickDispatchesTakeoffPositionSetpoint(t *testing.T) {
	a := readyAgent("A", r3.Vec{X: 0, Y: 0, Z: 0})
	sup, recs := newTestSupervisor(a)
	a.EnterTakeoff()

	frame := tracker.Frame{TimestampMicros: 1000, Markers: []tracker.Marker{{ID: 1, X: 0, Y: 0, Z: 0}}}
	if err := sup.Tick(context.Background(), frame); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := recs["A"].LastCommand(); got != "position_setpoint" {
		t.Errorf("last command = %q, want position_setpoint", got)
	}
}

func TestTickLatchesReadinessOnce(t *testing.T) {
	a := readyAgent("A", r3.Vec{})
	sup, _ := newTestSupervisor(a)

	frame := tracker.Frame{TimestampMicros: 1, Markers: []tracker.Marker{{ID: 1}}}
	if err := sup.Tick(context.Background(), frame); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if !sup.Swarm.Ready() {
		t.Fatal("expected readiness latch to be set")
	}

	a.BatteryOK = false
	frame2 := tracker.Frame{TimestampMicros: 2, Markers: []tracker.Marker{{ID: 1}}}
	if err := sup.Tick(context.Background(), frame2); err != nil {
		t.Fatalf("Tick 2: %v", err)
	}
	if !sup.Swarm.Ready() {
		t.Fatal("readiness latch must never clear")
	}
}

func TestTickRemovesTrackingLostAgent(t *testing.T) {
	a := readyAgent("A", r3.Vec{})
	sup, recs := newTestSupervisor(a)
	a.EnterTakeoff()

	frame := tracker.Frame{TimestampMicros: 1, Markers: []tracker.Marker{{ID: 99}}} // not agent's marker id 1
	if err := sup.Tick(context.Background(), frame); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if _, ok := sup.Swarm.Get("A"); ok {
		t.Error("expected the tracking-lost agent to be removed from the swarm")
	}
	if got := recs["A"].LastCommand(); got != "stop_setpoint" {
		t.Errorf("last command = %q, want stop_setpoint", got)
	}
}

func TestTickSignalsOverrun(t *testing.T) {
	a := readyAgent("A", r3.Vec{})
	sup, _ := newTestSupervisor(a)

	if err := sup.gate.Begin(); err != nil {
		t.Fatalf("priming Begin: %v", err)
	}

	err := sup.Tick(context.Background(), tracker.Frame{TimestampMicros: 1})
	if err == nil {
		t.Fatal("expected a RealtimeOverrun error")
	}
}
