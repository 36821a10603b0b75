package runtime

import (
	"context"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarmcore/internal/agent"
	"github.com/picogrid/swarmcore/internal/control"
	"github.com/picogrid/swarmcore/internal/swarm"
	"github.com/picogrid/swarmcore/internal/tracker"
	"github.com/picogrid/swarmcore/internal/vehicle"
)

func TestRunDrainsFramesUntilChannelCloses(t *testing.T) {
	a := agent.New(agent.Config{
		Name:            "A",
		InitialPosition: r3.Vec{},
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

	sw := swarm.New()
	sw.Add(a, false)
	rl := &vehicle.RecordingLink{}
	links := map[string]vehicle.Link{"A": rl}
	sup := swarm.NewSupervisor(sw, control.Bounds{XMin: -5, XMax: 5, YMin: -5, YMax: 5}, links)

	frames := make(chan tracker.Frame, 2)
	frames <- tracker.Frame{TimestampMicros: 1000, Markers: []tracker.Marker{{ID: 1}}}
	frames <- tracker.Frame{TimestampMicros: 2000, Markers: []tracker.Marker{{ID: 1}}}
	close(frames)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := Run(ctx, sup, Options{Frames: frames, Links: links}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !sw.Ready() {
		t.Error("expected readiness latch to be set after processing frames")
	}
}
