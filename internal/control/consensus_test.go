package control

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// S1: 3 agents, star graph around A. z = {A: 0.5, B: 0.7, C: 0.9};
// connectivity A<->{B,C}, B<->{A}, C<->{A}.
func TestZConsensusStarGraph(t *testing.T) {
	za, zb, zc := 0.5, 0.7, 0.9

	vzA := ZConsensusVelocity(za, []float64{zb, zc})
	vzB := ZConsensusVelocity(zb, []float64{za})
	vzC := ZConsensusVelocity(zc, []float64{za})

	if math.Abs(vzA-0.6) > 1e-9 {
		t.Errorf("vz(A) = %v, want 0.6", vzA)
	}
	if math.Abs(vzB-(-0.2)) > 1e-9 {
		t.Errorf("vz(B) = %v, want -0.2", vzB)
	}
	if math.Abs(vzC-(-0.4)) > 1e-9 {
		t.Errorf("vz(C) = %v, want -0.4", vzC)
	}
}

func TestXYConsensusAttitudeClamped(t *testing.T) {
	// A large position error should saturate the clamp, never exceed it.
	roll, pitch := XYConsensusAttitude(0, r3.Vec{}, r3.Vec{}, []PeerState{
		{Position: r3.Vec{X: 100, Y: 100, Z: 0}},
	}, [2]float64{0, 0})

	if math.Abs(roll) > XYConsensusMax+1e-9 {
		t.Errorf("roll = %v exceeds clamp %v", roll, XYConsensusMax)
	}
	if math.Abs(pitch) > XYConsensusMax+1e-9 {
		t.Errorf("pitch = %v exceeds clamp %v", pitch, XYConsensusMax)
	}
}
