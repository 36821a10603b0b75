package control

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// S3: agent at (0,0), static peer at (0.3, 0). Objective is set equal to
// the agent's own position so the pull term vanishes and only the
// repulsion contribution is observed. term = 2.5*(e^-0.3 - e^-0.85) =
// 0.7835, scaled by the unit vector 0.3/(0.3+epsilon), so vx ~ -0.781.
func TestAvoidVelocityStaticPeer(t *testing.T) {
	agent := r3.Vec{X: 0, Y: 0, Z: 0}
	peer := PeerState{Name: "B", Position: r3.Vec{X: 0.3, Y: 0, Z: 0}}
	bounds := Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10}

	vx, vy := AvoidVelocity(agent, []PeerState{peer}, agent, bounds)

	wantVx := -0.781
	if math.Abs(vx-wantVx) > 0.001 {
		t.Errorf("vx = %v, want ~%v", vx, wantVx)
	}
	if math.Abs(vy) > 1e-9 {
		t.Errorf("vy = %v, want ~0", vy)
	}
}

func TestAvoidVelocityIgnoresDistantPeer(t *testing.T) {
	agent := r3.Vec{X: 0, Y: 0, Z: 0}
	peer := PeerState{Name: "B", Position: r3.Vec{X: 5, Y: 5, Z: 0}}
	bounds := Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10}

	vx, vy := AvoidVelocity(agent, []PeerState{peer}, agent, bounds)

	if math.Abs(vx) > 1e-9 || math.Abs(vy) > 1e-9 {
		t.Errorf("expected no repulsion from a distant peer, got (%v, %v)", vx, vy)
	}
}

func TestSoftBordersZeroOutwardVelocity(t *testing.T) {
	bounds := Bounds{XMin: 0, XMax: 10, YMin: 0, YMax: 10}
	// x = 1 is within the outer 20% band (inset = 2), velocity points
	// further outward (negative x) and must be zeroed.
	vx, vy := softBorders(r3.Vec{X: 1, Y: 5}, bounds, -1, 0)
	if vx != 0 {
		t.Errorf("vx = %v, want 0 (soft border)", vx)
	}
	if vy != 0 {
		t.Errorf("vy should be untouched, got %v", vy)
	}
}
