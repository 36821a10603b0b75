package control

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarmcore/internal/geometry"
)

// Avoidance gains from §4.4.
const (
	AvoidKpo          = 2.5  // k_po: repulsion gain
	AvoidKv           = 1.0  // k_v: peer velocity lookahead factor
	AvoidKpg          = 1.0  // k_pg: objective pull gain
	AvoidD0           = 0.85 // d0: repulsion radius, meters
	AvoidPeerSpeedMin = 0.25 // peers faster than this use the lookahead projection
	borderInset       = 0.2  // soft-border inset fraction
)

// Bounds is the horizontal arena envelope used by the soft-border clamp and
// to size the objective-pull gain omega.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// Omega returns the objective-pull angular scale omega = pi / (2 * diag),
// where diag is the horizontal arena-corner distance.
func (b Bounds) Omega() float64 {
	diag := math.Hypot(b.XMax-b.XMin, b.YMax-b.YMin)
	return math.Pi / (2 * diag)
}

// AvoidVelocity computes the horizontal avoidance velocity command of
// §4.4's AVOID law: per-peer repulsion plus a square-root well pull toward
// objective, with a soft border clamp.
func AvoidVelocity(position r3.Vec, peers []PeerState, objective r3.Vec, bounds Bounds) (vx, vy float64) {
	omega := bounds.Omega()

	for _, peer := range peers {
		refX, refY, d := avoidReference(position, peer)
		if d > AvoidD0 {
			continue
		}
		term := AvoidKpo * (math.Exp(-d) - math.Exp(-AvoidD0))
		dirX := (refX - position.X) / (d + geometry.Epsilon)
		dirY := (refY - position.Y) / (d + geometry.Epsilon)
		vx -= dirX * term
		vy -= dirY * term
	}

	d1 := math.Pi / (2 * omega)
	ex := objective.X - position.X
	ey := objective.Y - position.Y
	dist := math.Hypot(ex, ey)
	denom := 2 * d1 * math.Sqrt((dist+geometry.Epsilon)/d1)
	vx += ex * AvoidKpg / denom
	vy += ey * AvoidKpg / denom

	vx, vy = softBorders(position, bounds, vx, vy)
	return vx, vy
}

// avoidReference picks the point a peer's repulsion is measured against:
// the peer itself if it's nearly stationary, or the clamped projection of
// the agent's position onto the peer's velocity-extrapolated segment
// otherwise. Returns the reference point's (x, y) and the horizontal
// distance to it.
func avoidReference(position r3.Vec, peer PeerState) (refX, refY, d float64) {
	speed := math.Hypot(peer.Velocity.X, peer.Velocity.Y)
	if speed <= AvoidPeerSpeedMin {
		refX, refY = peer.Position.X, peer.Position.Y
		d = geometry.Distance2(position, peer.Position)
		return refX, refY, d
	}

	segX := AvoidKv * peer.Velocity.X
	segY := AvoidKv * peer.Velocity.Y
	segLenSq := segX*segX + segY*segY

	t := 0.0
	if segLenSq > geometry.Epsilon {
		t = ((position.X-peer.Position.X)*segX + (position.Y-peer.Position.Y)*segY) / segLenSq
	}
	t = geometry.Clamp(t, 0, 1)

	refX = peer.Position.X + t*segX
	refY = peer.Position.Y + t*segY
	d = math.Hypot(position.X-refX, position.Y-refY)
	return refX, refY, d
}

// softBorders zeros a velocity component when the agent sits in the outer
// 20% inset band of the arena and that component points further outward.
func softBorders(position r3.Vec, bounds Bounds, vx, vy float64) (float64, float64) {
	xInset := borderInset * (bounds.XMax - bounds.XMin)
	yInset := borderInset * (bounds.YMax - bounds.YMin)

	if position.X < bounds.XMin+xInset && vx < 0 {
		vx = 0
	}
	if position.X > bounds.XMax-xInset && vx > 0 {
		vx = 0
	}
	if position.Y < bounds.YMin+yInset && vy < 0 {
		vy = 0
	}
	if position.Y > bounds.YMax-yInset && vy > 0 {
		vy = 0
	}
	return vx, vy
}
