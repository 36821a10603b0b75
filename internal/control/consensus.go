package control

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarmcore/internal/geometry"
)

// ZConsensusKp is the z-consensus proportional gain, k_p = 1.
const ZConsensusKp = 1.0

// ZConsensusVelocity computes the vertical velocity command of the linear
// z-averaging consensus law: the signed sum of peer-minus-self altitudes,
// restricted by the caller to in-flight connected peers.
func ZConsensusVelocity(selfZ float64, peerZs []float64) float64 {
	var vz float64
	for _, pz := range peerZs {
		vz += (pz - selfZ) * ZConsensusKp
	}
	return vz
}

// xy-consensus gains: the velocity-damped, body-frame, single-pass form
// recommended in §9 as the reference among the corpus's three variants.
const (
	XYConsensusKp  = 1.0
	XYConsensusXi  = 0.7
	XYConsensusMax = 20.0 // deg, roll/pitch clamp
)

// XYConsensusAttitude computes the desired roll/pitch attitude of the
// double-integrator xy-consensus law: arena-frame position and velocity
// errors to each connected peer, rotated into the navigation frame by the
// agent's own yaw, summed, and mapped through the formation offset (r, rho).
func XYConsensusAttitude(yawDeg float64, selfPos, selfVel r3.Vec, peers []PeerState, offset [2]float64) (rollDeg, pitchDeg float64) {
	yawRad := geometry.DegToRad(yawDeg)
	cosY, sinY := math.Cos(yawRad), math.Sin(yawRad)

	var sumXn, sumYn, sumVxn, sumVyn float64
	for _, peer := range peers {
		ex := peer.Position.X - selfPos.X
		ey := peer.Position.Y - selfPos.Y
		evx := peer.Velocity.X - selfVel.X
		evy := peer.Velocity.Y - selfVel.Y

		xn := ex*cosY + ey*sinY
		yn := -ex*sinY + ey*cosY
		vxn := evx*cosY + evy*sinY
		vyn := -evx*sinY + evy*cosY

		sumXn += xn
		sumYn += yn
		sumVxn += vxn
		sumVyn += vyn
	}

	r, rho := offset[0], offset[1]
	axn := XYConsensusKp*(sumXn+r) + XYConsensusXi*sumVxn
	ayn := XYConsensusKp*(sumYn+rho) + XYConsensusXi*sumVyn

	pitchDeg = geometry.Clamp(geometry.RadToDeg(axn), -XYConsensusMax, XYConsensusMax)
	rollDeg = geometry.Clamp(geometry.RadToDeg(-ayn), -XYConsensusMax, XYConsensusMax)
	return rollDeg, pitchDeg
}
