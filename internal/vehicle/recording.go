package vehicle

import "context"

// Call records one outbound command captured by a RecordingLink.
type Call struct {
	Command string
	Args    []float64
	Thrust  uint16
}

// RecordingLink is an in-memory Link that records every call instead of
// sending it anywhere. It's the swarm supervisor's test double, playing
// the same role the reference corpus's mocked clients play in its
// controller tests: exercise the dispatch logic without a real transport.
type RecordingLink struct {
	Calls  []Call
	Closed bool
}

func (l *RecordingLink) SendPositionSetpoint(_ context.Context, x, y, z, yawDeg float64) error {
	l.Calls = append(l.Calls, Call{Command: "position_setpoint", Args: []float64{x, y, z, yawDeg}})
	return nil
}

func (l *RecordingLink) SendVelocityWorldSetpoint(_ context.Context, vx, vy, vz, yawRateDeg float64) error {
	l.Calls = append(l.Calls, Call{Command: "velocity_world_setpoint", Args: []float64{vx, vy, vz, yawRateDeg}})
	return nil
}

func (l *RecordingLink) SendSetpoint(_ context.Context, rollDeg, pitchDeg, yawRateDeg float64, thrust uint16) error {
	l.Calls = append(l.Calls, Call{Command: "setpoint", Args: []float64{rollDeg, pitchDeg, yawRateDeg}, Thrust: thrust})
	return nil
}

func (l *RecordingLink) SendStopSetpoint(_ context.Context) error {
	l.Calls = append(l.Calls, Call{Command: "stop_setpoint"})
	return nil
}

func (l *RecordingLink) SendExtPos(_ context.Context, x, y, z float64) error {
	l.Calls = append(l.Calls, Call{Command: "extpos", Args: []float64{x, y, z}})
	return nil
}

func (l *RecordingLink) SetupParameters(_ context.Context) error {
	l.Calls = append(l.Calls, Call{Command: "setup_parameters"})
	return nil
}

func (l *RecordingLink) SubscribeAttitudeLog(_ context.Context) (<-chan AttitudeSample, error) {
	ch := make(chan AttitudeSample)
	close(ch)
	return ch, nil
}

func (l *RecordingLink) Close() error {
	l.Closed = true
	return nil
}

// LastCommand returns the command name of the most recent call, or "" if
// none were made.
func (l *RecordingLink) LastCommand() string {
	if len(l.Calls) == 0 {
		return ""
	}
	return l.Calls[len(l.Calls)-1].Command
}
