package vehicle

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// frame is the wire envelope every WSLink message is sent as: a command
// name plus its JSON-encoded payload. The external radio-gateway process
// on the other end of the socket is responsible for turning this into
// whatever the physical radio link requires.
type frame struct {
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSLink is a Link that frames every command as JSON over a websocket
// connection to an external vehicle-radio gateway. It is the one concrete
// transport this core ships; the gateway process and the actual radio
// driver are out of scope per spec §1.
type WSLink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// DialWSLink opens a websocket connection to addr (e.g.
// "ws://gateway.local:7000/agents/alpha").
func DialWSLink(ctx context.Context, addr string) (*WSLink, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("vehicle: dial %s: %w", addr, err)
	}
	return &WSLink{conn: conn}, nil
}

func (l *WSLink) send(cmd string, payload any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("vehicle: encode %s: %w", cmd, err)
	}
	return l.conn.WriteJSON(frame{Command: cmd, Payload: raw})
}

func (l *WSLink) SendPositionSetpoint(_ context.Context, x, y, z, yawDeg float64) error {
	return l.send("position_setpoint", struct {
		X, Y, Z, YawDeg float64
	}{x, y, z, yawDeg})
}

func (l *WSLink) SendVelocityWorldSetpoint(_ context.Context, vx, vy, vz, yawRateDeg float64) error {
	return l.send("velocity_world_setpoint", struct {
		Vx, Vy, Vz, YawRateDeg float64
	}{vx, vy, vz, yawRateDeg})
}

func (l *WSLink) SendSetpoint(_ context.Context, rollDeg, pitchDeg, yawRateDeg float64, thrust uint16) error {
	return l.send("setpoint", struct {
		RollDeg, PitchDeg, YawRateDeg float64
		Thrust                        uint16
	}{rollDeg, pitchDeg, yawRateDeg, thrust})
}

func (l *WSLink) SendStopSetpoint(_ context.Context) error {
	return l.send("stop_setpoint", struct{}{})
}

func (l *WSLink) SendExtPos(_ context.Context, x, y, z float64) error {
	return l.send("extpos", struct{ X, Y, Z float64 }{x, y, z})
}

func (l *WSLink) SetupParameters(_ context.Context) error {
	return l.send("setup_parameters", struct {
		Estimator int `json:"stabilizer.estimator"`
		PosSet    int `json:"flightmode.posSet"`
	}{EstimatorKalman, PosSetDisabled})
}

func (l *WSLink) SubscribeAttitudeLog(ctx context.Context) (<-chan AttitudeSample, error) {
	if err := l.send("subscribe_attitude_log", struct{ PeriodMillis int }{LogPeriodMillis}); err != nil {
		return nil, err
	}

	out := make(chan AttitudeSample, 16)
	go func() {
		defer close(out)
		for {
			var f frame
			if err := l.conn.ReadJSON(&f); err != nil {
				return
			}
			if f.Command != "attitude_sample" {
				continue
			}
			var sample AttitudeSample
			if err := json.Unmarshal(f.Payload, &sample); err != nil {
				continue
			}
			select {
			case out <- sample:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (l *WSLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.Close()
}
