// Package trackersrc supplies tracker.Frame values to the supervisor from
// an external source. The optical tracker itself is out of scope per
// spec §1; this package only owns the wire boundary and the replay tool
// used to exercise the supervisor without a live tracker attached.
package trackersrc

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/picogrid/swarmcore/internal/tracker"
)

// Source streams tracker frames until ctx is cancelled or the underlying
// connection fails, closing the returned channel in either case.
type Source interface {
	Frames(ctx context.Context) (<-chan tracker.Frame, error)
	Close() error
}

// wireMarker is the tracker gateway's JSON frame shape: millimeter
// coordinates, matching the Crazyswarm-style external tracker wire format.
type wireMarker struct {
	ID int     `json:"id"`
	X  float64 `json:"x_mm"`
	Y  float64 `json:"y_mm"`
	Z  float64 `json:"z_mm"`
}

type wireFrame struct {
	TimestampMicros int64        `json:"timestamp_us"`
	Markers         []wireMarker `json:"markers"`
}

// WSSource reads tracker frames off a websocket connection to an external
// motion-capture gateway. The wire format and tracker.Marker both carry
// millimeters; conversion to meters happens once, in Marker.Position.
type WSSource struct {
	conn *websocket.Conn
}

// DialWSSource connects to a tracker gateway at addr.
func DialWSSource(ctx context.Context, addr string) (*WSSource, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("trackersrc: dial %s: %w", addr, err)
	}
	return &WSSource{conn: conn}, nil
}

// Frames starts a reader goroutine that decodes one wireFrame per message
// into a tracker.Frame, carrying the wire's millimeter coordinates straight
// through. The channel closes when ctx is cancelled or the connection
// errors.
func (s *WSSource) Frames(ctx context.Context) (<-chan tracker.Frame, error) {
	out := make(chan tracker.Frame)
	go func() {
		defer close(out)
		for {
			var wf wireFrame
			if err := s.conn.ReadJSON(&wf); err != nil {
				return
			}
			frame := tracker.Frame{
				TimestampMicros: wf.TimestampMicros,
				Markers:         make([]tracker.Marker, len(wf.Markers)),
			}
			for i, m := range wf.Markers {
				frame.Markers[i] = tracker.Marker{ID: m.ID, X: m.X, Y: m.Y, Z: m.Z}
			}
			select {
			case out <- frame:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close releases the websocket connection.
func (s *WSSource) Close() error { return s.conn.Close() }
