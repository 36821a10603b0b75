package trackersrc

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/picogrid/swarmcore/internal/tracker"
)

// ReplaySource replays a recorded CSV of tracker frames at a fixed period,
// for exercising the supervisor without a live tracker attached. Each row
// is "timestamp_us,marker_id,x_m,y_m,z_m"; consecutive rows sharing a
// timestamp are grouped into one frame.
type ReplaySource struct {
	rows   [][]string
	period time.Duration
}

// NewReplaySource reads every row from r up front.
func NewReplaySource(r io.Reader, period time.Duration) (*ReplaySource, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("trackersrc: read replay csv: %w", err)
	}
	return &ReplaySource{rows: rows, period: period}, nil
}

// Frames groups the recorded rows into tracker.Frame values and emits one
// per tick until exhausted or ctx is cancelled.
func (s *ReplaySource) Frames(ctx context.Context) (<-chan tracker.Frame, error) {
	frames, err := groupRows(s.rows)
	if err != nil {
		return nil, err
	}

	out := make(chan tracker.Frame)
	go func() {
		defer close(out)
		ticker := time.NewTicker(s.period)
		defer ticker.Stop()
		for _, f := range frames {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case out <- f:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close is a no-op; ReplaySource owns no external resource.
func (s *ReplaySource) Close() error { return nil }

func groupRows(rows [][]string) ([]tracker.Frame, error) {
	byTimestamp := make(map[int64][]tracker.Marker)
	var order []int64

	for _, row := range rows {
		ts, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("trackersrc: bad timestamp %q: %w", row[0], err)
		}
		id, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("trackersrc: bad marker id %q: %w", row[1], err)
		}
		x, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("trackersrc: bad x %q: %w", row[2], err)
		}
		y, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("trackersrc: bad y %q: %w", row[3], err)
		}
		z, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("trackersrc: bad z %q: %w", row[4], err)
		}

		if _, ok := byTimestamp[ts]; !ok {
			order = append(order, ts)
		}
		// The CSV stores meters (x_m,y_m,z_m); tracker.Marker is millimeters.
		byTimestamp[ts] = append(byTimestamp[ts], tracker.Marker{
			ID: id,
			X:  x * 1000.0,
			Y:  y * 1000.0,
			Z:  z * 1000.0,
		})
	}

	frames := make([]tracker.Frame, 0, len(order))
	for _, ts := range order {
		frames = append(frames, tracker.Frame{TimestampMicros: ts, Markers: byTimestamp[ts]})
	}
	return frames, nil
}
