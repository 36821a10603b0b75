package trackersrc

import (
	"context"
	"strings"
	"testing"
	"time"
)

const sampleCSV = "1000,1,0.0,0.0,0.5\n1000,2,1.0,0.0,0.5\n2000,1,0.0,0.0,0.6\n2000,2,1.0,0.0,0.6\n"

func TestReplaySourceGroupsByTimestamp(t *testing.T) {
	src, err := NewReplaySource(strings.NewReader(sampleCSV), time.Millisecond)
	if err != nil {
		t.Fatalf("NewReplaySource: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	frames, err := src.Frames(ctx)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}

	f1 := <-frames
	if f1.TimestampMicros != 1000 || len(f1.Markers) != 2 {
		t.Errorf("first frame = %+v, want timestamp 1000 with 2 markers", f1)
	}
	f2 := <-frames
	if f2.TimestampMicros != 2000 || len(f2.Markers) != 2 {
		t.Errorf("second frame = %+v, want timestamp 2000 with 2 markers", f2)
	}
	if _, ok := <-frames; ok {
		t.Error("expected channel to close after exhausting recorded frames")
	}
}

func TestReplaySourceRejectsBadRow(t *testing.T) {
	if _, err := NewReplaySource(strings.NewReader("not,enough\n"), time.Millisecond); err == nil {
		t.Fatal("expected an error for a malformed row")
	}
}

func TestGroupRowsConvertsMetersToMillimeters(t *testing.T) {
	frames, err := groupRows([][]string{{"1000", "1", "0.0", "0.0", "0.5"}})
	if err != nil {
		t.Fatalf("groupRows: %v", err)
	}
	if got := frames[0].Markers[0].Z; got != 500.0 {
		t.Errorf("marker Z = %v, want 500mm for a 0.5m CSV row", got)
	}
	if got := frames[0].Markers[0].Position().Z; got != 0.5 {
		t.Errorf("Position().Z = %v, want 0.5m round-trip", got)
	}
}
