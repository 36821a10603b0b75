package realtime

import (
	"errors"
	"testing"

	"github.com/picogrid/swarmcore/internal/faults"
)

func TestGateDetectsOverrun(t *testing.T) {
	var g Gate
	if err := g.Begin(); err != nil {
		t.Fatalf("first Begin: %v", err)
	}

	err := g.Begin()
	if err == nil {
		t.Fatal("expected RealtimeOverrun on a nested Begin")
	}
	var fl *faults.Flight
	if !errors.As(err, &fl) || fl.Kind != faults.RealtimeOverrun {
		t.Fatalf("expected a RealtimeOverrun fault, got %v", err)
	}
}

func TestGateAllowsSequentialTicks(t *testing.T) {
	var g Gate
	for i := 0; i < 3; i++ {
		if err := g.Begin(); err != nil {
			t.Fatalf("Begin #%d: %v", i, err)
		}
		g.End()
	}
}
