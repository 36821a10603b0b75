// Package realtime implements the cooperative control loop's overrun
// detector: a one-bit "tick in progress" flag (§5). A new frame arriving
// while the previous tick is still executing is a fatal RealtimeOverrun.
package realtime

import (
	"sync"

	"github.com/picogrid/swarmcore/internal/faults"
)

// Gate serializes tick execution and detects overruns. It carries no
// timers of its own: the tracker frame arrival rate is the clock, and Gate
// only ever observes whether the previous Begin has been matched by an End
// before the next Begin arrives.
type Gate struct {
	mu         sync.Mutex
	inProgress bool
}

// Begin marks the start of a tick. It returns a RealtimeOverrun fault if
// the previous tick's End has not yet been called.
func (g *Gate) Begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inProgress {
		return faults.New(faults.RealtimeOverrun, "", nil)
	}
	g.inProgress = true
	return nil
}

// End marks the current tick as finished.
func (g *Gate) End() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inProgress = false
}

// InProgress reports whether a tick is currently executing.
func (g *Gate) InProgress() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inProgress
}
