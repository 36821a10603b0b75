package tracker

import (
	"fmt"

	"github.com/picogrid/swarmcore/internal/agent"
	"github.com/picogrid/swarmcore/internal/faults"
	"github.com/picogrid/swarmcore/internal/geometry"
)

// InitialAssignThreshold is the maximum distance, in meters, between a
// marker and the agent it's assigned to before the assignment is
// considered a marker-confusion risk and the agent is stopped.
const InitialAssignThreshold = 0.50

// InitialAssign performs the first frame's nearest-neighbor marker-to-agent
// assignment. Markers are tried in frame order (first-marker-wins on
// ambiguous ties: once an agent is claimed, later markers fall through to
// their next-nearest unclaimed agent). If the marker and agent counts
// differ, it's a fatal MarkerCountMismatch for the whole swarm.
func InitialAssign(frame Frame, agents []*agent.Agent) error {
	if len(frame.Markers) != len(agents) {
		return faults.New(faults.MarkerCountMismatch, "",
			fmt.Errorf("%d markers, %d agents", len(frame.Markers), len(agents)))
	}

	assigned := make(map[string]bool, len(agents))

	for _, marker := range frame.Markers {
		pos := marker.Position()

		var nearest *agent.Agent
		best := -1.0
		for _, a := range agents {
			if assigned[a.Name] {
				continue
			}
			d := geometry.Distance3(pos, a.InitialPosition)
			if best < 0 || d < best {
				best = d
				nearest = a
			}
		}
		if nearest == nil {
			continue
		}

		assigned[nearest.Name] = true
		nearest.AssignMarker(marker.ID)
		if best > InitialAssignThreshold {
			nearest.Enabled = false
		}
	}

	return nil
}

// Faulted pairs an agent with the fatal error its own tracker update
// raised this frame (currently only DuplicateTimestamp).
type Faulted struct {
	Agent *agent.Agent
	Err   error
}

// TrackFrame applies one frame to every enabled agent holding a marker
// assignment: the agent's owned marker id is looked up in the frame; if
// present, the agent's position/velocity are updated (§4.2); otherwise the
// agent is reported as tracking-lost so the supervisor can transition it to
// Not-flying and drop it. Disabled or never-assigned agents are skipped.
func TrackFrame(frame Frame, agents []*agent.Agent) (lost []*agent.Agent, faulted []Faulted) {
	byID := make(map[int]Marker, len(frame.Markers))
	for _, m := range frame.Markers {
		byID[m.ID] = m
	}

	for _, a := range agents {
		if !a.Enabled || !a.HasMarker() {
			continue
		}
		marker, ok := byID[a.MarkerID]
		if !ok {
			lost = append(lost, a)
			continue
		}
		if err := a.UpdatePosition(frame.TimestampMicros, marker.Position()); err != nil {
			faulted = append(faulted, Faulted{Agent: a, Err: err})
		}
	}
	return lost, faulted
}
