// Package swarm holds the ordered agent collection and the readiness
// latch of §3's Swarm type, and the supervisor that dispatches mode
// control laws per tick (§4.5). It is grounded on swarm_object_class.py's
// SwarmObject, restructured per §9's note to replace the source's
// parallel name/object lists with a single name-keyed map plus an
// insertion-order slice, so remove_agent is a single delete.
package swarm

import (
	"github.com/picogrid/swarmcore/internal/agent"
)

// Swarm is the ordered collection of agents, the manual-flight subset, and
// the global manual axes the joystick worker writes to. It is owned
// exclusively by the supervisor's cooperative loop (§5); no field here is
// synchronized internally.
type Swarm struct {
	order  []string
	agents map[string]*agent.Agent
	manual map[string]bool

	ManualX, ManualY, ManualZ, ManualYawDeg float64

	ready bool
}

// New returns an empty Swarm.
func New() *Swarm {
	return &Swarm{agents: make(map[string]*agent.Agent), manual: make(map[string]bool)}
}

// Add appends an agent to the swarm in insertion order. Adding an agent
// whose name already exists is a programmer error (§3's uniqueness
// invariant) and panics, the same way the reference corpus treats a
// violated invariant as unrecoverable rather than a runtime error.
func (s *Swarm) Add(a *agent.Agent, manualFlight bool) {
	if _, exists := s.agents[a.Name]; exists {
		panic("swarm: duplicate agent name " + a.Name)
	}
	s.agents[a.Name] = a
	s.order = append(s.order, a.Name)
	if manualFlight {
		s.manual[a.Name] = true
	}
}

// Remove deletes an agent by name from both the map and the order slice.
// Callers dispatching over Agents() must defer Remove until after the
// iteration completes (§4.5, invariant #9).
func (s *Swarm) Remove(name string) {
	if _, exists := s.agents[name]; !exists {
		return
	}
	delete(s.agents, name)
	delete(s.manual, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get looks up an agent by name.
func (s *Swarm) Get(name string) (*agent.Agent, bool) {
	a, ok := s.agents[name]
	return a, ok
}

// Agents returns every agent in swarm insertion order.
func (s *Swarm) Agents() []*agent.Agent {
	out := make([]*agent.Agent, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, s.agents[n])
	}
	return out
}

// ManualAgents returns the manual-flight subset, in insertion order.
func (s *Swarm) ManualAgents() []*agent.Agent {
	var out []*agent.Agent
	for _, n := range s.order {
		if s.manual[n] {
			out = append(out, s.agents[n])
		}
	}
	return out
}

// InFlightPeers resolves a connectivity set to the subset of named peers
// that are currently in-flight, the per-tick filter §9 requires.
func (s *Swarm) InFlightPeers(names map[string]struct{}) []*agent.Agent {
	var out []*agent.Agent
	for _, n := range s.order {
		if _, wanted := names[n]; !wanted {
			continue
		}
		a := s.agents[n]
		if a.Mode.InFlight() {
			out = append(out, a)
		}
	}
	return out
}

// PeersToAvoid resolves an agent's PeersToAvoid name list to live agents.
func (s *Swarm) PeersToAvoid(names []string) []*agent.Agent {
	var out []*agent.Agent
	for _, n := range names {
		if a, ok := s.agents[n]; ok {
			out = append(out, a)
		}
	}
	return out
}

// UpdateReadiness re-checks whether every agent has battery_ok and
// position_ok, and latches the gate the first time that holds. Once
// latched, the gate never clears (§8, invariant #4), and subsequent calls
// are no-ops.
func (s *Swarm) UpdateReadiness() (justLatched bool) {
	if s.ready {
		return false
	}
	for _, n := range s.order {
		a := s.agents[n]
		if !(a.BatteryOK && a.PositionOK) {
			return false
		}
	}
	s.ready = true
	return true
}

// Ready reports whether the readiness latch has fired.
func (s *Swarm) Ready() bool { return s.ready }
