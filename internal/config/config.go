// Package config loads the YAML run configuration: arena bounds, tick
// period, overridable gains, manual-axis device profile, and the per-agent
// roster. It follows the teacher's nested yaml-tagged struct pattern
// (cmd/drone-swarm/config/config.go): plain structs with yaml tags, a
// LoadConfig that reads and unmarshals, and a Validate that checks the
// invariants spec §3 requires before any agent is constructed from it.
package config

import (
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/swarmcore/internal/agent"
	"github.com/picogrid/swarmcore/internal/control"
)

// Vec3 is a plain (x, y, z) triple as it appears in YAML; BuildAgentConfigs
// converts it to gonum's r3.Vec.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// GainsConfig holds the consensus gains read from the YAML file. Zero
// values fall back to the internal/control constants in LoadConfig. The
// control laws in internal/control use their own package constants and do
// not read these values.
type GainsConfig struct {
	ZConsensusKp  float64 `yaml:"z_consensus_kp"`
	XYConsensusKp float64 `yaml:"xy_consensus_kp"`
	XYConsensusXi float64 `yaml:"xy_consensus_xi"`
}

// AgentConfig is one agent's YAML entry: the parameters-file fields plus
// the attitude envelope the flat parameters file doesn't carry.
type AgentConfig struct {
	Name            string   `yaml:"name"`
	LinkAddress     string   `yaml:"link_address"`
	MaxRollDeg      float64  `yaml:"max_roll_deg"`
	MaxPitchDeg     float64  `yaml:"max_pitch_deg"`
	PosMin          Vec3     `yaml:"pos_min"`
	PosMax          Vec3     `yaml:"pos_max"`
	TakeoffHeight   float64  `yaml:"takeoff_height"`
	InitialPosition Vec3     `yaml:"initial_position"`
	Connectivity    []string `yaml:"connectivity"`
	OffsetR         float64  `yaml:"offset_r"`
	OffsetRho       float64  `yaml:"offset_rho"`
	PeersToAvoid    []string `yaml:"peers_to_avoid"`
	ManualFlight    bool     `yaml:"manual_flight"`
	Enabled         bool     `yaml:"enabled"`
}

// RunConfig is the top-level YAML run configuration consumed by the CLI.
type RunConfig struct {
	TickPeriod   time.Duration `yaml:"tick_period"`
	Arena        control.Bounds `yaml:"-"`
	ArenaRaw     struct {
		XMin float64 `yaml:"x_min"`
		XMax float64 `yaml:"x_max"`
		YMin float64 `yaml:"y_min"`
		YMax float64 `yaml:"y_max"`
	} `yaml:"arena"`
	Gains        GainsConfig   `yaml:"gains"`
	DeviceName   string        `yaml:"device"`
	TrackerAddr  string        `yaml:"tracker_addr"`
	Agents       []AgentConfig `yaml:"agents"`
}

// LoadConfig reads and parses the YAML run configuration at path.
func LoadConfig(path string) (*RunConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Arena = control.Bounds{
		XMin: cfg.ArenaRaw.XMin, XMax: cfg.ArenaRaw.XMax,
		YMin: cfg.ArenaRaw.YMin, YMax: cfg.ArenaRaw.YMax,
	}

	applyGainDefaults(&cfg.Gains)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyGainDefaults(g *GainsConfig) {
	if g.ZConsensusKp == 0 {
		g.ZConsensusKp = control.ZConsensusKp
	}
	if g.XYConsensusKp == 0 {
		g.XYConsensusKp = control.XYConsensusKp
	}
	if g.XYConsensusXi == 0 {
		g.XYConsensusXi = control.XYConsensusXi
	}
}

func (v Vec3) toR3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// BuildAgentConfigs converts every YAML agent entry into an agent.Config,
// the in-memory type the supervisor actually constructs agents from.
func (c *RunConfig) BuildAgentConfigs() []agent.Config {
	out := make([]agent.Config, 0, len(c.Agents))
	for _, raw := range c.Agents {
		connectivity := make(map[string]struct{}, len(raw.Connectivity))
		for _, peer := range raw.Connectivity {
			connectivity[peer] = struct{}{}
		}
		out = append(out, agent.Config{
			Name:        raw.Name,
			LinkAddress: raw.LinkAddress,
			Envelope: agent.Envelope{
				MaxRollDeg:  raw.MaxRollDeg,
				MaxPitchDeg: raw.MaxPitchDeg,
				PosMin:      raw.PosMin.toR3(),
				PosMax:      raw.PosMax.toR3(),
			},
			TakeoffHeight:   raw.TakeoffHeight,
			InitialPosition: raw.InitialPosition.toR3(),
			Connectivity:    connectivity,
			FormationOffset: agent.FormationOffset{R: raw.OffsetR, Rho: raw.OffsetRho},
			PeersToAvoid:    raw.PeersToAvoid,
			ManualFlight:    raw.ManualFlight,
			Enabled:         raw.Enabled,
		})
	}
	return out
}

// Validate checks the static invariants of §3's data model that a run
// configuration must satisfy before any Agent is constructed from it:
// unique names and connectivity never naming the agent itself.
func (c *RunConfig) Validate() error {
	if c.TickPeriod <= 0 {
		c.TickPeriod = 50 * time.Millisecond
	}
	if c.Arena.XMax <= c.Arena.XMin || c.Arena.YMax <= c.Arena.YMin {
		return fmt.Errorf("config: arena bounds must have max > min")
	}

	seen := make(map[string]bool, len(c.Agents))
	for _, a := range c.Agents {
		if a.Name == "" {
			return fmt.Errorf("config: agent with empty name")
		}
		if seen[a.Name] {
			return fmt.Errorf("config: duplicate agent name %q", a.Name)
		}
		seen[a.Name] = true
	}
	for _, a := range c.Agents {
		for _, peer := range a.Connectivity {
			if peer == a.Name {
				return fmt.Errorf("config: agent %q lists itself in connectivity", a.Name)
			}
		}
	}
	return nil
}
