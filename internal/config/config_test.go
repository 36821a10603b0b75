package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
tick_period: 50ms
arena:
  x_min: -2.0
  x_max: 2.0
  y_min: -2.0
  y_max: 2.0
device: "xbox-one-s-sticks"
tracker_addr: "ws://127.0.0.1:9000/tracker"
agents:
  - name: cf1
    link_address: "ws://127.0.0.1:9001/cf1"
    max_roll_deg: 20
    max_pitch_deg: 20
    pos_min: {x: -2, y: -2, z: 0}
    pos_max: {x: 2, y: 2, z: 2}
    takeoff_height: 0.5
    initial_position: {x: 0, y: 0, z: 0}
    connectivity: ["cf2"]
    enabled: true
  - name: cf2
    link_address: "ws://127.0.0.1:9002/cf2"
    max_roll_deg: 20
    max_pitch_deg: 20
    pos_min: {x: -2, y: -2, z: 0}
    pos_max: {x: 2, y: 2, z: 2}
    takeoff_height: 0.5
    initial_position: {x: 1, y: 0, z: 0}
    connectivity: ["cf1"]
    enabled: true
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesGainDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gains.ZConsensusKp != 1.0 {
		t.Errorf("ZConsensusKp default = %v, want 1.0", cfg.Gains.ZConsensusKp)
	}
	if cfg.Gains.XYConsensusXi != 0.7 {
		t.Errorf("XYConsensusXi default = %v, want 0.7", cfg.Gains.XYConsensusXi)
	}
	if len(cfg.Agents) != 2 {
		t.Fatalf("got %d agents, want 2", len(cfg.Agents))
	}
}

func TestLoadConfigRejectsDuplicateNames(t *testing.T) {
	bad := sampleYAML + "\n  - name: cf1\n    enabled: true\n"
	if _, err := LoadConfig(writeTemp(t, bad)); err == nil {
		t.Fatal("expected an error for duplicate agent names")
	}
}

func TestLoadConfigRejectsSelfConnectivity(t *testing.T) {
	bad := `
arena: {x_min: -1, x_max: 1, y_min: -1, y_max: 1}
agents:
  - name: cf1
    connectivity: ["cf1"]
    enabled: true
`
	if _, err := LoadConfig(writeTemp(t, bad)); err == nil {
		t.Fatal("expected an error for self-referential connectivity")
	}
}

func TestBuildAgentConfigsConvertsVectors(t *testing.T) {
	cfg, err := LoadConfig(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	agents := cfg.BuildAgentConfigs()
	if agents[1].InitialPosition.X != 1 {
		t.Errorf("cf2 initial x = %v, want 1", agents[1].InitialPosition.X)
	}
	if _, ok := agents[0].Connectivity["cf2"]; !ok {
		t.Error("cf1 connectivity must include cf2")
	}
}
