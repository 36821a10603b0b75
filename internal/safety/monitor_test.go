package safety

import (
	"testing"

	"github.com/picogrid/swarmcore/internal/agent"
)

func flyingAgent() *agent.Agent {
	a := agent.New(agent.Config{
		Name: "A",
		Envelope: agent.Envelope{
			MaxRollDeg:  20,
			MaxPitchDeg: 20,
		},
	})
	a.IsFlying = true
	return a
}

func TestCheckAttitudeEnvelopeViolation(t *testing.T) {
	a := flyingAgent()
	action, err := CheckAttitude(a, AttitudeSample{RollDeg: 25, PitchDeg: 0})
	if action != StopAndRemove || err == nil {
		t.Fatalf("expected StopAndRemove with an error, got action=%v err=%v", action, err)
	}
}

func TestCheckAttitudeLowBatteryForceLandOnce(t *testing.T) {
	a := flyingAgent()
	action, err := CheckAttitude(a, AttitudeSample{PowerState: LowEnergyPowerState})
	if action != ForceLand || err == nil {
		t.Fatalf("expected ForceLand with an error, got action=%v err=%v", action, err)
	}

	action, _ = CheckAttitude(a, AttitudeSample{PowerState: LowEnergyPowerState})
	if action != NoAction {
		t.Errorf("expected the low-battery Land to fire only once, got %v", action)
	}
}

func TestBatteryPercentInterpolation(t *testing.T) {
	if got := BatteryPercent(3.00); got != 0 {
		t.Errorf("BatteryPercent(3.00) = %v, want 0", got)
	}
	if got := BatteryPercent(4.20); got != 100 {
		t.Errorf("BatteryPercent(4.20) = %v, want 100", got)
	}
	mid := BatteryPercent(3.65)
	if mid <= 5 || mid >= 20 {
		t.Errorf("BatteryPercent(3.65) = %v, want strictly between 5 and 20", mid)
	}
}

func TestRunPreflightChecksDisablesOnLowBattery(t *testing.T) {
	a := agent.New(agent.Config{Name: "A", Enabled: true})
	RunPreflightChecks(a, 3.0, true)
	if a.BatteryOK {
		t.Error("expected BatteryOK = false at 3.0V")
	}
	if a.Enabled {
		t.Error("expected agent to be disabled on low battery")
	}
}
