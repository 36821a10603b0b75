package safety

import (
	"sort"

	"github.com/picogrid/swarmcore/internal/agent"
)

// batteryCurve maps battery voltage (volts) to charge percentage, the
// 7-point discharge curve used to gate takeoff in the reference
// implementation (voltage_points/percent_points), retextured as a sorted
// Go slice instead of a numpy.interp call.
var batteryCurve = []struct {
	Volts, Percent float64
}{
	{3.00, 0},
	{3.60, 5},
	{3.65, 10},
	{3.75, 25},
	{3.85, 50},
	{4.00, 75},
	{4.20, 100},
}

// BatteryPercent interpolates the battery curve at the given voltage,
// clamping to the curve's endpoints outside its domain.
func BatteryPercent(volts float64) float64 {
	if volts <= batteryCurve[0].Volts {
		return batteryCurve[0].Percent
	}
	last := len(batteryCurve) - 1
	if volts >= batteryCurve[last].Volts {
		return batteryCurve[last].Percent
	}

	i := sort.Search(len(batteryCurve), func(i int) bool { return batteryCurve[i].Volts >= volts })
	lo, hi := batteryCurve[i-1], batteryCurve[i]
	frac := (volts - lo.Volts) / (hi.Volts - lo.Volts)
	return lo.Percent + frac*(hi.Percent-lo.Percent)
}

// MinPreflightBatteryPercent is the charge level at or below which the
// original disables an agent (level <= 20).
const MinPreflightBatteryPercent = 20.0

// RunPreflightChecks gates swarm admission per §3's lifecycle and §7's
// pre-flight LowBattery/TrackerAbsent policy: an agent that fails either
// check is disabled but does not block the rest of the swarm.
func RunPreflightChecks(a *agent.Agent, batteryVolts float64, hasMarker bool) {
	a.BatteryOK = BatteryPercent(batteryVolts) > MinPreflightBatteryPercent
	a.PositionOK = hasMarker
	a.SetupFinished = true

	if !a.BatteryOK || !a.PositionOK {
		a.Enabled = false
	}
}

// ForceConnectionFailure handles a vanished vehicle link the way the
// original's cf_connection_failed_callback/cf_disconnected_callback did:
// the agent is disabled, but its battery_ok/position_ok flags are forced
// true so a single dropped radio link never blocks the rest of the
// swarm's readiness latch (§3's readiness invariants only ever tighten
// admission, never hold it open on a vehicle that's already gone).
func ForceConnectionFailure(a *agent.Agent) {
	a.BatteryOK = true
	a.PositionOK = true
	a.SetupFinished = true
	a.Enabled = false
}
