package joystick

// Button and axis names, matching the §6 button/axis set.
const (
	ButtonStop            = "Stop"
	ButtonTakeoffLand     = "Takeoff/Land"
	ButtonStandby         = "Standby"
	ButtonManualFlight    = "Manual_flight"
	ButtonYawMinus        = "Yaw-"
	ButtonYawPlus         = "Yaw+"
	ButtonInitialPosition = "Initial_position"
	ButtonZConsensus      = "z_consensus"
	ButtonXYConsensus     = "xy_consensus"

	AxisRoll      = "roll"
	AxisPitch     = "pitch"
	AxisYaw       = "yaw"
	AxisYawMinus  = "yaw-"
	AxisYawPlus   = "yaw+"
	AxisHeight    = "height"
	AxisHeight2   = "height2"
)

// DeviceProfile names a controller model's raw axis/button index-to-name
// tables and which manual_z mapping it uses. Restored from the per-device
// mapping tables the original joystick_map.py carried for several
// controller models; selected by device name at startup (§9's open
// question on manual_z is resolved per profile, not globally).
type DeviceProfile struct {
	Name        string
	AxisNames   map[int]string
	ButtonNames map[int]string
	ManualZMode ManualZMode
}

var fiveAxisTwelveButton = DeviceProfile{
	Name: "5-axis 12-button gamepad",
	AxisNames: map[int]string{
		0: AxisRoll, 1: AxisPitch, 2: AxisHeight, 3: AxisYaw,
	},
	ButtonNames: map[int]string{
		0: ButtonTakeoffLand, 1: ButtonStandby, 2: ButtonManualFlight, 3: ButtonStop,
		4: ButtonYawMinus, 5: ButtonYawPlus, 6: ButtonInitialPosition,
		7: ButtonZConsensus, 8: ButtonXYConsensus,
	},
	ManualZMode: ManualZAbsolute,
}

var logitechExtreme3D = DeviceProfile{
	Name: "Logitech Extreme 3D",
	AxisNames: map[int]string{
		0: AxisRoll, 1: AxisPitch, 2: AxisYaw, 3: AxisHeight,
	},
	ButtonNames: map[int]string{
		0: ButtonStop, 1: ButtonTakeoffLand, 2: ButtonStandby, 3: ButtonManualFlight,
		4: ButtonYawMinus, 5: ButtonYawPlus, 6: ButtonInitialPosition,
		7: ButtonZConsensus, 8: ButtonXYConsensus,
	},
	ManualZMode: ManualZAbsolute,
}

var xboxOneSSticks = DeviceProfile{
	Name: "Xbox One S (stick height)",
	AxisNames: map[int]string{
		0: AxisRoll, 1: AxisPitch, 3: AxisYaw, 4: AxisHeight,
	},
	ButtonNames: map[int]string{
		0: ButtonStandby, 1: ButtonTakeoffLand, 2: ButtonManualFlight, 3: ButtonStop,
		4: ButtonInitialPosition, 5: ButtonZConsensus, 6: ButtonXYConsensus,
		7: ButtonYawMinus, 8: ButtonYawPlus,
	},
	ManualZMode: ManualZAbsolute,
}

var xboxOneSTriggers = DeviceProfile{
	Name: "Xbox One S (trigger height)",
	AxisNames: map[int]string{
		0: AxisRoll, 1: AxisPitch, 3: AxisYaw, 2: AxisHeight2,
	},
	ButtonNames: xboxOneSSticks.ButtonNames,
	ManualZMode: ManualZIncremental,
}

var genericFallback = DeviceProfile{
	Name: "generic",
	AxisNames: map[int]string{
		0: AxisRoll, 1: AxisPitch, 2: AxisHeight, 3: AxisYaw,
	},
	ButtonNames: map[int]string{
		0: ButtonStop, 1: ButtonTakeoffLand,
	},
	ManualZMode: ManualZAbsolute,
}

var knownProfiles = []DeviceProfile{fiveAxisTwelveButton, logitechExtreme3D, xboxOneSSticks, xboxOneSTriggers}

// ProfileForDevice selects the DeviceProfile for a reported device name,
// falling back to a generic profile for anything unrecognized.
func ProfileForDevice(deviceName string) DeviceProfile {
	for _, p := range knownProfiles {
		if p.Name == deviceName {
			return p
		}
	}
	return genericFallback
}
