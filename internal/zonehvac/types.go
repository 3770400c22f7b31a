package zonehvac

import "strings"

// Kind identifies the zone equipment class.
type Kind string

// Zone equipment kinds recognised by the control rules. Other kinds may
// appear in building documents and are left untouched.
const (
	KindFourPipeFanCoil Kind = "FourPipeFanCoil"
	KindPTAC            Kind = "PackagedTerminalAirConditioner"
	KindPTHP            Kind = "PackagedTerminalHeatPump"
	KindUnitHeater      Kind = "UnitHeater"
	KindBaseboard       Kind = "Baseboard"
)

// FanType identifies the supply fan model of a zone equipment item.
type FanType string

// Supply fan types.
const (
	FanOnOff          FanType = "OnOff"
	FanConstantVolume FanType = "ConstantVolume"
	FanVariableVolume FanType = "VariableVolume"
)

// StandbyModeValue marks occupant standby hours in a fan operating-mode schedule.
const StandbyModeValue = 12

// ThermalZone is the zone an equipment item serves.
type ThermalZone struct {
	Name      string `json:"name" yaml:"name"`
	Vestibule bool   `json:"vestibule,omitempty" yaml:"vestibule,omitempty"`
}

// IsVestibule reports whether the zone is a vestibule, either flagged
// explicitly or named as one.
func (z ThermalZone) IsVestibule() bool {
	return z.Vestibule || strings.Contains(strings.ToLower(z.Name), "vestibule")
}

// Schedule is a fan operating-mode schedule. Values are modes, not fractions.
type Schedule struct {
	Name   string    `json:"name" yaml:"name"`
	Values []float64 `json:"values" yaml:"values"`
}

// Component is one zone HVAC equipment item.
type Component struct {
	Name        string       `json:"name" yaml:"name"`
	Kind        Kind         `json:"kind" yaml:"kind"`
	ThermalZone *ThermalZone `json:"thermal_zone,omitempty" yaml:"thermal_zone,omitempty"`
	SupplyFan   FanType      `json:"supply_fan,omitempty" yaml:"supply_fan,omitempty"`

	FanOperatingModeSchedule *Schedule `json:"fan_operating_mode_schedule,omitempty" yaml:"fan_operating_mode_schedule,omitempty"`
}

// supportsStandbyCycling reports whether the equipment kind can cycle its
// fan during standby.
func (c *Component) supportsStandbyCycling() bool {
	switch c.Kind {
	case KindFourPipeFanCoil, KindPTAC, KindPTHP:
		return true
	default:
		return false
	}
}
