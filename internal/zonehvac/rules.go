package zonehvac

import "fmt"

// VestibuleHeatingControlRequired reports whether vestibule heating control
// applies to the equipment.
//
// Returns:
//   - bool: true only when the equipment serves a vestibule zone
//   - error: ErrNoThermalZone if the equipment has no zone (result is false)
func VestibuleHeatingControlRequired(c Component) (bool, error) {
	if c.ThermalZone == nil {
		return false, fmt.Errorf("%w: %s", ErrNoThermalZone, c.Name)
	}
	return c.ThermalZone.IsVestibule(), nil
}

// ApplyStandbyModeOccupancyControl rewrites the fan operating-mode schedule
// of qualifying equipment so the supply fan cycles during occupant standby.
// Every StandbyModeValue in the schedule is replaced with 0.
//
// Equipment that is not a four-pipe fan coil, PTAC or PTHP, or whose supply
// fan is not on/off, is left unchanged and reported as not applied.
//
// Returns:
//   - int: Number of schedule values changed
//   - bool: Whether the rule applied to this equipment
//   - error: ErrNoThermalZone or ErrNoOperatingSchedule; the component is unchanged
func ApplyStandbyModeOccupancyControl(c *Component) (int, bool, error) {
	if c.ThermalZone == nil {
		return 0, false, fmt.Errorf("%w: %s", ErrNoThermalZone, c.Name)
	}
	if !c.supportsStandbyCycling() || c.SupplyFan != FanOnOff {
		return 0, false, nil
	}
	if c.FanOperatingModeSchedule == nil {
		return 0, false, fmt.Errorf("%w: %s", ErrNoOperatingSchedule, c.Name)
	}

	changed := 0
	for i, v := range c.FanOperatingModeSchedule.Values {
		if v == StandbyModeValue {
			c.FanOperatingModeSchedule.Values[i] = 0
			changed++
		}
	}
	return changed, true, nil
}
