package zonehvac

import "errors"

// Domain errors for zone HVAC rule evaluation.
var (
	// ErrNoThermalZone is returned when equipment is not assigned to a thermal zone.
	ErrNoThermalZone = errors.New("equipment is not assigned to a thermal zone")

	// ErrNoOperatingSchedule is returned when qualifying equipment has no
	// supply fan operating-mode schedule to rewrite.
	ErrNoOperatingSchedule = errors.New("supply fan operating mode schedule not set")
)
