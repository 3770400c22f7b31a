// Package zonehvac applies ASHRAE 90.1-2019 zone equipment control rules to
// the zone HVAC components of a building document.
//
// Two rules are implemented:
//
//   - Vestibule heating control (6.4.3.9): required for equipment serving a
//     vestibule thermal zone.
//   - Occupant standby mode: fan coils and packaged terminal units with an
//     on/off supply fan have their fan operating-mode schedule rewritten so
//     the fan cycles during standby hours instead of running continuously.
//
// Equipment without a thermal zone cannot be evaluated; both rules report
// ErrNoThermalZone so the caller can record a warning and move on.
package zonehvac
