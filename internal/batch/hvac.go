package batch

import (
	"github.com/nerrad567/gray-logic-swh/internal/building"
	"github.com/nerrad567/gray-logic-swh/internal/zonehvac"
)

// ComponentReport is the outcome of the zone HVAC control rules for one
// piece of zone equipment.
type ComponentReport struct {
	Name                    string `json:"name"`
	Kind                    string `json:"kind"`
	VestibuleHeatingControl bool   `json:"vestibule_heating_control"`
	StandbyControlApplied   bool   `json:"standby_control_applied"`
	StandbyValuesReplaced   int    `json:"standby_values_replaced"`
	Error                   string `json:"error,omitempty"`
}

// applyZoneRules runs both control rules over the building's zone equipment.
// The fan schedules in b are rewritten in place. Rule errors are reported per
// component and never fail the building.
func applyZoneRules(b *building.Building) []ComponentReport {
	if len(b.ZoneEquipment) == 0 {
		return nil
	}

	reports := make([]ComponentReport, 0, len(b.ZoneEquipment))
	for i := range b.ZoneEquipment {
		c := &b.ZoneEquipment[i]
		r := ComponentReport{Name: c.Name, Kind: string(c.Kind)}

		vestibule, err := zonehvac.VestibuleHeatingControlRequired(*c)
		if err != nil {
			r.Error = err.Error()
			reports = append(reports, r)
			continue
		}
		r.VestibuleHeatingControl = vestibule

		changed, applied, err := zonehvac.ApplyStandbyModeOccupancyControl(c)
		if err != nil {
			r.Error = err.Error()
		}
		r.StandbyControlApplied = applied
		r.StandbyValuesReplaced = changed

		reports = append(reports, r)
	}
	return reports
}
