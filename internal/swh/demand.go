package swh

import (
	"fmt"

	"github.com/nerrad567/gray-logic-swh/internal/building"
	"github.com/nerrad567/gray-logic-swh/internal/standards"
)

// StandardsData is the read-only standards lookup the engine depends on.
// *standards.Tables satisfies it.
type StandardsData interface {
	SpaceType(name string) (standards.SpaceType, bool)
	DaySchedule(name string, day standards.DayType) (standards.Schedule, bool)
}

// DemandRecord is the hot-water demand of one space.
type DemandRecord struct {
	Space              string  `json:"space"`
	PeakFlowGalPerHour float64 `json:"peak_flow_gal_per_hour"`
	PeakFlowM3PerS     float64 `json:"peak_flow_m3_per_s"`
	TargetTemperatureC float64 `json:"target_temperature_c"`
	Schedule           string  `json:"schedule"`
}

// SpaceDemand is the survey outcome for one space. Record is only
// meaningful when HasDemand is true.
type SpaceDemand struct {
	Space     string       `json:"space"`
	HasDemand bool         `json:"has_demand"`
	Record    DemandRecord `json:"record"`
}

// Survey is the per-space demand of a building, in space name order.
type Survey struct {
	Spaces   []SpaceDemand `json:"spaces"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// Records returns the demand records of spaces that have demand.
func (s Survey) Records() []DemandRecord {
	records := make([]DemandRecord, 0, len(s.Spaces))
	for _, sd := range s.Spaces {
		if sd.HasDemand {
			records = append(records, sd.Record)
		}
	}
	return records
}

// PeakFlow returns the survey outcome for the named space.
func (s Survey) PeakFlow(space string) (float64, bool) {
	for _, sd := range s.Spaces {
		if sd.Space == space {
			if !sd.HasDemand {
				return 0, true
			}
			return sd.Record.PeakFlowM3PerS, true
		}
	}
	return 0, false
}

// SurveyDemand evaluates every space of b against the standards tables.
//
// A space has demand when its standards space type declares a nonzero
// peak flow and a schedule. Its peak flow is the per-area flow times the
// floor area in ft² times the space multiplier. Spaces whose type is
// missing from the tables produce a warning and no demand.
func SurveyDemand(b *building.Building, data StandardsData, opts Options) Survey {
	spaces := sortedSpaces(b.Spaces)
	survey := Survey{Spaces: make([]SpaceDemand, 0, len(spaces))}

	for _, space := range spaces {
		sd := SpaceDemand{Space: space.Name}

		name := b.StandardsSpaceType(space)
		if name == "" {
			survey.Spaces = append(survey.Spaces, sd)
			continue
		}

		st, ok := data.SpaceType(name)
		if !ok {
			survey.Warnings = append(survey.Warnings, Warning{
				Subject: space.Name,
				Message: fmt.Sprintf("space type %q not found in standards tables", name),
			})
			survey.Spaces = append(survey.Spaces, sd)
			continue
		}
		if !st.HasServiceWaterHeating() {
			survey.Spaces = append(survey.Spaces, sd)
			continue
		}

		areaFt2 := squareMetersToSquareFeet(space.FloorAreaM2)
		peakGPH := st.PeakFlowPerArea * areaFt2 * float64(space.EffectiveMultiplier())

		temp := opts.DefaultTargetTemperatureC
		if st.TargetTemperature == nil || *st.TargetTemperature <= opts.MinTargetTemperatureC {
			var msg string
			if st.TargetTemperature == nil {
				msg = fmt.Sprintf("no target temperature for %q, using %.1f °C", name, temp)
			} else {
				msg = fmt.Sprintf("target temperature %.1f °C for %q is not above %.1f °C, using %.1f °C",
					*st.TargetTemperature, name, opts.MinTargetTemperatureC, temp)
			}
			survey.Warnings = append(survey.Warnings, Warning{Subject: space.Name, Message: msg})
		} else {
			temp = *st.TargetTemperature
		}

		sd.HasDemand = true
		sd.Record = DemandRecord{
			Space:              space.Name,
			PeakFlowGalPerHour: peakGPH,
			PeakFlowM3PerS:     gallonsPerHourToCubicMetersPerSecond(peakGPH),
			TargetTemperatureC: temp,
			Schedule:           st.Schedule,
		}
		survey.Spaces = append(survey.Spaces, sd)
	}

	return survey
}

// MaxTargetTemperature returns the highest target temperature of records,
// starting from absolute zero.
func MaxTargetTemperature(records []DemandRecord) float64 {
	maxT := -273.0
	for _, r := range records {
		if r.TargetTemperatureC > maxT {
			maxT = r.TargetTemperatureC
		}
	}
	return maxT
}
