package swh

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/nerrad567/gray-logic-swh/internal/standards"
)

// Profile is the building hot-water demand in US gal/h for every hour of
// every day type. Rows are day types, columns are hours.
type Profile struct {
	m *mat.Dense
}

// NewProfile returns an all-zero profile.
func NewProfile() *Profile {
	return &Profile{m: mat.NewDense(len(standards.DayTypes()), standards.HoursPerDay, nil)}
}

// At returns the demand for a day type and hour.
func (p *Profile) At(day standards.DayType, hour int) float64 {
	return p.m.At(int(day), hour)
}

// Add accumulates v into one cell.
func (p *Profile) Add(day standards.DayType, hour int, v float64) {
	p.m.Set(int(day), hour, p.m.At(int(day), hour)+v)
}

// Day returns a copy of one day type's hourly demand.
func (p *Profile) Day(day standards.DayType) []float64 {
	return mat.Row(nil, int(day), p.m)
}

// Max returns the largest cell value.
func (p *Profile) Max() float64 {
	return mat.Max(p.m)
}

// Sum returns the sum over all cells.
func (p *Profile) Sum() float64 {
	return mat.Sum(p.m)
}

// MarshalJSON encodes the profile as a map from day type tag to 24 values.
func (p *Profile) MarshalJSON() ([]byte, error) {
	out := make(map[standards.DayType][]float64, len(standards.DayTypes()))
	for _, d := range standards.DayTypes() {
		out[d] = p.Day(d)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the MarshalJSON form. Missing day types stay zero.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var in map[standards.DayType][]float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.m = NewProfile().m
	for day, values := range in {
		if len(values) != standards.HoursPerDay {
			return fmt.Errorf("%w: profile day %s has %d values", ErrData, day, len(values))
		}
		p.m.SetRow(int(day), values)
	}
	return nil
}

// Aggregate builds the demand profile from the demand records.
//
// For every record, day type and hour, the schedule fraction times the
// record peak flow is added to the profile.
//
// Returns:
//   - *Profile: The accumulated profile
//   - float64: Total building peak flow in gal/h, independent of schedules
//   - error: ErrData if a schedule is missing or does not have 24 values
func Aggregate(records []DemandRecord, data StandardsData) (*Profile, float64, error) {
	profile := NewProfile()
	total := 0.0

	for _, r := range records {
		total += r.PeakFlowGalPerHour

		for _, day := range standards.DayTypes() {
			sched, ok := data.DaySchedule(r.Schedule, day)
			if !ok {
				return nil, 0, fmt.Errorf("%w: schedule %q for day type %s not found (space %s)",
					ErrData, r.Schedule, day, r.Space)
			}
			if len(sched.Values) != standards.HoursPerDay {
				return nil, 0, fmt.Errorf("%w: schedule %q for day type %s has %d values, want %d (space %s)",
					ErrData, r.Schedule, day, len(sched.Values), standards.HoursPerDay, r.Space)
			}
			for hour, fraction := range sched.Values {
				profile.Add(day, hour, fraction*r.PeakFlowGalPerHour)
			}
		}
	}

	return profile, total, nil
}
