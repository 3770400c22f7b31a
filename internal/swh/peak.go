package swh

import (
	"fmt"

	"github.com/nerrad567/gray-logic-swh/internal/standards"
)

// Cell addresses one hour of the demand profile and its value.
type Cell struct {
	Day   standards.DayType `json:"day_type"`
	Hour  int               `json:"hour"`
	Value float64           `json:"value"`
}

// PeakEvent is the peak demand hour and the hour that follows it.
type PeakEvent struct {
	Peak Cell `json:"peak"`
	Next Cell `json:"next"`
}

// Successor returns the hour after (day, hour), wrapping 23 to 0 of the
// next day type.
func Successor(day standards.DayType, hour int) (standards.DayType, int) {
	if hour == standards.HoursPerDay-1 {
		return day.Next(), 0
	}
	return day, hour + 1
}

// LocatePeak finds the peak hour of the profile.
//
// Every cell equal to the profile maximum is a candidate. The candidate
// whose successor hour has the strictly largest demand wins; among equal
// successors the earliest candidate in scan order (Weekday, Saturday,
// SundayOrHoliday, hours ascending) is kept.
func LocatePeak(p *Profile) PeakEvent {
	peak := p.Max()

	var best PeakEvent
	found := false
	for _, day := range standards.DayTypes() {
		for hour := 0; hour < standards.HoursPerDay; hour++ {
			if p.At(day, hour) != peak {
				continue
			}
			nd, nh := Successor(day, hour)
			next := p.At(nd, nh)
			if !found || next > best.Next.Value {
				best = PeakEvent{
					Peak: Cell{Day: day, Hour: hour, Value: peak},
					Next: Cell{Day: nd, Hour: nh, Value: next},
				}
				found = true
			}
		}
	}
	return best
}

// ExposureFraction returns the fraction of the peak hour not spent drawing
// at the building peak flow: 1 - peak/total.
func ExposureFraction(peak, total float64) (float64, error) {
	if total == 0 {
		return 0, fmt.Errorf("%w: total peak flow is zero", ErrData)
	}
	return 1 - peak/total, nil
}
