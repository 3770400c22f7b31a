package standards

import (
	"fmt"
	"strings"
)

// HoursPerDay is the number of hourly values every day schedule must carry.
const HoursPerDay = 24

// DayType classifies a calendar day for schedule selection.
type DayType int

const (
	// Weekday is the default day type (weekdays and any unlisted day).
	Weekday DayType = iota
	// Saturday covers Saturdays.
	Saturday
	// SundayOrHoliday covers Sundays and holidays.
	SundayOrHoliday
)

// dayTypeCount is the number of day types in the sizing calendar.
const dayTypeCount = 3

var dayTypeTags = [dayTypeCount]string{
	Weekday:         "Default|Wkdy",
	Saturday:        "Sat",
	SundayOrHoliday: "Sun|Hol",
}

// DayTypes returns all day types in calendar scan order.
func DayTypes() []DayType {
	return []DayType{Weekday, Saturday, SundayOrHoliday}
}

// String returns the standards data tag for the day type.
func (d DayType) String() string {
	if d < 0 || int(d) >= dayTypeCount {
		return fmt.Sprintf("DayType(%d)", int(d))
	}
	return dayTypeTags[d]
}

// Next returns the day type that follows d in the sizing calendar.
// The sequence wraps: Weekday -> Saturday -> SundayOrHoliday -> Weekday.
func (d DayType) Next() DayType {
	return (d + 1) % dayTypeCount
}

// Valid reports whether d is one of the defined day types.
func (d DayType) Valid() bool {
	return d >= 0 && int(d) < dayTypeCount
}

// MarshalText encodes the day type as its standards tag.
func (d DayType) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDayType, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a standards tag into a day type.
func (d *DayType) UnmarshalText(text []byte) error {
	parsed, err := ParseDayType(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDayType converts a standards tag into a DayType.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseDayType(tag string) (DayType, error) {
	tag = strings.TrimSpace(tag)
	for i, t := range dayTypeTags {
		if strings.EqualFold(tag, t) {
			return DayType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDayType, tag)
}

// SpaceType is one row of the space_types table.
type SpaceType struct {
	BuildingType string `json:"building_type" yaml:"building_type"`
	SpaceType    string `json:"space_type" yaml:"space_type"`

	// PeakFlowPerArea is the peak hot-water draw in US gal/h per ft² of floor.
	PeakFlowPerArea float64 `json:"service_water_heating_peak_flow_per_area" yaml:"service_water_heating_peak_flow_per_area"`

	// PeakFlowRate is an absolute peak draw in US gal/h. It only marks the
	// space type as having demand; sizing scales PeakFlowPerArea by area.
	PeakFlowRate float64 `json:"service_water_heating_peak_flow_rate" yaml:"service_water_heating_peak_flow_rate"`

	// TargetTemperature is the service temperature in °C, nil if unspecified.
	TargetTemperature *float64 `json:"service_water_heating_target_temperature,omitempty" yaml:"service_water_heating_target_temperature,omitempty"`

	// Schedule is the fractional-use schedule name. Empty means none.
	Schedule string `json:"service_water_heating_schedule,omitempty" yaml:"service_water_heating_schedule,omitempty"`
}

// Name returns the combined "<building type> <space type>" name that
// model space types are matched against.
func (s SpaceType) Name() string {
	return s.BuildingType + " " + s.SpaceType
}

// HasServiceWaterHeating reports whether the space type declares a
// hot-water load: a nonzero peak flow (per area or absolute) and a schedule.
func (s SpaceType) HasServiceWaterHeating() bool {
	if s.PeakFlowPerArea == 0 && s.PeakFlowRate == 0 {
		return false
	}
	return s.Schedule != ""
}

// Schedule is one row of the schedules table: the hourly fractions of peak
// flow for a named schedule on one day type.
type Schedule struct {
	Name     string    `json:"name" yaml:"name"`
	DayTypes string    `json:"day_types" yaml:"day_types"`
	Values   []float64 `json:"values" yaml:"values"`
}

// Document is the on-disk layout of a standards file.
type Document struct {
	SpaceTypes []SpaceType `json:"space_types" yaml:"space_types"`
	Schedules  []Schedule  `json:"schedules" yaml:"schedules"`
}
