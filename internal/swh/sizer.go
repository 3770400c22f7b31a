package swh

import (
	"errors"
	"fmt"

	"github.com/nerrad567/gray-logic-swh/internal/building"
)

// DefaultHeaterName is the base name of the building water heater.
const DefaultHeaterName = "Main Service Water Heater"

// Logger is the logging interface used by the Sizer.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}

// CapacitySizing is the tank sizing of a building with its demand profile.
type CapacitySizing struct {
	Tank     TankSizing `json:"tank"`
	Profile  *Profile   `json:"profile"`
	Warnings []Warning  `json:"warnings,omitempty"`
}

// Result is the complete SWH sizing of one building.
type Result struct {
	Building     string       `json:"building"`
	BuildingType string       `json:"building_type"`
	Tank         TankSizing   `json:"tank"`
	Profile      *Profile     `json:"profile"`
	Pump         PumpSizing   `json:"pump"`
	Heater       HeaterRating `json:"heater"`
	Warnings     []Warning    `json:"warnings,omitempty"`
}

// Sizer sizes the service water heating of buildings against one set of
// standards tables.
type Sizer struct {
	data   StandardsData
	opts   Options
	logger Logger
}

// NewSizer creates a Sizer.
//
// Parameters:
//   - data: Standards lookup, usually *standards.Tables
//   - opts: Sizing parameters; see DefaultOptions
//
// Returns:
//   - *Sizer: Ready to use
//   - error: If data is nil or opts fails validation
func NewSizer(data StandardsData, opts Options) (*Sizer, error) {
	if data == nil {
		return nil, errors.New("standards data is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Sizer{data: data, opts: opts, logger: noopLogger{}}, nil
}

// SetLogger sets the logger for sizing diagnostics.
func (s *Sizer) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	s.logger = logger
}

// Options returns the sizing parameters.
func (s *Sizer) Options() Options {
	return s.opts
}

// Survey evaluates the hot-water demand of every space in b.
func (s *Sizer) Survey(b *building.Building) Survey {
	return SurveyDemand(b, s.data, s.opts)
}

// SizeCapacity sizes the building storage tank.
func (s *Sizer) SizeCapacity(b *building.Building) (CapacitySizing, error) {
	survey := s.Survey(b)
	return s.sizeCapacity(b, survey)
}

func (s *Sizer) sizeCapacity(b *building.Building, survey Survey) (CapacitySizing, error) {
	records := survey.Records()

	profile, total, err := Aggregate(records, s.data)
	if err != nil {
		return CapacitySizing{}, fmt.Errorf("building %s: %w", b.Name, err)
	}

	event := LocatePeak(profile)
	s.logger.Debug("swh peak located",
		"building", b.Name,
		"peak_day", event.Peak.Day.String(),
		"peak_hour", event.Peak.Hour,
		"peak_gph", event.Peak.Value,
		"next_gph", event.Next.Value,
		"total_gph", total,
	)

	tank, err := SizeTank(event, total, MaxTargetTemperature(records), s.opts)
	if err != nil {
		return CapacitySizing{}, fmt.Errorf("building %s: %w", b.Name, err)
	}
	tank.Records = records

	return CapacitySizing{Tank: tank, Profile: profile, Warnings: survey.Warnings}, nil
}

// SizePump sizes the distribution pump. When autoSize is false the fixed
// default pump is returned. With autoSize and zero building flow the fixed
// pump is returned with a warning.
func (s *Sizer) SizePump(b *building.Building, autoSize bool) (PumpSizing, []Warning, error) {
	survey := s.Survey(b)
	return s.sizePump(b, survey, autoSize)
}

func (s *Sizer) sizePump(b *building.Building, survey Survey, autoSize bool) (PumpSizing, []Warning, error) {
	if !autoSize {
		return FixedPump(s.opts), nil, nil
	}

	total := 0.0
	for _, r := range survey.Records() {
		total += r.PeakFlowM3PerS
	}
	if total <= 0 {
		w := Warning{Subject: b.Name, Message: "no service water heating demand, using fixed pump head"}
		return FixedPump(s.opts), []Warning{w}, nil
	}

	geoms, err := SpaceGeometries(b, survey)
	if err != nil {
		return PumpSizing{}, nil, fmt.Errorf("building %s: %w", b.Name, err)
	}
	pump, err := SizePump(geoms, total, s.opts)
	if err != nil {
		return PumpSizing{}, nil, fmt.Errorf("building %s: %w", b.Name, err)
	}

	s.logger.Debug("swh pump sized",
		"building", b.Name,
		"central_space", pump.CentralSpace,
		"sizing_space", pump.SizingSpace,
		"length_m", pump.PipeLengthM,
		"velocity_m_s", pump.VelocityMPerS,
		"reynolds", pump.Reynolds,
		"friction_factor", pump.FrictionFactor,
		"head_pa", pump.HeadPa,
	)
	return pump, nil, nil
}

// Size runs the full sizing of b: tank capacity, pump and water heater.
// The demand survey is evaluated once and shared by both branches. The pump
// is auto-sized when Options.AutoSizePump is set.
func (s *Sizer) Size(b *building.Building) (*Result, error) {
	survey := s.Survey(b)

	capacity, err := s.sizeCapacity(b, survey)
	if err != nil {
		return nil, err
	}

	pump, pumpWarnings, err := s.sizePump(b, survey, s.opts.AutoSizePump)
	if err != nil {
		return nil, err
	}

	fuel := b.FuelType
	if fuel == "" {
		fuel = s.opts.FuelType
	}
	heater, err := RateWaterHeater(WaterHeater{
		Name:      DefaultHeaterName,
		FuelType:  fuel,
		CapacityW: capacity.Tank.CapacityW,
		VolumeM3:  capacity.Tank.VolumeM3,
	})
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", b.Name, err)
	}

	warnings := make([]Warning, 0, len(capacity.Warnings)+len(pumpWarnings))
	warnings = append(warnings, capacity.Warnings...)
	warnings = append(warnings, pumpWarnings...)
	for _, w := range warnings {
		s.logger.Warn("swh sizing warning", "building", b.Name, "subject", w.Subject, "message", w.Message)
	}

	s.logger.Info("swh sizing complete",
		"building", b.Name,
		"volume_m3", capacity.Tank.VolumeM3,
		"capacity_w", capacity.Tank.CapacityW,
		"pump_head_pa", pump.HeadPa,
		"heater", heater.Name,
	)

	return &Result{
		Building:     b.Name,
		BuildingType: b.BuildingType,
		Tank:         capacity.Tank,
		Profile:      capacity.Profile,
		Pump:         pump,
		Heater:       heater,
		Warnings:     warnings,
	}, nil
}
