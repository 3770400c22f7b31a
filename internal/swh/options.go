package swh

import (
	"fmt"
	"strings"

	"github.com/nerrad567/gray-logic-swh/internal/building"
)

// Default sizing parameters.
const (
	DefaultTargetTemperatureC      = 60.0
	DefaultMinTargetTemperatureC   = 16.0
	DefaultSupplyWaterTemperatureC = 15.0
	DefaultTankUValue              = 0.45
	DefaultExposureThreshold       = 0.2
	DefaultTankHeightToRadius      = 2.0

	DefaultPipeDiameterM      = 0.01905
	DefaultKinematicViscosity = 4.736e-7
	DefaultPipeRoughnessM     = 1.5e-6

	DefaultPumpHeadPa          = 179532.0
	DefaultPumpMotorEfficiency = 0.9
)

// DefaultAmbientTemperatureC is the tank room temperature, 70 °F.
var DefaultAmbientTemperatureC = fahrenheitToCelsius(70)

// PipeOptions describes the distribution piping used for head estimation.
type PipeOptions struct {
	DiameterM          float64 `json:"diameter_m" yaml:"diameter_m"`
	KinematicViscosity float64 `json:"kinematic_viscosity_m2_s" yaml:"kinematic_viscosity_m2_s"`
	RoughnessM         float64 `json:"roughness_m" yaml:"roughness_m"`
}

// Options holds the tunable sizing parameters.
type Options struct {
	// DefaultTargetTemperatureC replaces space target temperatures that are
	// absent or at or below MinTargetTemperatureC.
	DefaultTargetTemperatureC float64
	MinTargetTemperatureC     float64

	// SupplyWaterTemperatureC is the mains inlet temperature.
	SupplyWaterTemperatureC float64
	// AmbientTemperatureC is the room temperature around the tank.
	AmbientTemperatureC float64
	// TankUValue is the tank skin U-value in W/(m²·K).
	TankUValue float64
	// ExposureThreshold is the recovery fraction at or below which the tank
	// must also hold the following hour's draw.
	ExposureThreshold float64
	// TankHeightToRadius is the cylinder aspect ratio.
	TankHeightToRadius float64

	Pipe PipeOptions

	// FuelType is used when the building does not name one.
	FuelType string

	// AutoSizePump selects geometric head estimation in Sizer.Size.
	AutoSizePump bool

	// FixedPumpHeadPa and FixedPumpMotorEfficiency are returned when the
	// pump is not auto-sized.
	FixedPumpHeadPa          float64
	FixedPumpMotorEfficiency float64
}

// DefaultOptions returns the NECB 2011 sizing parameters.
func DefaultOptions() Options {
	return Options{
		DefaultTargetTemperatureC: DefaultTargetTemperatureC,
		MinTargetTemperatureC:     DefaultMinTargetTemperatureC,
		SupplyWaterTemperatureC:   DefaultSupplyWaterTemperatureC,
		AmbientTemperatureC:       DefaultAmbientTemperatureC,
		TankUValue:                DefaultTankUValue,
		ExposureThreshold:         DefaultExposureThreshold,
		TankHeightToRadius:        DefaultTankHeightToRadius,
		Pipe: PipeOptions{
			DiameterM:          DefaultPipeDiameterM,
			KinematicViscosity: DefaultKinematicViscosity,
			RoughnessM:         DefaultPipeRoughnessM,
		},
		FuelType:                 building.FuelNaturalGas,
		FixedPumpHeadPa:          DefaultPumpHeadPa,
		FixedPumpMotorEfficiency: DefaultPumpMotorEfficiency,
	}
}

// Validate reports every out-of-range option.
func (o Options) Validate() error {
	var errs []string

	if o.ExposureThreshold < 0 || o.ExposureThreshold >= 1 {
		errs = append(errs, "exposure threshold must be in [0, 1)")
	}
	if o.TankUValue < 0 {
		errs = append(errs, "tank U-value must not be negative")
	}
	if o.TankHeightToRadius <= 0 {
		errs = append(errs, "tank height to radius must be positive")
	}
	if o.Pipe.DiameterM <= 0 {
		errs = append(errs, "pipe diameter must be positive")
	}
	if o.Pipe.KinematicViscosity <= 0 {
		errs = append(errs, "kinematic viscosity must be positive")
	}
	if o.Pipe.RoughnessM < 0 {
		errs = append(errs, "pipe roughness must not be negative")
	}
	switch o.FuelType {
	case building.FuelElectricity, building.FuelNaturalGas:
	default:
		errs = append(errs, fmt.Sprintf("unsupported fuel type %q", o.FuelType))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrData, strings.Join(errs, "; "))
	}
	return nil
}
