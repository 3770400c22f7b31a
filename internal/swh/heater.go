package swh

import (
	"fmt"
	"math"

	"github.com/nerrad567/gray-logic-swh/internal/building"
)

// GasPartLoadCurve is the part-load efficiency curve applied to gas heaters.
const GasPartLoadCurve = "SWH-EFFFPLR-NECB2011"

// Parasitic heat fractions to the tank.
const (
	OnCycleParasiticHeatFraction  = 0.0
	OffCycleParasiticHeatFraction = 0.8
)

const (
	electricSmallLimitW     = 12000.0
	gasSmallLimitBtuPerHour = 75000.0
	standbyDeltaF           = 70.0
)

// WaterHeater is the sized tank to rate.
type WaterHeater struct {
	Name      string  `json:"name"`
	FuelType  string  `json:"fuel_type"`
	CapacityW float64 `json:"capacity_w"`
	VolumeM3  float64 `json:"volume_m3"`
}

// HeaterRating is the water heater efficiency and skin loss.
type HeaterRating struct {
	Name              string  `json:"name"`
	FuelType          string  `json:"fuel_type"`
	ThermalEfficiency float64 `json:"thermal_efficiency"`

	// StandbyLossBtuPerHour is zero for small gas heaters, whose UA comes
	// from the recovery efficiency instead.
	StandbyLossBtuPerHour float64 `json:"standby_loss_btu_per_hour,omitempty"`
	EnergyFactor          float64 `json:"energy_factor,omitempty"`
	RecoveryEfficiency    float64 `json:"recovery_efficiency,omitempty"`

	UABtuPerHourF float64 `json:"ua_btu_per_hour_f"`
	UAWPerK       float64 `json:"ua_w_per_k"`

	PartLoadCurve                 string  `json:"part_load_curve,omitempty"`
	OnCycleParasiticHeatFraction  float64 `json:"on_cycle_parasitic_heat_fraction"`
	OffCycleParasiticHeatFraction float64 `json:"off_cycle_parasitic_heat_fraction"`
}

// RateWaterHeater applies the PNNL prototype efficiency and skin-loss rules
// to a water heater.
//
// Returns:
//   - HeaterRating: Efficiency, UA and standards-suffixed name
//   - error: ErrData for missing capacity or volume or an unsupported fuel;
//     ErrDomain when the tank is too large for a valid energy factor
func RateWaterHeater(wh WaterHeater) (HeaterRating, error) {
	if wh.CapacityW <= 0 {
		return HeaterRating{}, fmt.Errorf("%w: %s: capacity not set", ErrData, wh.Name)
	}
	if wh.VolumeM3 <= 0 {
		return HeaterRating{}, fmt.Errorf("%w: %s: volume not set", ErrData, wh.Name)
	}

	capBtuH := wattsToBtuPerHour(wh.CapacityW)
	volGal := cubicMetersToGallons(wh.VolumeM3)

	r := HeaterRating{
		FuelType:                      wh.FuelType,
		OnCycleParasiticHeatFraction:  OnCycleParasiticHeatFraction,
		OffCycleParasiticHeatFraction: OffCycleParasiticHeatFraction,
	}

	switch wh.FuelType {
	case building.FuelElectricity:
		r.ThermalEfficiency = 1
		if capBtuH <= wattsToBtuPerHour(electricSmallLimitW) {
			volL := wh.VolumeM3 * 1000
			var slW float64
			if volL < 270 {
				slW = 40 + 0.2*volL
			} else {
				slW = 0.472*volL - 33.5
			}
			r.StandbyLossBtuPerHour = wattsToBtuPerHour(slW)
		} else {
			r.StandbyLossBtuPerHour = 20 + 35*math.Sqrt(volGal)
		}
		r.UABtuPerHourF = r.StandbyLossBtuPerHour / standbyDeltaF

	case building.FuelNaturalGas:
		r.PartLoadCurve = GasPartLoadCurve
		if capBtuH <= gasSmallLimitBtuPerHour {
			r.ThermalEfficiency = 0.82
			ef := 0.67 - 0.0019*volGal
			if ef <= 0 {
				return HeaterRating{}, fmt.Errorf("%w: %s: energy factor %.4f for %.1f gal tank", ErrDomain, wh.Name, ef, volGal)
			}
			r.EnergyFactor = ef
			r.RecoveryEfficiency = recoveryEfficiency(ef)
			r.UABtuPerHourF = (r.ThermalEfficiency - r.RecoveryEfficiency) * capBtuH / 67.5
		} else {
			const et = 0.8
			r.StandbyLossBtuPerHour = capBtuH/800 + 110*math.Sqrt(volGal)
			r.UABtuPerHourF = r.StandbyLossBtuPerHour * et / standbyDeltaF
			r.ThermalEfficiency = (r.UABtuPerHourF*standbyDeltaF + capBtuH*et) / capBtuH
		}

	default:
		return HeaterRating{}, fmt.Errorf("%w: %s: fuel type %q not supported", ErrData, wh.Name, wh.FuelType)
	}

	r.UAWPerK = r.UABtuPerHourF * wattsPerKPerBtuPerHourF
	r.Name = fmt.Sprintf("%s %.3f Therm Eff", wh.Name, r.ThermalEfficiency)
	return r, nil
}

// recoveryEfficiency solves for the recovery efficiency of a reference
// 75,000 Btu/h, 40 gal gas heater with energy factor ef and 0.82 thermal
// efficiency.
func recoveryEfficiency(ef float64) float64 {
	const c = gasSmallLimitBtuPerHour
	disc := 6724*ef*ef*c*c + 40409100*ef*ef*c - 28080900*ef*c +
		29318000625*ef*ef - 58636001250*ef + 29318000625
	return (math.Sqrt(disc) + 82*ef*c + 171225*ef - 171225) / (200 * ef * c)
}
