package swh

import "math"

const (
	waterDensityKgPerM3      = 1000.0
	waterSpecificHeatJPerKgK = 4180.0
)

// TankSizing is the result of sizing the building storage tank.
type TankSizing struct {
	VolumeM3           float64 `json:"volume_m3"`
	VolumeGal          float64 `json:"volume_gal"`
	CapacityW          float64 `json:"capacity_w"`
	MaxTemperatureC    float64 `json:"max_temperature_c"`
	LoopPeakFlowM3PerS float64 `json:"loop_peak_flow_m3_per_s"`
	ParasiticLossW     float64 `json:"parasitic_loss_w"`
	TankRadiusM        float64 `json:"tank_radius_m"`
	TankSurfaceAreaM2  float64 `json:"tank_surface_area_m2"`

	// Peak-hour diagnostics.
	PeakFlowGalPerHour      float64   `json:"peak_flow_gal_per_hour"`
	TotalPeakFlowGalPerHour float64   `json:"total_peak_flow_gal_per_hour"`
	ExposureFraction        float64   `json:"exposure_fraction"`
	NextHourIncluded        bool      `json:"next_hour_included"`
	PeakEvent               PeakEvent `json:"peak_event"`

	Records []DemandRecord `json:"records"`
}

// SizeTank sizes one mixed storage tank for the building peak hour.
//
// The tank holds the peak hour draw. When the exposure fraction is at or
// below opts.ExposureThreshold the tank also holds the following hour's
// draw and gets the whole hour to recover. Capacity is the power needed to
// heat the full volume from the supply temperature to maxTempC in the
// recovery time. The tank is a closed cylinder with height
// opts.TankHeightToRadius times its radius; parasitic loss is its skin loss
// to the room.
//
// Parameters:
//   - event: Peak and successor hour from LocatePeak
//   - total: Building total peak flow in gal/h
//   - maxTempC: Highest space target temperature
//   - opts: Sizing parameters
//
// Returns:
//   - TankSizing: Sized tank; Records is left for the caller to fill
//   - error: ErrData when total is zero
func SizeTank(event PeakEvent, total, maxTempC float64, opts Options) (TankSizing, error) {
	exposure, err := ExposureFraction(event.Peak.Value, total)
	if err != nil {
		return TankSizing{}, err
	}

	volumeGal := event.Peak.Value
	nextIncluded := false
	if exposure <= opts.ExposureThreshold {
		volumeGal += event.Next.Value
		exposure = 1
		nextIncluded = true
	}

	volume := gallonsToCubicMeters(volumeGal)
	capacity := volume * waterDensityKgPerM3 * waterSpecificHeatJPerKgK *
		(maxTempC - opts.SupplyWaterTemperatureC) / (secondsPerHour * exposure)

	hr := opts.TankHeightToRadius
	radius := math.Cbrt(volume / (hr * math.Pi))
	area := 2 * (1 + hr) * math.Pi * radius * radius
	parasitic := opts.TankUValue * area * (maxTempC - opts.AmbientTemperatureC)

	return TankSizing{
		VolumeM3:                volume,
		VolumeGal:               volumeGal,
		CapacityW:               capacity,
		MaxTemperatureC:         maxTempC,
		LoopPeakFlowM3PerS:      gallonsPerHourToCubicMetersPerSecond(total),
		ParasiticLossW:          parasitic,
		TankRadiusM:             radius,
		TankSurfaceAreaM2:       area,
		PeakFlowGalPerHour:      event.Peak.Value,
		TotalPeakFlowGalPerHour: total,
		ExposureFraction:        exposure,
		NextHourIncluded:        nextIncluded,
		PeakEvent:               event,
	}, nil
}
