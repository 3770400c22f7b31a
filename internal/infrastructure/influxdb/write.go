package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/gray-logic-swh/internal/standards"
	"github.com/nerrad567/gray-logic-swh/internal/swh"
)

// Measurement names.
const (
	MeasurementDemand = "swh_demand"
	MeasurementSizing = "swh_sizing"
)

// WriteDemandProfile writes the 72 hourly demand values of a building, one
// point per day type and hour. The write is non-blocking.
//
// Parameters:
//   - building: Building name, used as the "building" tag
//   - profile: Aggregated demand profile in gal/h
func (c *Client) WriteDemandProfile(building string, profile *swh.Profile) {
	if !c.IsConnected() || profile == nil {
		return
	}
	for _, p := range demandPoints(building, profile, c.timestamp()) {
		c.writeAPI.WritePoint(p)
	}
}

// WriteSizing writes the headline numbers of one sizing result.
// The write is non-blocking.
func (c *Client) WriteSizing(result *swh.Result) {
	if !c.IsConnected() || result == nil {
		return
	}
	c.writeAPI.WritePoint(sizingPoint(result, c.timestamp()))
}

func (c *Client) timestamp() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func demandPoints(building string, profile *swh.Profile, ts time.Time) []*write.Point {
	points := make([]*write.Point, 0, len(standards.DayTypes())*standards.HoursPerDay)
	for _, day := range standards.DayTypes() {
		for hour, flow := range profile.Day(day) {
			points = append(points, write.NewPoint(
				MeasurementDemand,
				map[string]string{
					"building": building,
					"day_type": day.String(),
					"hour":     strconv.Itoa(hour),
				},
				map[string]interface{}{
					"flow_gal_per_hour": flow,
				},
				ts,
			))
		}
	}
	return points
}

func sizingPoint(r *swh.Result, ts time.Time) *write.Point {
	return write.NewPoint(
		MeasurementSizing,
		map[string]string{
			"building":      r.Building,
			"building_type": r.BuildingType,
			"fuel_type":     r.Heater.FuelType,
		},
		map[string]interface{}{
			"volume_m3":          r.Tank.VolumeM3,
			"volume_gal":         r.Tank.VolumeGal,
			"capacity_w":         r.Tank.CapacityW,
			"peak_flow_gph":      r.Tank.PeakFlowGalPerHour,
			"total_peak_gph":     r.Tank.TotalPeakFlowGalPerHour,
			"exposure_fraction":  r.Tank.ExposureFraction,
			"parasitic_loss_w":   r.Tank.ParasiticLossW,
			"pump_head_pa":       r.Pump.HeadPa,
			"pump_auto_sized":    r.Pump.AutoSized,
			"energy_factor":      r.Heater.EnergyFactor,
			"thermal_efficiency": r.Heater.ThermalEfficiency,
			"warnings":           len(r.Warnings),
		},
		ts,
	)
}
