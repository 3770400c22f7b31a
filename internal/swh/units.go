package swh

// Unit conversion factors.
const (
	btuPerHourPerWatt        = 3.412141633
	gallonsPerCubicMeter     = 264.1720524
	cubicMetersPerGallon     = 0.003785411784
	squareFeetPerSquareMeter = 10.7639104
	wattsPerKPerBtuPerHourF  = 0.5275279
	secondsPerHour           = 3600.0
)

func wattsToBtuPerHour(w float64) float64 { return w * btuPerHourPerWatt }

func gallonsToCubicMeters(gal float64) float64 { return gal * cubicMetersPerGallon }

func cubicMetersToGallons(m3 float64) float64 { return m3 * gallonsPerCubicMeter }

func squareMetersToSquareFeet(m2 float64) float64 { return m2 * squareFeetPerSquareMeter }

// gallonsPerHourToCubicMetersPerSecond converts a flow from US gal/h to m³/s.
func gallonsPerHourToCubicMetersPerSecond(gph float64) float64 {
	return gph * cubicMetersPerGallon / secondsPerHour
}

func fahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }
