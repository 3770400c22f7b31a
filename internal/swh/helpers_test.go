package swh

import (
	"math"
	"testing"

	"github.com/nerrad567/gray-logic-swh/internal/building"
	"github.com/nerrad567/gray-logic-swh/internal/standards"
)

// areaFor100GPH is the floor area in m² that yields 100 gal/h at 1 gal/h/ft².
const areaFor100GPH = 100 / squareFeetPerSquareMeter

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func uniformSchedule(name string) []standards.Schedule {
	values := make([]float64, standards.HoursPerDay)
	for i := range values {
		values[i] = 1.0 / 24
	}
	var out []standards.Schedule
	for _, d := range standards.DayTypes() {
		out = append(out, standards.Schedule{Name: name, DayTypes: d.String(), Values: values})
	}
	return out
}

// testTables returns tables with one demand space type ("Office Demand", 1
// gal/h/ft², uniform schedule) and one without demand ("Office Storage").
func testTables(t *testing.T) *standards.Tables {
	t.Helper()
	temp := 60.0
	tables, err := standards.NewTables(standards.Document{
		SpaceTypes: []standards.SpaceType{
			{BuildingType: "Office", SpaceType: "Demand", PeakFlowPerArea: 1, TargetTemperature: &temp, Schedule: "Uniform"},
			{BuildingType: "Office", SpaceType: "Storage"},
			{BuildingType: "Office", SpaceType: "Cold", PeakFlowPerArea: 1, Schedule: "Uniform"},
		},
		Schedules: uniformSchedule("Uniform"),
	})
	if err != nil {
		t.Fatalf("NewTables: %v", err)
	}
	return tables
}

func floorAndRoof(z float64) []building.Surface {
	return []building.Surface{
		{Name: "roof", Centroid: building.Point{Z: z + 3}},
		{Name: "floor", Centroid: building.Point{Z: z}},
	}
}

// singleSpaceBuilding has one 100 gal/h space.
func singleSpaceBuilding() *building.Building {
	return &building.Building{
		Name:         "Single",
		BuildingType: "Office",
		FuelType:     building.FuelNaturalGas,
		Spaces: []building.Space{
			{Name: "Core", SpaceType: "Demand", FloorAreaM2: areaFor100GPH, Surfaces: floorAndRoof(0)},
		},
	}
}

// threeSpaceBuilding has two 100 gal/h spaces 10 m apart and an untyped
// space between them one floor up.
func threeSpaceBuilding() *building.Building {
	return &building.Building{
		Name:         "Three",
		BuildingType: "Office",
		Spaces: []building.Space{
			{Name: "C", Origin: building.Point{X: 5, Z: 3}, Surfaces: floorAndRoof(0)},
			{Name: "B", SpaceType: "Demand", FloorAreaM2: areaFor100GPH, Origin: building.Point{X: 10}, Surfaces: floorAndRoof(0)},
			{Name: "A", SpaceType: "Demand", FloorAreaM2: areaFor100GPH, Surfaces: floorAndRoof(0)},
		},
	}
}
