package building

import "github.com/nerrad567/gray-logic-swh/internal/zonehvac"

// Fuel types recognised for service water heating.
const (
	FuelElectricity = "Electricity"
	FuelNaturalGas  = "NaturalGas"
)

// Point is a coordinate in metres.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns p offset by o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Surface is a space boundary surface. Only its centroid, relative to the
// owning space origin, is used for sizing.
type Surface struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Centroid Point  `json:"centroid" yaml:"centroid"`
}

// Space is one modelled space.
type Space struct {
	Name string `json:"name" yaml:"name"`

	// BuildingType overrides the building-level type for standards lookup.
	BuildingType string `json:"building_type,omitempty" yaml:"building_type,omitempty"`
	SpaceType    string `json:"space_type" yaml:"space_type"`

	FloorAreaM2 float64 `json:"floor_area_m2" yaml:"floor_area_m2"`

	// Multiplier counts identical copies of the space. Zero is treated as 1.
	Multiplier int `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`

	Origin   Point     `json:"origin" yaml:"origin"`
	Surfaces []Surface `json:"surfaces" yaml:"surfaces"`
}

// EffectiveMultiplier returns the space multiplier, defaulting to 1.
func (s Space) EffectiveMultiplier() int {
	if s.Multiplier <= 0 {
		return 1
	}
	return s.Multiplier
}

// Building is the document sized by one SWH run.
type Building struct {
	Name         string `json:"name" yaml:"name"`
	BuildingType string `json:"building_type" yaml:"building_type"`

	// FuelType selects the water heater fuel. Empty means the configured default.
	FuelType string `json:"fuel_type,omitempty" yaml:"fuel_type,omitempty"`

	Spaces        []Space              `json:"spaces" yaml:"spaces"`
	ZoneEquipment []zonehvac.Component `json:"zone_equipment,omitempty" yaml:"zone_equipment,omitempty"`
}

// StandardsSpaceType returns the "<building type> <space type>" name used to
// look a space up in the standards tables, or "" if the space has no type.
func (b *Building) StandardsSpaceType(s Space) string {
	if s.SpaceType == "" {
		return ""
	}
	bt := s.BuildingType
	if bt == "" {
		bt = b.BuildingType
	}
	return bt + " " + s.SpaceType
}
