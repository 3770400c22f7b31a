package swh

import (
	"fmt"
	"math"
	"slices"

	"github.com/nerrad567/gray-logic-swh/internal/building"
)

// SpaceGeometry is the piping geometry of one space.
type SpaceGeometry struct {
	Space          string         `json:"space"`
	Centroid       building.Point `json:"centroid"`
	PeakFlowM3PerS float64        `json:"peak_flow_m3_per_s"`

	// CenterDistanceM is the planar distance to the building centroid,
	// rounded to 0.1 m.
	CenterDistanceM float64 `json:"center_distance_m"`

	// PipingDistance holds the per-axis distance to the central space.
	// It stays zero for spaces without demand.
	PipingDistance building.Point `json:"piping_distance"`
}

// runLength is the Manhattan piping run from the central space.
func (g SpaceGeometry) runLength() float64 {
	return g.PipingDistance.X + g.PipingDistance.Y + g.PipingDistance.Z
}

// PumpSizing is the distribution pump head and motor efficiency. The
// diagnostic fields are only set when the head was computed.
type PumpSizing struct {
	HeadPa          float64 `json:"head_pa"`
	MotorEfficiency float64 `json:"motor_efficiency"`
	AutoSized       bool    `json:"auto_sized"`

	CentralSpace    string          `json:"central_space,omitempty"`
	SizingSpace     string          `json:"sizing_space,omitempty"`
	PipeLengthM     float64         `json:"pipe_length_m,omitempty"`
	ElevationRiseM  float64         `json:"elevation_rise_m,omitempty"`
	VelocityMPerS   float64         `json:"velocity_m_per_s,omitempty"`
	Reynolds        float64         `json:"reynolds,omitempty"`
	FrictionFactor  float64         `json:"friction_factor,omitempty"`
	TotalFlowM3PerS float64         `json:"total_flow_m3_per_s,omitempty"`
	Spaces          []SpaceGeometry `json:"spaces,omitempty"`
}

// FixedPump returns the default constant-speed pump.
func FixedPump(opts Options) PumpSizing {
	return PumpSizing{HeadPa: opts.FixedPumpHeadPa, MotorEfficiency: opts.FixedPumpMotorEfficiency}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SpaceGeometries locates every space of b for piping estimation.
//
// Each space is placed at the centroid of its lowest surface (by centroid z
// plus origin z), offset by the space origin. Spaces are visited in name
// order. Peak flows come from the survey; spaces missing from it have none.
//
// Returns ErrData if a space has no surfaces.
func SpaceGeometries(b *building.Building, survey Survey) ([]SpaceGeometry, error) {
	spaces := sortedSpaces(b.Spaces)
	out := make([]SpaceGeometry, 0, len(spaces))

	for _, space := range spaces {
		if len(space.Surfaces) == 0 {
			return nil, fmt.Errorf("%w: space %s has no surfaces", ErrData, space.Name)
		}
		lowest := space.Surfaces[0]
		for _, s := range space.Surfaces[1:] {
			if s.Centroid.Z+space.Origin.Z < lowest.Centroid.Z+space.Origin.Z {
				lowest = s
			}
		}
		flow, _ := survey.PeakFlow(space.Name)
		out = append(out, SpaceGeometry{
			Space:          space.Name,
			Centroid:       lowest.Centroid.Add(space.Origin),
			PeakFlowM3PerS: flow,
		})
	}
	return out, nil
}

// SizePump estimates the distribution pump head from building geometry.
//
// The building centroid is the mean planar centroid of all spaces,
// including those without demand. The central space is the one closest to
// it (distances rounded to 0.1 m), the lowest when several tie. The sizing
// run is the demand space with the greatest Manhattan distance from the
// central space. Head is the Darcy-Weisbach major loss f·(L/D)·v² plus the
// run's vertical rise; the velocity term is not halved, to allow for
// fittings the run ignores.
//
// Parameters:
//   - geoms: Space geometry from SpaceGeometries
//   - totalFlow: Building peak flow in m³/s
//   - opts: Pipe parameters and fixed pump fallback
//
// Returns:
//   - PumpSizing: Computed head with diagnostics; Spaces is a copy of geoms
//     with CenterDistanceM and PipingDistance filled in, geoms is not modified
//   - error: ErrData for no spaces or zero flow, ErrDomain from FrictionFactor
func SizePump(geoms []SpaceGeometry, totalFlow float64, opts Options) (PumpSizing, error) {
	if len(geoms) == 0 {
		return PumpSizing{}, fmt.Errorf("%w: no spaces to size pump for", ErrData)
	}
	if totalFlow <= 0 {
		return PumpSizing{}, fmt.Errorf("%w: building peak flow is zero", ErrData)
	}
	geoms = slices.Clone(geoms)

	var cx, cy float64
	for _, g := range geoms {
		cx += g.Centroid.X
		cy += g.Centroid.Y
	}
	n := float64(len(geoms))
	cx /= n
	cy /= n

	minDist := math.Inf(1)
	for i := range geoms {
		dx := geoms[i].Centroid.X - cx
		dy := geoms[i].Centroid.Y - cy
		geoms[i].CenterDistanceM = round1(math.Sqrt(dx*dx + dy*dy))
		if geoms[i].CenterDistanceM <= minDist {
			minDist = geoms[i].CenterDistanceM
		}
	}

	central := -1
	for i, g := range geoms {
		if g.CenterDistanceM != minDist {
			continue
		}
		if central < 0 || g.Centroid.Z < geoms[central].Centroid.Z {
			central = i
		}
	}
	c := geoms[central].Centroid

	for i, g := range geoms {
		if g.PeakFlowM3PerS <= 0 {
			continue
		}
		geoms[i].PipingDistance = building.Point{
			X: math.Abs(g.Centroid.X - c.X),
			Y: math.Abs(g.Centroid.Y - c.Y),
			Z: math.Abs(g.Centroid.Z - c.Z),
		}
	}

	run := 0
	for i := range geoms[1:] {
		if geoms[i+1].runLength() > geoms[run].runLength() {
			run = i + 1
		}
	}
	length := geoms[run].runLength()

	d := opts.Pipe.DiameterM
	velocity := 4 * totalFlow / (math.Pi * d * d)
	re := velocity * d / opts.Pipe.KinematicViscosity
	f, err := FrictionFactor(re, opts.Pipe.RoughnessM/d)
	if err != nil {
		return PumpSizing{}, err
	}
	rise := geoms[run].PipingDistance.Z
	head := f*(length/d)*velocity*velocity + rise

	return PumpSizing{
		HeadPa:          head,
		MotorEfficiency: opts.FixedPumpMotorEfficiency,
		AutoSized:       true,
		CentralSpace:    geoms[central].Space,
		SizingSpace:     geoms[run].Space,
		PipeLengthM:     length,
		ElevationRiseM:  rise,
		VelocityMPerS:   velocity,
		Reynolds:        re,
		FrictionFactor:  f,
		TotalFlowM3PerS: totalFlow,
		Spaces:          geoms,
	}, nil
}
