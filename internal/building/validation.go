package building

import (
	"fmt"
	"math"
	"strings"
)

const maxNameLength = 200

// Validate checks the document for structural problems and reports all of
// them at once.
//
// Spaces without surfaces are accepted here; they only fail pump sizing.
func (b *Building) Validate() error {
	var errs []string

	name := strings.TrimSpace(b.Name)
	switch {
	case name == "":
		errs = append(errs, "name is required")
	case len(name) > maxNameLength:
		errs = append(errs, fmt.Sprintf("name exceeds %d characters", maxNameLength))
	case strings.ContainsAny(name, `/\`):
		errs = append(errs, "name must not contain path separators")
	case name == "." || name == "..":
		errs = append(errs, "name must not be a relative path element")
	}

	switch b.FuelType {
	case "", FuelElectricity, FuelNaturalGas:
	default:
		errs = append(errs, fmt.Sprintf("unsupported fuel_type %q", b.FuelType))
	}

	if len(b.Spaces) == 0 {
		errs = append(errs, "at least one space is required")
	}

	seen := make(map[string]bool, len(b.Spaces))
	for i, s := range b.Spaces {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Sprintf("spaces[%d]: name is required", i))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Sprintf("spaces[%d]: duplicate space %q", i, s.Name))
		}
		seen[s.Name] = true

		if s.FloorAreaM2 < 0 || !finite(s.FloorAreaM2) {
			errs = append(errs, fmt.Sprintf("spaces[%d]: floor_area_m2 must be a non-negative number", i))
		}
		if s.Multiplier < 0 {
			errs = append(errs, fmt.Sprintf("spaces[%d]: multiplier must not be negative", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidBuilding, strings.Join(errs, "; "))
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
