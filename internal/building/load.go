package building

import (
	"fmt"
	"os"

	"github.com/nerrad567/gray-logic-swh/internal/standards"
)

// Load reads, decodes and validates a building document.
//
// Parameters:
//   - path: Path to a .json, .yaml or .yml building document
//
// Returns:
//   - *Building: The validated document
//   - error: If the file cannot be read or decoded, or ErrInvalidBuilding
func Load(path string) (*Building, error) {
	format, err := standards.FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading building file: %w", err)
	}

	return Parse(data, format)
}

// Parse decodes and validates a building document held in memory.
func Parse(data []byte, format standards.Format) (*Building, error) {
	var b Building
	if err := standards.Decode(data, format, &b); err != nil {
		return nil, fmt.Errorf("parsing building: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
