package swh

import (
	"sort"

	"github.com/nerrad567/gray-logic-swh/internal/building"
)

// sortedSpaces returns a copy of spaces ordered by name.
func sortedSpaces(spaces []building.Space) []building.Space {
	out := make([]building.Space, len(spaces))
	copy(out, spaces)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
