package building

import "errors"

// ErrInvalidBuilding is returned when a building document fails validation.
var ErrInvalidBuilding = errors.New("invalid building")
