package standards

import "errors"

var (
	// ErrInvalidTable is returned when a standards document fails validation.
	ErrInvalidTable = errors.New("standards: invalid table")

	// ErrUnknownDayType is returned when a schedule names a day type that is
	// not Default|Wkdy, Sat, or Sun|Hol.
	ErrUnknownDayType = errors.New("standards: unknown day type")

	// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("standards: unsupported file format")
)
