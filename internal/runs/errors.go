package runs

import "errors"

var (
	// ErrRunNotFound is returned when a run ID does not exist.
	ErrRunNotFound = errors.New("sizing run not found")

	// ErrRunFinished is returned when completing a run that already ended.
	ErrRunFinished = errors.New("sizing run already finished")
)
