package swh

import "errors"

// Sizing errors.
var (
	// ErrData indicates missing or malformed input: an unknown or short
	// schedule, a building with no demand, a space with no surfaces.
	ErrData = errors.New("invalid sizing data")

	// ErrDomain indicates a numeric input outside the domain of a formula.
	ErrDomain = errors.New("value outside valid domain")
)

// Warning is a recoverable condition encountered during sizing. The
// documented fallback has already been applied when a Warning is recorded.
type Warning struct {
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Subject == "" {
		return w.Message
	}
	return w.Subject + ": " + w.Message
}
