package practicum

import "github.com/pkg/errors"

// Failure kinds reported by the status API client. Wrapped errors keep the kind
// reachable through errors.Is.
var (
	ErrConnection    = errors.New("endpoint unavailable")
	ErrPayload       = errors.New("unexpected API response")
	ErrUnknownStatus = errors.New("unknown homework status")
)
