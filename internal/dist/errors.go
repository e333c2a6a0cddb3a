package dist

import "errors"

var (
	// ErrUnknownKind indicates a distribution selector outside the known set.
	ErrUnknownKind = errors.New("dist: unknown distribution kind")

	// ErrSamplingFailure indicates the cumulative search did not reach the
	// uniform draw within its iteration cap, or stalled in floating point.
	ErrSamplingFailure = errors.New("dist: sampling failed")
)
