package walk

import (
	"errors"
	"fmt"

	"github.com/san-kum/walksim/internal/dist"
)

// ErrInvalidParameter indicates parameters that cannot produce a trajectory.
var ErrInvalidParameter = errors.New("walk: invalid parameter")

// SamplingError wraps a sampler failure with the step it happened at.
type SamplingError struct {
	Step    int
	Kind    dist.Kind
	Wrapped error
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("walk: step %d (%s): %v", e.Step, e.Kind, e.Wrapped)
}

func (e *SamplingError) Unwrap() error {
	return e.Wrapped
}
