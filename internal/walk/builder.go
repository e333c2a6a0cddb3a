package walk

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/walksim/internal/dist"
)

// Sampler is what the builder needs from a distribution: one draw per call
// and the analytic mean used for the reference curve.
type Sampler interface {
	Sample(kind dist.Kind) (int, error)
	Mean(kind dist.Kind) float64
}

// Builder turns parameters into a complete trajectory in one pass.
type Builder struct {
	sampler Sampler
	mode    Mode
}

func NewBuilder(sampler Sampler, mode Mode) *Builder {
	return &Builder{sampler: sampler, mode: mode}
}

func (b *Builder) Mode() Mode { return b.mode }

// WithMode returns a builder sharing the sampler but presenting mode.
func (b *Builder) WithMode(mode Mode) *Builder {
	return &Builder{sampler: b.sampler, mode: mode}
}

// Build draws params.Steps samples and returns the full trajectory. A
// sampler error aborts this build only and is returned as a *SamplingError.
func (b *Builder) Build(ctx context.Context, params Params) (*Trajectory, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if b.mode != Cumulative && b.mode != Average {
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidParameter, int(b.mode))
	}

	a := b.sampler.Mean(params.Kind)
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return nil, fmt.Errorf("%w: no mean for %s", ErrInvalidParameter, params.Kind)
	}

	n := params.Steps
	traj := &Trajectory{
		Params: params,
		Mode:   b.mode,
		Mean:   a,
		Points: make([]Point, n+1),
	}

	switch b.mode {
	case Cumulative:
		traj.Points[0] = Point{Step: 0, Statistic: 0, Reference: 0}
	case Average:
		traj.Points[0] = Point{Step: 0, Statistic: a, Reference: a}
	}

	sum := 0.0
	for i := 1; i <= n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		x, err := b.sampler.Sample(params.Kind)
		if err != nil {
			if !errors.Is(err, dist.ErrSamplingFailure) {
				err = fmt.Errorf("%w: %w", dist.ErrSamplingFailure, err)
			}
			return nil, &SamplingError{Step: i, Kind: params.Kind, Wrapped: err}
		}
		sum += float64(x)

		p := Point{Step: i}
		switch b.mode {
		case Cumulative:
			p.Statistic = sum
			p.Reference = a * float64(i)
		case Average:
			p.Statistic = sum / float64(i)
			p.Reference = a
		}
		traj.Points[i] = p
	}

	return traj, nil
}
