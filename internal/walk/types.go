package walk

import (
	"fmt"
	"strings"

	"github.com/san-kum/walksim/internal/dist"
)

const (
	// MaxSteps bounds the step count accepted at the boundary.
	MaxSteps = 1_000_000
)

// Mode selects which running statistic a trajectory presents.
type Mode int

const (
	// Cumulative presents the partial sums S_i against a·i.
	Cumulative Mode = iota
	// Average presents S_i / i against the constant a.
	Average
)

func (m Mode) String() string {
	switch m {
	case Cumulative:
		return "cumulative"
	case Average:
		return "average"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cumulative", "sum", "walk":
		return Cumulative, nil
	case "average", "avg", "mean", "running-average":
		return Average, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Params are the simulation parameters. Any change to them invalidates the
// trajectory built from the previous value.
type Params struct {
	Kind  dist.Kind
	Steps int
}

func (p Params) Validate() error {
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, dist.ErrUnknownKind)
	}
	if p.Steps < 1 {
		return fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalidParameter, p.Steps)
	}
	if p.Steps > MaxSteps {
		return fmt.Errorf("%w: steps must be at most %d, got %d", ErrInvalidParameter, MaxSteps, p.Steps)
	}
	return nil
}

// ClampSteps coerces a user supplied step count into [1, MaxSteps].
func ClampSteps(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxSteps {
		return MaxSteps
	}
	return n
}

// Point is one step of a trajectory.
type Point struct {
	Step      int     `json:"step"`
	Statistic float64 `json:"statistic"`
	Reference float64 `json:"reference"`
}

// Trajectory is an immutable sample path with its reference curve.
// Points holds N+1 entries, Points[i].Step == i.
type Trajectory struct {
	Params Params
	Mode   Mode
	Mean   float64
	Points []Point
}

// Steps returns N, the index of the last point.
func (t *Trajectory) Steps() int { return len(t.Points) - 1 }

// Prefix returns Points[0..cursor] with its capacity capped so callers
// cannot append into the shared backing array.
func (t *Trajectory) Prefix(cursor int) []Point {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > t.Steps() {
		cursor = t.Steps()
	}
	return t.Points[: cursor+1 : cursor+1]
}

// Statistics returns the sample statistic series.
func (t *Trajectory) Statistics() []float64 {
	out := make([]float64, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Statistic
	}
	return out
}

// References returns the reference series.
func (t *Trajectory) References() []float64 {
	out := make([]float64, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Reference
	}
	return out
}
