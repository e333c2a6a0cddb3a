package dist

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	// ZetaTerms is the number of terms kept when approximating ζ(s).
	ZetaTerms = 999

	// MaxSearchSteps caps the cumulative-probability search. A draw that
	// needs more terms than this is reported as ErrSamplingFailure.
	MaxSearchSteps = 50_000_000
)

// Source supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source; seed 0 picks the wall clock.
func NewSeededSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Zeta approximates the Riemann zeta function by its first ZetaTerms terms.
func Zeta(s float64) float64 {
	sum := 0.0
	for k := 1; k <= ZetaTerms; k++ {
		sum += 1 / math.Pow(float64(k), s)
	}
	return sum
}

var (
	zeta3 = Zeta(3)

	// normalizers of the two zeta laws
	zetaThreeC = 1 / zeta3
	zetaTwoC   = 6 / (math.Pi * math.Pi)
)

// Mean returns the analytic mean of kind. The zeta laws are symmetric in
// sign parity, so their mean is c·η(s-1) where η is the alternating zeta:
// η(2) = π²/12 and η(1) = ln 2. The same value is used for the cumulative
// slope and for the running-average level.
func Mean(kind Kind) float64 {
	switch kind {
	case Constant:
		return 1
	case Binary:
		return 5.0 / 2
	case ZetaThree:
		return zetaThreeC * math.Pi * math.Pi / 12
	case ZetaTwo:
		return zetaTwoC * math.Ln2
	default:
		return math.NaN()
	}
}

// Sampler draws integer samples from the laws in this package.
// It is not safe for concurrent use when its Source is not.
type Sampler struct {
	src      Source
	maxSteps int
}

func NewSampler(src Source) *Sampler {
	if src == nil {
		src = NewSeededSource(0)
	}
	return &Sampler{src: src, maxSteps: MaxSearchSteps}
}

func (s *Sampler) Mean(kind Kind) float64 { return Mean(kind) }

func (s *Sampler) Sample(kind Kind) (int, error) {
	switch kind {
	case Constant:
		return 1, nil
	case Binary:
		if s.src.Float64() > 0.5 {
			return 10, nil
		}
		return -5, nil
	case ZetaThree:
		return s.searchSigned(zetaThreeC, 3)
	case ZetaTwo:
		return s.searchSigned(zetaTwoC, 2)
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

// searchSigned inverts the CDF of P(k) = c/k^exp, k >= 1, starting from
// p = P(1), k = 1, then returns +k for odd k and -k for even k.
func (s *Sampler) searchSigned(c, exp float64) (int, error) {
	u := s.src.Float64()
	p := c
	k := 1
	for u > p {
		if k >= s.maxSteps {
			return 0, fmt.Errorf("%w: no k <= %d reaches u=%v", ErrSamplingFailure, s.maxSteps, u)
		}
		k++
		next := p + c/math.Pow(float64(k), exp)
		if next == p {
			return 0, fmt.Errorf("%w: cumulative probability stalled at %v below u=%v", ErrSamplingFailure, p, u)
		}
		p = next
	}
	if k%2 == 0 {
		return -k, nil
	}
	return k, nil
}

// Probability returns P(|X| = k) for the zeta laws and the point masses of
// the two simple laws; used to check that the sampled support is normalized.
func Probability(kind Kind, k int) float64 {
	switch kind {
	case Constant:
		if k == 1 {
			return 1
		}
	case Binary:
		if k == 10 || k == 5 {
			return 0.5
		}
	case ZetaThree:
		if k >= 1 {
			return zetaThreeC / math.Pow(float64(k), 3)
		}
	case ZetaTwo:
		if k >= 1 {
			return zetaTwoC / math.Pow(float64(k), 2)
		}
	}
	return 0
}
