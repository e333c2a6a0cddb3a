package walk

import "math"

// Summary compares one sample path with its reference curve.
type Summary struct {
	Steps          int     `json:"steps"`
	FinalStatistic float64 `json:"final_statistic"`
	FinalReference float64 `json:"final_reference"`
	FinalDeviation float64 `json:"final_deviation"`
	MaxDeviation   float64 `json:"max_deviation"`
	MaxDeviationAt int     `json:"max_deviation_at"`
}

// Summarize reports on the prefix up to cursor; pass t.Steps() for the whole path.
func Summarize(t *Trajectory, cursor int) Summary {
	pts := t.Prefix(cursor)
	last := pts[len(pts)-1]

	s := Summary{
		Steps:          last.Step,
		FinalStatistic: last.Statistic,
		FinalReference: last.Reference,
		FinalDeviation: last.Statistic - last.Reference,
	}
	for _, p := range pts {
		if d := math.Abs(p.Statistic - p.Reference); d > s.MaxDeviation {
			s.MaxDeviation = d
			s.MaxDeviationAt = p.Step
		}
	}
	return s
}
