package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/walksim/internal/walk"
)

const (
	defaultChartWidth  = 70
	defaultChartHeight = 16
)

// ChartOptions controls the size of a plotted prefix.
type ChartOptions struct {
	Width   int
	Height  int
	Caption string
	Color   bool
}

// Chart plots the statistic and reference series of points on one canvas.
func Chart(points []walk.Point, opts ChartOptions) string {
	if len(points) == 0 {
		return ""
	}
	if opts.Width <= 0 {
		opts.Width = defaultChartWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultChartHeight
	}

	stats := make([]float64, len(points))
	refs := make([]float64, len(points))
	for i, p := range points {
		stats[i] = p.Statistic
		refs[i] = p.Reference
	}
	// a single point cannot be interpolated across the width
	if len(points) == 1 {
		stats = append(stats, stats[0])
		refs = append(refs, refs[0])
	}

	graphOpts := []asciigraph.Option{
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Precision(2),
	}
	if opts.Caption != "" {
		graphOpts = append(graphOpts, asciigraph.Caption(opts.Caption))
	}
	if opts.Color {
		graphOpts = append(graphOpts, asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Red))
	}
	return asciigraph.PlotMany([][]float64{stats, refs}, graphOpts...)
}

// Caption names the law, presentation mode and revealed step count.
func Caption(params walk.Params, mode walk.Mode, cursor int) string {
	return fmt.Sprintf("%s %s, step %d/%d", params.Kind.Label(), mode, cursor, params.Steps)
}
