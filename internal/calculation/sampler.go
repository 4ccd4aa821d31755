package calculation

import "github.com/rpgo/annuity-planner/internal/domain"

// DefaultChartPoints is the sampling budget used when none is given.
const DefaultChartPoints = 150

// SampleOptions tunes SampleForChart.
type SampleOptions struct {
	// IncludeRetirement samples the retirement phase at the same stride and
	// keeps the final point. Off by default: only the accumulation phase and
	// the first retirement point are kept.
	IncludeRetirement bool
}

// SampleForChart reduces points to roughly maxPoints entries for display.
// It keeps the first point, every step-th accumulation point, the last
// accumulation point and the first retirement point. Points are never
// reordered, duplicated or invented. A series with no retirement phase is
// sampled as one accumulation run and keeps its last point.
func SampleForChart(points []domain.WealthDataPoint, maxPoints int, opts SampleOptions) []domain.WealthDataPoint {
	if maxPoints <= 0 {
		maxPoints = DefaultChartPoints
	}
	if len(points) <= maxPoints {
		return points
	}

	step := len(points) / maxPoints
	last := len(points) - 1
	retirement := firstRetirementIndex(points)

	keep := make([]bool, len(points))
	keep[0] = true

	end := retirement
	if retirement < 0 {
		end = len(points)
	}
	for i := step; i < end; i += step {
		keep[i] = true
	}

	if retirement < 0 {
		keep[last] = true
	} else {
		if retirement > 0 {
			keep[retirement-1] = true
		}
		keep[retirement] = true
		if opts.IncludeRetirement {
			for i := retirement + step; i < len(points); i += step {
				keep[i] = true
			}
			keep[last] = true
		}
	}

	out := make([]domain.WealthDataPoint, 0, maxPoints+4)
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

func firstRetirementIndex(points []domain.WealthDataPoint) int {
	for i, p := range points {
		if p.Phase == domain.PhaseRetirement {
			return i
		}
	}
	return -1
}
