package alignment

import (
	"sort"

	"github.com/ringlock-game/ringlock/pkg/angles"
)

// Span returns the width in degrees of the smallest arc containing every
// angle, computed as 360 minus the largest gap between consecutive sorted
// angles (the wrap-around gap from the largest angle back to the smallest
// included). An empty or single-element input has span 0.
func Span(degrees []float64) float64 {
	if len(degrees) < 2 {
		return 0
	}

	sorted := make([]float64, len(degrees))
	for i, d := range degrees {
		sorted[i] = angles.Normalize(d)
	}
	sort.Float64s(sorted)

	largestGap := sorted[0] + angles.FullTurn - sorted[len(sorted)-1]
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i] - sorted[i-1]
		if gap > largestGap {
			largestGap = gap
		}
	}

	return angles.FullTurn - largestGap
}

// Evaluator answers whether a set of ring angles counts as aligned.
// It has no state beyond the tolerance, so it can be consulted mid-gesture,
// after a shuffle, or between solver steps.
type Evaluator struct {
	// Tolerance is the maximum covering span in degrees that still
	// counts as a win.
	Tolerance float64
}

// NewEvaluator creates an Evaluator with the given span tolerance in degrees.
func NewEvaluator(tolerance float64) *Evaluator {
	return &Evaluator{
		Tolerance: tolerance,
	}
}

// Aligned reports whether all angles fit within the tolerance arc.
func (e *Evaluator) Aligned(degrees []float64) bool {
	return Span(degrees) <= e.Tolerance
}
