package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan(t *testing.T) {
	tests := []struct {
		name    string
		degrees []float64
		want    float64
	}{
		{
			name:    "all equal",
			degrees: []float64{120, 120, 120, 120, 120, 120, 120, 120},
			want:    0,
		},
		{
			name:    "evenly spread",
			degrees: []float64{0, 45, 90, 135, 180, 225, 270, 315},
			want:    315,
		},
		{
			name:    "tight cluster",
			degrees: []float64{10, 12, 11, 10.5, 13, 12.5, 11.5, 10.2},
			want:    3,
		},
		{
			name:    "cluster straddling the wrap boundary",
			degrees: []float64{358, 359, 0, 1, 2, 357.5, 0.5, 1.5},
			want:    4.5,
		},
		{
			name:    "single offset ring",
			degrees: []float64{0, 0, 0, 0, 0, 0, 0, 11.25},
			want:    11.25,
		},
		{
			name:    "empty",
			degrees: nil,
			want:    0,
		},
		{
			name:    "single angle",
			degrees: []float64{42},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Span(tt.degrees), 1e-9)
		})
	}
}

func TestEvaluator_Aligned(t *testing.T) {
	evaluator := NewEvaluator(11.25)

	tests := []struct {
		name    string
		degrees []float64
		want    bool
	}{
		{
			name:    "all equal",
			degrees: []float64{90, 90, 90, 90, 90, 90, 90, 90},
			want:    true,
		},
		{
			name:    "evenly spread",
			degrees: []float64{0, 45, 90, 135, 180, 225, 270, 315},
			want:    false,
		},
		{
			name:    "offset exactly at tolerance",
			degrees: []float64{0, 0, 0, 0, 0, 0, 0, 11.25},
			want:    true,
		},
		{
			name:    "offset just beyond tolerance",
			degrees: []float64{0, 0, 0, 0, 0, 0, 0, 11.26},
			want:    false,
		},
		{
			name:    "cluster straddling the wrap boundary",
			degrees: []float64{357, 358, 359, 0, 1, 2, 3, 4},
			want:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluator.Aligned(tt.degrees))
		})
	}
}
