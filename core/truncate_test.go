package core

import (
	"testing"

	"github.com/huangsam/tpmplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(minutes []float64, tpm []int) schema.NormalizedSeries {
	return schema.NormalizedSeries{ElapsedMinutes: minutes, Throughput: tpm}
}

func TestTruncateSeries(t *testing.T) {
	scenario := series([]float64{0, 1, 2, 3}, []int{5, 0, 0, 7})

	tests := []struct {
		name       string
		in         schema.NormalizedSeries
		opts       TruncateOptions
		wantMin    []float64
		wantTPM    []int
		wantReason schema.StopReason
	}{
		{
			name:       "zero streak stops before second zero",
			in:         scenario,
			opts:       DefaultTruncateOptions(),
			wantMin:    []float64{0, 1},
			wantTPM:    []int{5, 0},
			wantReason: schema.StopZeroStreak,
		},
		{
			name:       "time cap reached first",
			in:         scenario,
			opts:       TruncateOptions{MaxZeroStreak: 2, MaxElapsedMinutes: 1},
			wantMin:    []float64{0, 1},
			wantTPM:    []int{5, 0},
			wantReason: schema.StopTimeCap,
		},
		{
			name:       "all zeros keeps the first sample",
			in:         series([]float64{0, 1, 2}, []int{0, 0, 0}),
			opts:       DefaultTruncateOptions(),
			wantMin:    []float64{0},
			wantTPM:    []int{0},
			wantReason: schema.StopZeroStreak,
		},
		{
			name:       "no cutoff",
			in:         series([]float64{0, 1, 2}, []int{3, 0, 4}),
			opts:       DefaultTruncateOptions(),
			wantMin:    []float64{0, 1, 2},
			wantTPM:    []int{3, 0, 4},
			wantReason: schema.StopEnd,
		},
		{
			name:       "streak resets on non-zero",
			in:         series([]float64{0, 1, 2, 3, 4}, []int{1, 0, 2, 0, 0}),
			opts:       DefaultTruncateOptions(),
			wantMin:    []float64{0, 1, 2, 3},
			wantTPM:    []int{1, 0, 2, 0},
			wantReason: schema.StopZeroStreak,
		},
		{
			name:       "cap equal to elapsed keeps the sample",
			in:         series([]float64{0, 0.5, 1}, []int{1, 2, 3}),
			opts:       TruncateOptions{MaxZeroStreak: 2, MaxElapsedMinutes: 1},
			wantMin:    []float64{0, 0.5, 1},
			wantTPM:    []int{1, 2, 3},
			wantReason: schema.StopEnd,
		},
		{
			name:       "zero cap keeps only the start",
			in:         series([]float64{0, 1}, []int{1, 2}),
			opts:       TruncateOptions{MaxZeroStreak: 2, MaxElapsedMinutes: 0},
			wantMin:    []float64{0},
			wantTPM:    []int{1},
			wantReason: schema.StopTimeCap,
		},
		{
			name:       "streak below one acts as one",
			in:         series([]float64{0, 1}, []int{4, 0}),
			opts:       TruncateOptions{MaxZeroStreak: 0, MaxElapsedMinutes: -1},
			wantMin:    []float64{0},
			wantTPM:    []int{4},
			wantReason: schema.StopZeroStreak,
		},
		{
			name:       "empty input",
			in:         series(nil, nil),
			opts:       DefaultTruncateOptions(),
			wantMin:    []float64{},
			wantTPM:    []int{},
			wantReason: schema.StopEnd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateSeries(tt.in, tt.opts)
			assert.Equal(t, tt.wantReason, got.Reason)
			if len(tt.wantMin) == 0 {
				assert.Zero(t, got.Len())
				return
			}
			assert.Equal(t, tt.wantMin, got.ElapsedMinutes)
			assert.Equal(t, tt.wantTPM, got.Throughput)
		})
	}
}

func TestTruncateSeriesProperties(t *testing.T) {
	inputs := []schema.NormalizedSeries{
		series([]float64{0, 1, 2, 3}, []int{5, 0, 0, 7}),
		series([]float64{0, 1, 2}, []int{0, 0, 0}),
		series([]float64{0, 4, 8, 12, 16, 20}, []int{9, 8, 7, 6, 5, 4}),
	}
	optsList := []TruncateOptions{
		DefaultTruncateOptions(),
		{MaxZeroStreak: 1, MaxElapsedMinutes: -1},
		{MaxZeroStreak: 3, MaxElapsedMinutes: 16},
	}

	for _, in := range inputs {
		for _, opts := range optsList {
			once := TruncateSeries(in, opts)
			twice := TruncateSeries(once.NormalizedSeries, opts)

			require.Equal(t, len(once.ElapsedMinutes), len(once.Throughput))
			assert.LessOrEqual(t, once.Len(), in.Len(), "truncation never lengthens")
			assert.Equal(t, once.ElapsedMinutes, twice.ElapsedMinutes, "idempotent minutes")
			assert.Equal(t, once.Throughput, twice.Throughput, "idempotent throughput")
			assert.Equal(t, in.ElapsedMinutes[:once.Len()], once.ElapsedMinutes, "result is a prefix")
		}
	}
}

func TestTruncateDoesNotAliasInput(t *testing.T) {
	in := series([]float64{0, 1, 2}, []int{1, 0, 0})
	got := TruncateSeries(in, DefaultTruncateOptions())
	got.Throughput = append(got.Throughput, 99)
	assert.Equal(t, []int{1, 0, 0}, in.Throughput)
}

func TestTruncateOptionsCapped(t *testing.T) {
	assert.False(t, DefaultTruncateOptions().Capped())
	assert.True(t, TruncateOptions{MaxElapsedMinutes: 0}.Capped())
	assert.True(t, TruncateOptions{MaxElapsedMinutes: 16}.Capped())
}
