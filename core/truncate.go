package core

import "github.com/huangsam/tpmplot/schema"

// Truncation defaults.
const (
	DefaultMaxZeroStreak     = 2
	DefaultMaxElapsedMinutes = -1.0 // no cap
)

// TruncateOptions controls where a series is cut.
type TruncateOptions struct {
	MaxZeroStreak     int     // Consecutive zero samples that end the series; values below 1 act as 1
	MaxElapsedMinutes float64 // Samples after this elapsed minute are dropped; negative disables the cap
}

// DefaultTruncateOptions returns the thresholds used when nothing else is configured.
func DefaultTruncateOptions() TruncateOptions {
	return TruncateOptions{
		MaxZeroStreak:     DefaultMaxZeroStreak,
		MaxElapsedMinutes: DefaultMaxElapsedMinutes,
	}
}

// Capped reports whether an elapsed-minutes ceiling is set.
func (o TruncateOptions) Capped() bool {
	return o.MaxElapsedMinutes >= 0
}

// TruncateSeries keeps the longest prefix of s that precedes the first disqualifying
// sample. A sample disqualifies when its elapsed minute exceeds the cap, or when it
// completes a run of MaxZeroStreak zeros. The disqualifying sample is never kept.
func TruncateSeries(s schema.NormalizedSeries, opts TruncateOptions) schema.TruncatedSeries {
	maxStreak := max(opts.MaxZeroStreak, 1)
	streak := 0
	for i := range s.Len() {
		if opts.Capped() && s.ElapsedMinutes[i] > opts.MaxElapsedMinutes {
			return schema.TruncatedSeries{NormalizedSeries: s.Prefix(i), Reason: schema.StopTimeCap}
		}
		if s.Throughput[i] == 0 {
			streak++
		} else {
			streak = 0
		}
		if streak >= maxStreak {
			return schema.TruncatedSeries{NormalizedSeries: s.Prefix(i), Reason: schema.StopZeroStreak}
		}
	}
	return schema.TruncatedSeries{NormalizedSeries: s.Prefix(s.Len()), Reason: schema.StopEnd}
}
