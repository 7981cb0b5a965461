// Package schema holds the data types shared by the tpmplot pipeline, its outputs and its stores.
package schema

// RawSeries maps a timestamp string to the throughput value exactly as decoded from JSON.
// Values are float64, string, bool, nil, []any or map[string]any.
type RawSeries map[string]any

// LoadedSeries is a RawSeries together with where it came from.
type LoadedSeries struct {
	Path string    // Input file path
	Key  string    // Top-level key the series was found under (e.g. "MySQL tpm")
	Raw  RawSeries // Series exactly as stored in the file
}

// NormalizedSeries holds two index-aligned, chronologically ordered sequences.
// ElapsedMinutes starts at 0.0 and never decreases.
type NormalizedSeries struct {
	ElapsedMinutes []float64 `json:"elapsed_minutes"`
	Throughput     []int     `json:"throughput"`
}

// Len returns the number of samples in the series.
func (s NormalizedSeries) Len() int {
	return len(s.ElapsedMinutes)
}

// Prefix returns the first n samples of the series.
func (s NormalizedSeries) Prefix(n int) NormalizedSeries {
	n = max(0, min(n, s.Len()))
	return NormalizedSeries{
		ElapsedMinutes: s.ElapsedMinutes[:n:n],
		Throughput:     s.Throughput[:n:n],
	}
}

// TruncatedSeries is a prefix of a NormalizedSeries and the reason the prefix ended.
type TruncatedSeries struct {
	NormalizedSeries
	Reason StopReason `json:"stop_reason"`
}

// PlotSeries is one fully processed input file, ready to be drawn or written out.
type PlotSeries struct {
	Label     string          `json:"label"`
	Path      string          `json:"path"`
	Key       string          `json:"key"`
	RawCount  int             `json:"raw_samples"`
	Truncated TruncatedSeries `json:"series"`
}

// SeriesSummary condenses a PlotSeries into a single row.
type SeriesSummary struct {
	Label           string     `json:"label"`
	Path            string     `json:"path"`
	Key             string     `json:"key"`
	RawSamples      int        `json:"raw_samples"`
	PlottedSamples  int        `json:"plotted_samples"`
	DurationMinutes float64    `json:"duration_minutes"`
	PeakTPM         int        `json:"peak_tpm"`
	MeanTPM         float64    `json:"mean_tpm"`
	StopReason      StopReason `json:"stop_reason"`
}

// PointRecord is one plotted sample in long format.
type PointRecord struct {
	Label          string  `json:"label"`
	Path           string  `json:"path"`
	Index          int     `json:"index"`
	ElapsedMinutes float64 `json:"elapsed_minutes"`
	TPM            int     `json:"tpm"`
}
