package schema

import "time"

// HistoryRunRecord represents a row from the tpmplot_runs table.
type HistoryRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	ChartName     string
	OutputPath    *string
	TotalSeries   int32
	ConfigParams  *string
}

// HistorySeriesRecord represents a row from the tpmplot_series table.
type HistorySeriesRecord struct {
	RunID           int64
	SeriesIndex     int32
	Label           string
	FilePath        string
	SeriesKey       string
	RawSamples      int32
	PlottedSamples  int32
	DurationMinutes float64
	PeakTPM         int32
	MeanTPM         float64
	StopReason      string
}

// NewHistorySeriesRecord converts a summary into a store row for the given run.
// index is the series position in the run's input order.
func NewHistorySeriesRecord(runID int64, index int, s SeriesSummary) HistorySeriesRecord {
	return HistorySeriesRecord{
		RunID:           runID,
		SeriesIndex:     int32(index),
		Label:           s.Label,
		FilePath:        s.Path,
		SeriesKey:       s.Key,
		RawSamples:      int32(s.RawSamples),
		PlottedSamples:  int32(s.PlottedSamples),
		DurationMinutes: s.DurationMinutes,
		PeakTPM:         int32(s.PeakTPM),
		MeanTPM:         s.MeanTPM,
		StopReason:      string(s.StopReason),
	}
}
