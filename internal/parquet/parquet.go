// Package parquet provides data structures and functions for exporting tpmplot
// series, points and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/tpmplot/schema"
	"github.com/parquet-go/parquet-go"
)

// HistoryRun represents a single plot run with metadata.
// This struct maps to the tpmplot_runs database table.
type HistoryRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// ChartName is the output name of the chart
	ChartName string `parquet:"chart_name,snappy"`

	// OutputPath is the rendered image path (nullable until the run ends)
	OutputPath *string `parquet:"output_path,optional,snappy"`

	// TotalSeries is the number of series drawn
	TotalSeries int32 `parquet:"total_series,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// HistorySeries represents the summary of one series drawn in a run.
// This struct maps to the tpmplot_series database table.
type HistorySeries struct {
	RunID           int64   `parquet:"run_id,snappy"`
	SeriesIndex     int32   `parquet:"series_index,snappy"`
	Label           string  `parquet:"label,snappy"`
	FilePath        string  `parquet:"file_path,snappy"`
	SeriesKey       string  `parquet:"series_key,snappy"`
	RawSamples      int32   `parquet:"raw_samples,snappy"`
	PlottedSamples  int32   `parquet:"plotted_samples,snappy"`
	DurationMinutes float64 `parquet:"duration_minutes,snappy"`
	PeakTPM         int32   `parquet:"peak_tpm,snappy"`
	MeanTPM         float64 `parquet:"mean_tpm,snappy"`
	StopReason      string  `parquet:"stop_reason,snappy"`
}

// SummaryRow is one row of `tpmplot summary --output parquet`.
type SummaryRow struct {
	Label           string  `parquet:"label,snappy"`
	Path            string  `parquet:"path,snappy"`
	Key             string  `parquet:"key,snappy"`
	RawSamples      int32   `parquet:"raw_samples,snappy"`
	PlottedSamples  int32   `parquet:"plotted_samples,snappy"`
	DurationMinutes float64 `parquet:"duration_minutes,snappy"`
	PeakTPM         int32   `parquet:"peak_tpm,snappy"`
	MeanTPM         float64 `parquet:"mean_tpm,snappy"`
	StopReason      string  `parquet:"stop_reason,snappy"`
}

// PointRow is one row of `tpmplot points --output parquet`.
type PointRow struct {
	Label          string  `parquet:"label,snappy,dict"`
	Path           string  `parquet:"path,snappy,dict"`
	Index          int32   `parquet:"index,snappy"`
	ElapsedMinutes float64 `parquet:"elapsed_minutes,snappy"`
	TPM            int32   `parquet:"tpm,snappy"`
}

// WriteRows writes rows to w as a single Parquet file. The schema is derived from T's struct tags.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows to it.
func writeFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteRows(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteHistoryRunsParquet writes a slice of HistoryRun structs to a Parquet file.
func WriteHistoryRunsParquet(data []HistoryRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteHistorySeriesParquet writes a slice of HistorySeries structs to a Parquet file.
func WriteHistorySeriesParquet(data []HistorySeries, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertHistoryRunRecords converts schema.HistoryRunRecord to HistoryRun for Parquet export.
func ConvertHistoryRunRecords(records []schema.HistoryRunRecord) []HistoryRun {
	result := make([]HistoryRun, len(records))
	for i, record := range records {
		result[i] = HistoryRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			ChartName:     record.ChartName,
			OutputPath:    record.OutputPath,
			TotalSeries:   record.TotalSeries,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertHistorySeriesRecords converts schema.HistorySeriesRecord to HistorySeries for Parquet export.
func ConvertHistorySeriesRecords(records []schema.HistorySeriesRecord) []HistorySeries {
	result := make([]HistorySeries, len(records))
	for i, r := range records {
		result[i] = HistorySeries{
			RunID:           r.RunID,
			SeriesIndex:     r.SeriesIndex,
			Label:           r.Label,
			FilePath:        r.FilePath,
			SeriesKey:       r.SeriesKey,
			RawSamples:      r.RawSamples,
			PlottedSamples:  r.PlottedSamples,
			DurationMinutes: r.DurationMinutes,
			PeakTPM:         r.PeakTPM,
			MeanTPM:         r.MeanTPM,
			StopReason:      r.StopReason,
		}
	}
	return result
}

// ConvertSummaries converts series summaries to Parquet rows.
func ConvertSummaries(summaries []schema.SeriesSummary) []SummaryRow {
	result := make([]SummaryRow, len(summaries))
	for i, s := range summaries {
		result[i] = SummaryRow{
			Label:           s.Label,
			Path:            s.Path,
			Key:             s.Key,
			RawSamples:      int32(s.RawSamples),
			PlottedSamples:  int32(s.PlottedSamples),
			DurationMinutes: s.DurationMinutes,
			PeakTPM:         int32(s.PeakTPM),
			MeanTPM:         s.MeanTPM,
			StopReason:      string(s.StopReason),
		}
	}
	return result
}

// ConvertPoints converts long-format points to Parquet rows.
func ConvertPoints(points []schema.PointRecord) []PointRow {
	result := make([]PointRow, len(points))
	for i, p := range points {
		result[i] = PointRow{
			Label:          p.Label,
			Path:           p.Path,
			Index:          int32(p.Index),
			ElapsedMinutes: p.ElapsedMinutes,
			TPM:            int32(p.TPM),
		}
	}
	return result
}

// MockFetchHistoryRuns generates sample HistoryRun data for demonstration.
func MockFetchHistoryRuns() []HistoryRun {
	now := time.Now()
	start1 := now.Add(-2 * time.Hour)
	end1 := start1.Add(1500 * time.Millisecond)
	duration1 := int32(end1.Sub(start1).Milliseconds())
	output1 := "graphs/testA_my_comparison.png"
	params1 := `{"zero_streak":2,"time_cap":16,"label_by":"vu"}`

	start2 := now.Add(-24 * time.Hour)
	end2 := start2.Add(900 * time.Millisecond)
	duration2 := int32(end2.Sub(start2).Milliseconds())
	output2 := "graphs/between_db.png"
	params2 := `{"zero_streak":2,"time_cap":-1,"label_by":"engine"}`

	return []HistoryRun{
		{
			RunID:         1,
			StartTime:     start1,
			EndTime:       &end1,
			RunDurationMs: &duration1,
			ChartName:     "testA_my_comparison",
			OutputPath:    &output1,
			TotalSeries:   5,
			ConfigParams:  &params1,
		},
		{
			RunID:         2,
			StartTime:     start2,
			EndTime:       &end2,
			RunDurationMs: &duration2,
			ChartName:     "between_db",
			OutputPath:    &output2,
			TotalSeries:   2,
			ConfigParams:  &params2,
		},
		{
			RunID:     3,
			StartTime: now.Add(-time.Minute),
			ChartName: "interrupted",
			// EndTime, RunDurationMs, OutputPath and ConfigParams stay nil for a run that never finished
		},
	}
}

// MockFetchHistorySeries generates sample HistorySeries data for demonstration.
func MockFetchHistorySeries() []HistorySeries {
	return []HistorySeries{
		{RunID: 1, Label: "1Vu", FilePath: "results/testA_my_1Vu_5Wh.json", SeriesKey: "MySQL tpm", RawSamples: 20, PlottedSamples: 16, DurationMinutes: 15, PeakTPM: 1830, MeanTPM: 1642.5, StopReason: "time-cap"},
		{RunID: 1, SeriesIndex: 1, Label: "10Vu", FilePath: "results/testA_my_10Vu_50Wh.json", SeriesKey: "MySQL tpm", RawSamples: 19, PlottedSamples: 14, DurationMinutes: 13, PeakTPM: 9120, MeanTPM: 8011.25, StopReason: "zero-streak"},
		{RunID: 2, Label: "PostgreSQL", FilePath: "results/pg.json", SeriesKey: "PostgreSQL tpm", RawSamples: 12, PlottedSamples: 12, DurationMinutes: 11, PeakTPM: 4410, MeanTPM: 3977, StopReason: "end"},
	}
}
