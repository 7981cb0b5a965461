package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/huangsam/tpmplot/internal/parquet"
	"github.com/huangsam/tpmplot/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// summaryHeader lists the CSV columns of a series summary.
var summaryHeader = []string{
	"label",
	"path",
	"key",
	"raw_samples",
	"plotted_samples",
	"duration_minutes",
	"peak_tpm",
	"mean_tpm",
	"stop_reason",
}

// WriteSummaryResults outputs the series summaries, dispatching based on the output format configured.
func WriteSummaryResults(summaries []schema.SeriesSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaries)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, summaries, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetRows(cfg.OutputFile, parquet.ConvertSummaries(summaries)); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, summaries, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryTable generates and writes the human-readable table.
func writeSummaryTable(w io.Writer, summaries []schema.SeriesSummary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Label", "Path", "Raw", "Plotted", "Minutes", "Peak TPM", "Mean TPM", "Stop"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, s := range summaries {
		stop := contract.GetPlainStopLabel(s.StopReason)
		if cfg.UseColors {
			stop = contract.GetColorStopLabel(s.StopReason)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.Label,
			contract.TruncatePath(s.Path, pathWidth),
			fmt.Sprintf(intFmt, s.RawSamples),
			fmt.Sprintf(intFmt, s.PlottedSamples),
			fmtFloat(s.DurationMinutes),
			fmt.Sprintf(intFmt, s.PeakTPM),
			fmtFloat(s.MeanTPM),
			stop,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	plotted := 0
	for _, s := range summaries {
		plotted += s.PlottedSamples
	}
	if _, err := fmt.Fprintf(w, "Showing %d series (%d plotted samples)\n", len(summaries), plotted); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Processed in %v with %d workers. History backend: %s\n", duration, cfg.Workers, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeSummaryCSV writes the summaries in CSV format.
func writeSummaryCSV(w io.Writer, summaries []schema.SeriesSummary, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, summaryHeader, func(cw *csv.Writer) error {
		for _, s := range summaries {
			rec := []string{
				s.Label,
				s.Path,
				s.Key,
				fmt.Sprintf(intFmt, s.RawSamples),
				fmt.Sprintf(intFmt, s.PlottedSamples),
				fmtFloat(s.DurationMinutes),
				fmt.Sprintf(intFmt, s.PeakTPM),
				fmtFloat(s.MeanTPM),
				contract.GetPlainStopLabel(s.StopReason),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
