package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/huangsam/tpmplot/internal/parquet"
)

// ExportHistory writes the run history of the global store to two Parquet files
// named after outputFile and reports progress to w.
func ExportHistory(w io.Writer, outputFile string) error {
	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("run history is not initialized")
	}
	_, _, err := exportHistory(w, store, outputFile)
	return err
}

// exportHistory writes every run and series of store and returns the two file paths.
func exportHistory(w io.Writer, store contract.HistoryStore, outputFile string) (string, string, error) {
	if outputFile == "" {
		return "", "", errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return "", "", fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return "", "", errors.New("no run history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total series records: %d\n", status.TableSizes[seriesTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return "", "", fmt.Errorf("failed to retrieve runs: %w", err)
	}
	series, err := store.GetAllSeries()
	if err != nil {
		return "", "", fmt.Errorf("failed to retrieve series: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	parquetRuns := parquet.ConvertHistoryRunRecords(runs)
	if err := parquet.WriteHistoryRunsParquet(parquetRuns, runsFile); err != nil {
		return "", "", fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	seriesFile := outputFile + ".series.parquet"
	parquetSeries := parquet.ConvertHistorySeriesRecords(series)
	if err := parquet.WriteHistorySeriesParquet(parquetSeries, seriesFile); err != nil {
		return "", "", fmt.Errorf("failed to write series: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d series records to: %s\n", len(parquetSeries), seriesFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with:")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - DuckDB")
	_, _ = fmt.Fprintln(w, "  - Any other Parquet-compatible tool")

	return runsFile, seriesFile, nil
}
