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

var pointsHeader = []string{"label", "path", "index", "elapsed_minutes", "tpm"}

// WritePointResults outputs the long-format points, dispatching based on the output format configured.
func WritePointResults(points []schema.PointRecord, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			// Keep "[]" rather than "null" for an empty result.
			if points == nil {
				points = []schema.PointRecord{}
			}
			return writeJSON(w, points)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePointsCSV(w, points)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetRows(cfg.OutputFile, parquet.ConvertPoints(points)); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePointsTable(w, points, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writePointsTable writes one table row per plotted sample.
func writePointsTable(w io.Writer, points []schema.PointRecord, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Label", "Index", "Minutes", "TPM"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range points {
		data = append(data, []string{
			p.Label,
			strconv.Itoa(p.Index),
			fmtFloat(p.ElapsedMinutes),
			fmt.Sprintf(intFmt, p.TPM),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d points. Processed in %v with %d workers\n", len(points), duration, cfg.Workers)
	return err
}

// writePointsCSV writes the points in CSV format with full minute precision.
func writePointsCSV(w io.Writer, points []schema.PointRecord) error {
	return writeCSVWithHeader(w, pointsHeader, func(cw *csv.Writer) error {
		for _, p := range points {
			rec := []string{
				p.Label,
				p.Path,
				strconv.Itoa(p.Index),
				formatMinutes(p.ElapsedMinutes),
				strconv.Itoa(p.TPM),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
