// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/huangsam/tpmplot/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummaries prints per-series summaries using the configured output format.
func (ow *OutWriter) WriteSummaries(summaries []schema.SeriesSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryResults(summaries, cfg, duration)
}

// WritePoints prints the plotted samples of every series using the configured output format.
func (ow *OutWriter) WritePoints(series []schema.PlotSeries, cfg *contract.Config, duration time.Duration) error {
	return WritePointResults(schema.FlattenPoints(series), cfg, duration)
}

// GetMaxTablePathWidth calculates the maximum width for file paths in table output
// based on terminal width and the fixed columns of the summary table.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Label + Raw + Plotted + Minutes + Peak + Mean + Stop with borders/padding
	baseWidth := 75

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
