// Package contract provides interfaces and shared utilities for the tpmplot CLI's internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/tpmplot/schema"
)

// HistoryManager defines the interface for accessing the run history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking plot runs and their per-series summaries.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, chartName string, configParams map[string]any) (int64, error)

	// RecordSeries stores the summary of the series at position index in the run
	RecordSeries(runID int64, index int, summary schema.SeriesSummary) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, outputPath string, totalSeries int) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run
	GetAllRuns() ([]schema.HistoryRunRecord, error)

	// GetAllSeries returns every recorded series row
	GetAllSeries() ([]schema.HistorySeriesRecord, error)

	// Close closes the underlying connection
	Close() error
}
