package iocache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/tpmplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	impl, ok := store.(*HistoryStoreImpl)
	require.True(t, ok)
	return impl
}

func sampleSummary(label, path string, reason schema.StopReason) schema.SeriesSummary {
	return schema.SeriesSummary{
		Label:           label,
		Path:            path,
		Key:             label + " tpm",
		RawSamples:      30,
		PlottedSamples:  24,
		DurationMinutes: 23,
		PeakTPM:         61000,
		MeanTPM:         48211.5,
		StopReason:      reason,
	}
}

func TestHistoryStoreRunLifecycle(t *testing.T) {
	store := newMemoryStore(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	runID, err := store.BeginRun(start, "tpm_comparison", map[string]any{"zero_streak": 2, "files": []string{"a.json"}})
	require.NoError(t, err)
	assert.Positive(t, runID)

	require.NoError(t, store.RecordSeries(runID, 0, sampleSummary("MySQL", "results/my.json", schema.StopZeroStreak)))
	require.NoError(t, store.RecordSeries(runID, 1, sampleSummary("PostgreSQL", "results/pg.json", schema.StopEnd)))
	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), "graphs/tpm_comparison.png", 2))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, start.Add(1500*time.Millisecond).Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, "tpm_comparison", run.ChartName)
	require.NotNil(t, run.OutputPath)
	assert.Equal(t, "graphs/tpm_comparison.png", *run.OutputPath)
	assert.Equal(t, int32(2), run.TotalSeries)

	require.NotNil(t, run.ConfigParams)
	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &params))
	assert.Equal(t, float64(2), params["zero_streak"])

	series, err := store.GetAllSeries()
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, schema.NewHistorySeriesRecord(runID, 0, sampleSummary("MySQL", "results/my.json", schema.StopZeroStreak)), series[0])
	assert.Equal(t, "end", series[1].StopReason)
}

func TestHistoryStoreUnfinishedRun(t *testing.T) {
	store := newMemoryStore(t)

	_, err := store.BeginRun(time.Now(), "open", nil)
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Nil(t, runs[0].OutputPath)
	assert.Zero(t, runs[0].TotalSeries)
}

func TestHistoryStoreEndUnknownRun(t *testing.T) {
	store := newMemoryStore(t)
	err := store.EndRun(42, time.Now(), "x.png", 1)
	assert.Error(t, err)
}

func TestHistoryStoreDuplicateSeries(t *testing.T) {
	store := newMemoryStore(t)
	runID, err := store.BeginRun(time.Now(), "dup", nil)
	require.NoError(t, err)

	// The same file plotted twice yields two rows.
	s := sampleSummary("MySQL", "a.json", schema.StopEnd)
	require.NoError(t, store.RecordSeries(runID, 0, s))
	require.NoError(t, store.RecordSeries(runID, 1, s))
	require.NoError(t, store.EndRun(runID, time.Now(), "dup.png", 2))

	series, err := store.GetAllSeries()
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, int32(0), series[0].SeriesIndex)
	assert.Equal(t, int32(1), series[1].SeriesIndex)
	assert.Equal(t, series[0].FilePath, series[1].FilePath)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalSeries)

	assert.Error(t, store.RecordSeries(runID, 1, s), "same index in one run")
}

func TestHistoryStoreStatus(t *testing.T) {
	store := newMemoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)
	assert.Equal(t, map[string]int64{runsTable: 0, seriesTable: 0}, status.TableSizes)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		runID, err := store.BeginRun(first.Add(time.Duration(i)*time.Hour), "chart", nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordSeries(runID, 0, sampleSummary("MySQL", "a.json", schema.StopEnd)))
		require.NoError(t, store.EndRun(runID, first.Add(time.Duration(i)*time.Hour+time.Second), "chart.png", 1))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, int64(3), status.LastRunID)
	assert.True(t, first.Add(2*time.Hour).Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, 3, status.TotalSeries)
	assert.Equal(t, int64(3), status.TableSizes[seriesTable])
}

func TestNoneBackendStore(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), "chart", nil)
	require.NoError(t, err)
	assert.Zero(t, runID)
	assert.NoError(t, store.RecordSeries(runID, 0, schema.SeriesSummary{}))
	assert.NoError(t, store.EndRun(runID, time.Now(), "", 0))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)
	series, err := store.GetAllSeries()
	assert.NoError(t, err)
	assert.Nil(t, series)
	assert.NoError(t, store.Close())
}

func TestNewHistoryStoreUnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore("oracle", "")
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", placeholders(schema.SQLiteBackend, 3))
	assert.Equal(t, "?", placeholders(schema.MySQLBackend, 1))
	assert.Equal(t, "$1, $2", placeholders(schema.PostgreSQLBackend, 2))
	assert.Equal(t, "", placeholders(schema.SQLiteBackend, 0))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"tpmplot_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
	assert.Equal(t, `"tpmplot_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, "`tpmplot_runs`", quoteTableName(runsTable, schema.MySQLBackend))
}

func TestCreateQueriesPerBackend(t *testing.T) {
	assert.Contains(t, getCreateRunsQuery(schema.MySQLBackend), "AUTO_INCREMENT")
	assert.Contains(t, getCreateRunsQuery(schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, getCreateRunsQuery(schema.SQLiteBackend), "AUTOINCREMENT")
	assert.Contains(t, getCreateSeriesQuery(schema.PostgreSQLBackend), "DOUBLE PRECISION")
}
