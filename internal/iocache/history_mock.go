package iocache

import (
	"time"

	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/huangsam/tpmplot/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, chartName string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, chartName, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordSeries implements the HistoryStore interface.
func (m *MockHistoryStore) RecordSeries(runID int64, index int, summary schema.SeriesSummary) error {
	args := m.Called(runID, index, summary)
	return args.Error(0)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, outputPath string, totalSeries int) error {
	args := m.Called(runID, endTime, outputPath, totalSeries)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.HistoryRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.HistoryRunRecord)
	return runs, args.Error(1)
}

// GetAllSeries implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllSeries() ([]schema.HistorySeriesRecord, error) {
	args := m.Called()
	series, _ := args.Get(0).([]schema.HistorySeriesRecord)
	return series, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
