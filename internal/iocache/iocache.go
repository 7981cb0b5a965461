// Package iocache is for persisting run history across invocations.
package iocache

import (
	"sync"

	"github.com/huangsam/tpmplot/internal/contract"
)

// HistoryStoreManager owns the run history store for the process.
type HistoryStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	history      contract.HistoryStore
}

var _ contract.HistoryManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the run history store, or nil when history is not initialized.
func (mgr *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
