// Package iocache persists analysis results and run history.
package iocache

import (
	"fmt"
	"sync"

	"teamlens/internal/contract"
)

// CacheStoreManager manages the result and history store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	result       contract.ResultStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetResultStore returns the last-analysis ResultStore.
func (mgr *CacheStoreManager) GetResultStore() contract.ResultStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.result
}

// GetHistoryStore returns the run HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}

// closeAll closes both stores and detaches them, returning the first close
// error encountered.
func (mgr *CacheStoreManager) closeAll() error {
	mgr.Lock()
	defer mgr.Unlock()

	var closeErr error
	if mgr.result != nil {
		if err := mgr.result.Close(); err != nil {
			closeErr = fmt.Errorf("failed to close result store: %w", err)
		}
		mgr.result = nil
	}
	if mgr.history != nil {
		if err := mgr.history.Close(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to close history store: %w", err)
		}
		mgr.history = nil
	}
	return closeErr
}
