package iocache

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamlens/schema"
)

func TestCloseAllPropagatesStoreErrors(t *testing.T) {
	result := &MockResultStore{}
	result.On("Close").Return(errors.New("database is locked"))
	history := &MockHistoryStore{}
	history.On("Close").Return(nil)

	mgr := &CacheStoreManager{result: result, history: history}

	err := mgr.closeAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "result store")
	result.AssertExpectations(t)
	history.AssertExpectations(t)

	// Stores are detached after closing, so a second pass is a no-op.
	assert.NoError(t, mgr.closeAll())
}

func TestCloseAllEmptyManager(t *testing.T) {
	assert.NoError(t, (&CacheStoreManager{}).closeAll())
}

func TestGlobalStoreLifecycle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitStores(
		schema.SQLiteBackend, filepath.Join(dir, "cache.db"),
		schema.SQLiteBackend, filepath.Join(dir, "history.db"),
	))

	assert.NotNil(t, Manager.GetResultStore())
	assert.NotNil(t, Manager.GetHistoryStore())

	require.NoError(t, CloseStores())
	assert.NoError(t, CloseStores()) // shutdown is idempotent
}
