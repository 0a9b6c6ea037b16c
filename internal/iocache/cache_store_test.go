package iocache

import (
	"path/filepath"
	"testing"

	"github.com/finsight/finsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *CacheStoreImpl {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore("test_cache", schema.SQLiteBackend, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*CacheStoreImpl)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Set("key1", []byte("value1"), CacheVersion, 1700000000))

	value, version, ts, err := store.Get("key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), value)
	assert.Equal(t, CacheVersion, version)
	assert.Equal(t, int64(1700000000), ts)
}

func TestSQLiteStoreUpsert(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Set("key1", []byte("old"), 1, 100))
	require.NoError(t, store.Set("key1", []byte("new"), 2, 200))

	value, version, _, err := store.Get("key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 2, version)
}

func TestSQLiteStoreMissingKey(t *testing.T) {
	store := newSQLiteStore(t)
	_, _, _, err := store.Get("absent")
	assert.Error(t, err)
}

func TestSQLiteStoreStatus(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalEntries)

	require.NoError(t, store.Set("a", []byte("1"), CacheVersion, 100))
	require.NoError(t, store.Set("b", []byte("2"), CacheVersion, 200))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalEntries)
	assert.Equal(t, int64(200), status.LastEntryTime.Unix())
	assert.Equal(t, int64(100), status.OldestEntryTime.Unix())
}

func TestNoneStoreIsNoOp(t *testing.T) {
	store, err := NewCacheStore("test_cache", schema.NoneBackend, "")
	require.NoError(t, err)

	require.NoError(t, store.Set("key", []byte("value"), CacheVersion, 1))
	_, _, _, err = store.Get("key")
	assert.Error(t, err, "a disabled store never reports hits")

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	require.NoError(t, store.Close())
}

func TestNewCacheStoreInvalidTableName(t *testing.T) {
	_, err := NewCacheStore("bad; DROP TABLE", schema.SQLiteBackend, "")
	assert.Error(t, err)
}

func TestNewCacheStoreUnsupportedBackend(t *testing.T) {
	_, err := NewCacheStore("test_cache", schema.DatabaseBackend("redis"), "")
	assert.Error(t, err)
}
