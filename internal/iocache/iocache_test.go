package iocache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore records calls for loadSource tests.
type mockStore struct {
	data     map[string][]byte
	version  int
	getErr   error
	setErr   error
	getCalls int
	setCalls int
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte), version: CacheVersion}
}

func (m *mockStore) Get(key string) ([]byte, int, int64, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, 0, 0, m.getErr
	}
	data, ok := m.data[key]
	if !ok {
		return nil, 0, 0, sql.ErrNoRows
	}
	return data, m.version, time.Now().Unix(), nil
}

func (m *mockStore) Set(key string, value []byte, _ int, _ int64) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockStore) GetStatus() (schema.CacheStatus, error) {
	return schema.CacheStatus{}, nil
}

func (m *mockStore) Close() error { return nil }

// withStore swaps the global store for the duration of a test.
func withStore(t *testing.T, s *mockStore) {
	t.Helper()
	prev := Store()
	SetStore(s)
	t.Cleanup(func() { SetStore(prev) })
}

func writeSourceFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,amount\n2024-01-01,10\n"), 0o644))
	return path
}

func TestLoadSourcesWithoutStore(t *testing.T) {
	prev := Store()
	SetStore(nil)
	t.Cleanup(func() { SetStore(prev) })

	path := writeSourceFile(t)
	sources, err := LoadSources([]string{path})
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "ledger.csv", sources[0].Name)
}

// TestLoadSourceMissThenHit: the first load parses and populates the cache,
// the second is served from it.
func TestLoadSourceMissThenHit(t *testing.T) {
	mock := newMockStore()
	withStore(t, mock)

	path := writeSourceFile(t)

	first, err := loadSource(path)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.setCalls)

	second, err := loadSource(path)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.setCalls, "hit must not rewrite the entry")
	assert.Equal(t, first.Header, second.Header)
	assert.Equal(t, first.Rows, second.Rows)
}

// TestLoadSourceStaleVersion: an entry with an old cache version is treated
// as a miss and refreshed.
func TestLoadSourceStaleVersion(t *testing.T) {
	mock := newMockStore()
	mock.version = CacheVersion - 1
	withStore(t, mock)

	path := writeSourceFile(t)
	key, err := sourceFingerprint(path)
	require.NoError(t, err)
	stale, _ := json.Marshal(&core.Source{Name: "stale"})
	mock.data[key] = stale

	src, err := loadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "ledger.csv", src.Name)
	assert.Equal(t, 1, mock.setCalls)
}

// TestLoadSourceCacheFailureDegrades: store errors fall back to parsing the
// file directly.
func TestLoadSourceCacheFailureDegrades(t *testing.T) {
	mock := newMockStore()
	mock.getErr = errors.New("backend down")
	mock.setErr = errors.New("backend down")
	withStore(t, mock)

	path := writeSourceFile(t)
	src, err := loadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "ledger.csv", src.Name)
}

func TestLoadSourcesMissingFile(t *testing.T) {
	mock := newMockStore()
	withStore(t, mock)

	_, err := LoadSources([]string{filepath.Join(t.TempDir(), "absent.csv")})
	assert.Error(t, err)
}

func TestSourceFingerprintChangesOnEdit(t *testing.T) {
	path := writeSourceFile(t)
	before, err := sourceFingerprint(path)
	require.NoError(t, err)

	// Force a different mtime and size.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("date,amount\n2024-01-01,10\n2024-01-02,20\n"), 0o644))

	after, err := sourceFingerprint(path)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestClearCacheSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, ClearCache(schema.SQLiteBackend, path, ""))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-missing file is not an error.
	require.NoError(t, ClearCache(schema.SQLiteBackend, path, ""))
}

func TestClearCacheNone(t *testing.T) {
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
}

func TestClearCacheUnknownBackend(t *testing.T) {
	assert.Error(t, ClearCache(schema.DatabaseBackend("redis"), "", ""))
}
