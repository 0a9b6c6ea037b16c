// Package iocache caches parsed spreadsheet sources between CLI runs.
// Persistence lives entirely in this presentation layer; the engine in core
// never touches it.
package iocache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/schema"
)

// ingestTable is the name of the table for parsed-source caching.
const ingestTable = "ingest_cache"

// CacheVersion invalidates older entries when the Source encoding changes.
const CacheVersion = 1

// Global store instance for the CLI.
var (
	store     contract.CacheStore
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitCache initializes the global ingest cache. An empty backend disables
// caching entirely.
func InitCache(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		if backend == "" {
			return
		}
		s, err := NewCacheStore(ingestTable, backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize ingest cache: %w", err)
			return
		}
		store = s
	})
	return initErr
}

// CloseCache should be called on application shutdown.
func CloseCache() {
	closeOnce.Do(func() {
		if store != nil {
			_ = store.Close()
		}
	})
}

// Store returns the global cache store, or nil when caching is disabled.
func Store() contract.CacheStore {
	return store
}

// SetStore swaps the global store. Tests use this to inject mocks.
func SetStore(s contract.CacheStore) {
	store = s
}

// ClearCache clears the cache for the specified backend. For SQLite it
// deletes the database file; for server backends it drops the table.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			dbFilePath = contract.GetCacheDBFilePath()
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropTable("mysql", connStr)

	case schema.PostgreSQLBackend:
		return dropTable("pgx", connStr)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend: %s", backend)
	}
}

func dropTable(driver, connStr string) error {
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect for cache clear: %w", err)
	}
	defer func() { _ = db.Close() }()
	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", ingestTable)); err != nil {
		return fmt.Errorf("failed to drop cache table: %w", err)
	}
	return nil
}

// sourceFingerprint builds the cache key for a source file from its path,
// size and modification time, so edits invalidate naturally.
func sourceFingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
	return hex.EncodeToString(h.Sum(nil)), nil
}

// LoadSources reads every source path, consulting the ingest cache first.
// A cache miss or a stale entry falls back to parsing the file and refreshes
// the entry. Cache failures degrade to direct parsing with a warning; they
// never fail the analysis.
func LoadSources(paths []string) ([]*core.Source, error) {
	sources := make([]*core.Source, 0, len(paths))
	for _, path := range paths {
		src, err := loadSource(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func loadSource(path string) (*core.Source, error) {
	if store == nil {
		return core.ReadSource(path)
	}

	key, err := sourceFingerprint(path)
	if err != nil {
		return nil, err
	}

	if data, version, _, err := store.Get(key); err == nil && version == CacheVersion {
		var src core.Source
		if err := json.Unmarshal(data, &src); err == nil {
			return &src, nil
		}
		// Corrupt entry: fall through and overwrite it.
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		contract.LogWarn("Ingest cache read failed", err)
	}

	src, err := core.ReadSource(path)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(src); err == nil {
		if err := store.Set(key, data, CacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Ingest cache write failed", err)
		}
	}
	return src, nil
}
