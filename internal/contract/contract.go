// Package contract provides the validated configuration and shared utilities
// for the finsight CLI layers.
package contract

import "github.com/finsight/finsight/schema"

// CacheStore defines the interface for ingest cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
