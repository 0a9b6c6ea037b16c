package cmd

import (
	"fmt"

	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/internal/iocache"
	"github.com/spf13/cobra"
)

// cacheCmd focused on ingest cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the spreadsheet ingest cache (improves performance)",
	Long: `Manage the ingest cache that speeds up repeated analyses.

FinSight caches parsed spreadsheet contents keyed by file fingerprint,
so unchanged exports are never re-parsed. Editing a source file
invalidates its entry automatically.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  finsight cache status

  # Clear cache after upgrading
  finsight cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached spreadsheet data",
	Long: `Delete all cached spreadsheet data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  finsight cache clear

  # Clear MySQL cache (set connection string via env variable)
  FINSIGHT_CACHE_BACKEND=mysql FINSIGHT_CACHE_DB_CONNECT="..." finsight cache clear`,
	PreRunE: bareSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the ingest cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  finsight cache status`,
	PreRunE: bareSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Store().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
