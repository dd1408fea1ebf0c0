package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"teamlens/internal/contract"
	"teamlens/internal/iocache"
	"teamlens/schema"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the result store only (no history tracking for cache commands)
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on result cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by analysis commands. This avoids Git repo validation
// and complex config processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persisted analysis result cache",
	Long: `Manage the per-repository last-analysis slot.

Teamlens stores the most recent analysis per repository so that follow-up
commands (experts, files, export) can reuse it instead of re-running.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached results

Examples:
  # Check cache status
  teamlens cache status

  # Clear cached results after a history rewrite
  teamlens cache clear`,
}

// cacheClearCmd clears the result cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached analysis results",
	Long: `Delete all persisted analysis results from the configured backend.

Use this when:
- Repository history was rewritten (rebase, force push)
- Cached results may be stale
- Switching models or prompt settings

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  teamlens cache clear

  # Clear MySQL cache (set connection string via env variable)
  TEAMLENS_CACHE_BACKEND=mysql TEAMLENS_CACHE_DB_CONNECT="..." teamlens cache clear`,
	PreRunE: cacheSetupWrapper,
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
	Long: `Show detailed information about the analysis result cache.

Displays:
- Backend type and connection status
- Total number of cached repositories
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  teamlens cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetResultStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
