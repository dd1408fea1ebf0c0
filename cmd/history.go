package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"teamlens/internal/contract"
	"teamlens/internal/iocache"
	"teamlens/internal/outwriter"
	"teamlens/internal/parquet"
	"teamlens/schema"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need run history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as SQLite so history commands work out of the box
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by list/export commands)
	cfg.ResultLimit = viper.GetInt("limit")
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = contract.DefaultResultLimit
	}
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")
	cfg.UseColors = false

	// Initialize the history store only (no result caching for history commands)
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage historical analysis runs and exports",
	Long: `Manage the record of past analysis runs.

Every analysis run is tracked with:
- Start and end timestamps
- Repository path and configuration
- Size tier, strategy taken, and expert count

This enables trend tracking and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show completed runs
  status  - Show tracking statistics
  export  - Export runs to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Show the last runs
  teamlens history list

  # Export for analysis in pandas/DuckDB
  teamlens history export --output-file runs.parquet`,
}

// historyListCmd lists completed runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show completed analysis runs, newest first",
	Long: `List completed analysis runs with their duration, repository,
size tier, strategy and expert count.

Examples:
  # Show the last 25 runs
  teamlens history list

  # Machine-readable output
  teamlens history list --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := iocache.Manager.GetHistoryStore().ListRuns(cfg.ResultLimit)
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		if err := outwriter.NewOutWriter().WriteHistory(runs, cfg); err != nil {
			contract.LogFatal("Failed to write run history", err)
		}
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(status)
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical run data",
	Long: `Delete all stored analysis runs.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  teamlens history export --output-file backup.parquet
  teamlens history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyExportCmd exports run history to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all completed runs to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all runs
  teamlens history export --output-file runs.parquet

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Failed to export run history", contract.NewValidationError("export requires --output-file"))
		}
		runs, err := iocache.Manager.GetHistoryStore().ListRuns(contract.MaxResultLimit)
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		if err := parquet.WriteRunsParquet(runs, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
		fmt.Printf("Exported %d runs to %s\n", len(runs), cfg.OutputFile)
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  teamlens history migrate

  # Rollback to initial state
  teamlens history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println("Migrations applied successfully.")
	},
}
