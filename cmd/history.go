package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/internal/history"
	"github.com/rncdiscover/rnc/schema"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without a project path.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyStoreSetup also opens the store. It is not used by migrate, so
// migrations can run on a fresh database.
func historyStoreSetup(cmd *cobra.Command, args []string) error {
	if err := historySetup(cmd, args); err != nil {
		return err
	}
	if err := history.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}
	return nil
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the discovery run history and exports",
	Long: `Manage the history of discovery runs.

When a history backend is configured, every 'rnc discover' run stores:
- Run metadata (project, timestamps, duration)
- Per-run totals (entities, business components, pages, classes)
- One row per class with its public and business-rule method counts

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show run history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history data
  migrate - Run database schema migrations`,
}

// historyStatusCmd shows run history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show the backend, the number of recorded runs, the newest and oldest run
and the row count of every history table.

Examples:
  rnc history status --history-backend sqlite
  rnc history status --history-backend sqlite --output status.txt`,
	PreRunE: historyStoreSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		defer history.CloseHistory()
		store := history.Manager.GetStore()
		if store == nil {
			return fmt.Errorf("run history is not initialized")
		}
		status, err := store.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get history status: %w", err)
		}
		outputPath, _ := cmd.Flags().GetString("output")
		out, err := contract.SelectOutputFile(outputPath)
		if err != nil {
			return fmt.Errorf("failed to open status output: %w", err)
		}
		if out != os.Stdout {
			defer func() { _ = out.Close() }()
		}
		history.PrintStatus(out, status)
		return nil
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded discovery runs",
	Long: `Delete all stored runs and class metrics.

For SQLite the database file is removed; for MySQL and PostgreSQL the
history tables are dropped.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  rnc history export --output-file backup
  rnc history clear`,
	PreRunE: historySetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		dbFile := cfg.HistoryDBConnect
		if dbFile == "" {
			dbFile = contract.GetHistoryDBFilePath()
		}
		if err := history.Clear(cfg.HistoryBackend, dbFile, cfg.HistoryDBConnect); err != nil {
			return fmt.Errorf("failed to clear run history: %w", err)
		}
		fmt.Println("Run history cleared successfully.")
		return nil
	},
}

// historyExportCmd exports the run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run history to Parquet for BI tools and analytics",
	Long: `Export all stored runs to Parquet.

Writes two files next to the given prefix:
- <prefix>.discovery_runs.parquet - one row per discovery run
- <prefix>.class_metrics.parquet  - one row per recorded class

Requires: --output-file

Examples:
  rnc history export --output-file rnc-history
  duckdb -c "SELECT * FROM read_parquet('rnc-history.class_metrics.parquet') LIMIT 10"`,
	PreRunE: historyStoreSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		defer history.CloseHistory()
		return history.ExportParquet(history.Manager.GetStore(), viper.GetString("output-file"), os.Stdout)
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the run history database.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  rnc history migrate --history-backend postgresql --history-db-connect "host=db dbname=rnc"

  # Rollback to initial state
  rnc history migrate --target-version 0`,
	PreRunE: historySetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("target-version"), os.Stdout)
	},
}
