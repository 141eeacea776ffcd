package cmd

import (
	"fmt"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/internal/store"
	"github.com/huangsam/atlas/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConfig loads the store settings without the full config validation.
func storeConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// storeSetup loads minimal configuration and opens the store.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := storeConfig(); err != nil {
		return err
	}
	if err := store.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeConfigWrapper loads store settings without opening the store.
func storeConfigWrapper(_ *cobra.Command, _ []string) error {
	return storeConfig()
}

// storeCmd focused on store management.
//
// Note: Store subcommands use minimal initialization instead of the full
// sharedSetup used by analysis commands.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the team data and risk score store",
	Long: `Manage the database that holds confidence votes, metrics, objectives and risk scores.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (nothing is kept)

Subcommands:
  status  - Show row counts and connection info
  clear   - Remove all stored data
  migrate - Run database schema migrations
  export  - Export risk scores to Parquet

Examples:
  atlas store status
  ATLAS_STORE_BACKEND=postgresql ATLAS_STORE_DB_CONNECT="..." atlas store migrate`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, connection state, number of saved risk scores,
newest and oldest score times, and the row count of each table.

Examples:
  atlas store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := store.Manager.GetRiskStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		store.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored team data and risk scores",
	Long: `Delete all data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the atlas tables

Examples:
  atlas store clear
  ATLAS_STORE_BACKEND=mysql ATLAS_STORE_DB_CONNECT="..." atlas store clear`,
	PreRunE: storeConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ClearStore(cfg.StoreBackend, store.ResolveSQLitePath(cfg.StoreDBConnect), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeExportCmd exports risk scores to Parquet.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all risk scores to Parquet for BI tools and analytics",
	Long: `Export every saved risk score of every team to a Parquet file.

Requires: --output-file parameter

Examples:
  atlas store export --output-file risk-scores.parquet
  duckdb -c "SELECT team_id, avg(overall_risk_score) FROM read_parquet('risk-scores.parquet') GROUP BY 1"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ExecuteExport(rootCtx, store.Manager.GetRiskStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export risk scores", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  atlas store migrate

  # Migrate to specific version
  atlas store migrate --target-version 2

  # Rollback all migrations
  atlas store migrate --target-version 0`,
	PreRunE: storeConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
