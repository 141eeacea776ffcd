// Package cmd defines the command-line interface for atlas.
package cmd

import (
	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the record subcommands to the parent record command
	recordCmd.AddCommand(recordVoteCmd)
	recordCmd.AddCommand(recordMetricCmd)
	recordCmd.AddCommand(recordObjectiveCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("team", "t", "", "Team identifier")
	rootCmd.PersistentFlags().StringP("sprint", "s", "", "Sprint identifier")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultHistoryLimit, "Number of history records to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string (sqlite file path, or e.g. user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().Bool("save", false, "Persist the result as a new risk score record")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Int("threshold", contract.DefaultCheckThreshold, "Fail when the overall score is at or above this value (0-100)")
	checkCmd.Flags().String("max-level", "", "Also fail when the risk level is above this level: low or moderate or high or critical")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Record flags are read per command since they describe one record, not config
	recordCmd.PersistentFlags().String("id", "", "Record ID (generated when empty)")
	recordCmd.PersistentFlags().String("at", "", "Record timestamp in RFC3339 (defaults to now)")
	recordVoteCmd.Flags().Int("level", 0, "Confidence level from 1 (no confidence) to 5 (full confidence)")
	recordMetricCmd.Flags().String("type", "", "Metric type: velocity, story_points_completed, throughput, completion_rate, ...")
	recordMetricCmd.Flags().Float64("value", 0, "Metric value")
	recordMetricCmd.Flags().String("target", "", "Optional metric target value")
	recordObjectiveCmd.Flags().String("status", "", "Objective status: completed, in_progress, planned, at_risk, blocked, abandoned")
	recordObjectiveCmd.Flags().String("title", "", "Objective title")

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
