// Package cmd defines the command-line interface for finsight.
package cmd

import (
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(anomaliesCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("measure", "m", "", "Measure column to analyze (defaults to the first numeric column)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultPreviewLimit, "Number of preview rows to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int64("seed", 0, "Seed for sampled indicators (0 = time-based)")
	rootCmd.PersistentFlags().Int("head", contract.DefaultAnomalyHead, "Number of top anomalies in summaries")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Ingest cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("dataset-file", "dataset.parquet", "Path to write the flattened dataset to")
	exportCmd.Flags().String("anomalies-file", "anomalies.parquet", "Path to write detected anomalies to")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}
}
