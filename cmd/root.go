package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/internal/iocache"
	"github.com/finsight/finsight/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file,
// env, flags). Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "finsight",
	Short:              "Analyze spreadsheet exports for financial signals.",
	Long:               `FinSight merges spreadsheet exports into one dataset and derives health scores, per-category anomalies and a short-horizon forecast.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".finsight") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")     // Look in the current directory
		viper.AddConfigPath("$HOME") // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("FINSIGHT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultPreviewLimit)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("head", contract.DefaultAnomalyHead)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation. Commands that operate
// on uploaded sources pass requireSources; cache and server commands do not.
func sharedSetup(_ context.Context, args []string, requireSources bool) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.SourceArgs = args

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input, requireSources); err != nil {
		return err
	}

	// 5. Initialize the ingest cache with the validated config.
	if err := iocache.InitCache(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	return nil
}

// sourcesSetup wraps sharedSetup for commands that need source files.
func sourcesSetup(_ *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, args, true)
}

// bareSetup wraps sharedSetup for commands that run without sources.
func bareSetup(_ *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, args, false)
}

// loadDataset ingests the configured sources through the cache and merges
// them into one dataset.
func loadDataset() (*schema.Dataset, error) {
	sources, err := iocache.LoadSources(cfg.Sources)
	if err != nil {
		return nil, err
	}
	return core.Merge(sources)
}

// Execute runs the root command.
func Execute() error {
	defer iocache.CloseCache()
	return rootCmd.Execute()
}
