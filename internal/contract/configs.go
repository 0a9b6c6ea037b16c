package contract

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/finsight/finsight/schema"
)

// Default values for configuration.
const (
	DefaultPreviewLimit = 10
	MaxPreviewLimit     = 500
	DefaultPrecision    = 2
	DefaultAnomalyHead  = 5
)

// supportedExtensions are the spreadsheet export formats ingestion accepts.
var supportedExtensions = []string{".csv", ".xlsx", ".xls"}

// Config holds the runtime configuration for an analysis.
// This struct is the final, validated config; raw inputs land in
// ConfigRawInput first.
type Config struct {
	Sources      []string // Paths to the tabular source files, in upload order
	Measure      string   // Target measure column; empty selects the first measure
	PreviewLimit int      // Maximum rows shown in the dataset preview
	Precision    int      // Decimal precision for numeric columns (1 or 2)
	Output       schema.OutputMode
	OutputFile   string
	Seed         int64 // Seed for the placeholder indicators (0 = time-based)
	AnomalyHead  int   // Anomalies carried in the summary
	Width        int   // Terminal width override (0 = auto-detect)
	UseColors    bool  // Enable colored labels in table output

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag
	SourceArgs []string

	Measure        string `mapstructure:"measure"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Seed           int64  `mapstructure:"seed"`
	Head           int    `mapstructure:"head"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
}

// Rand returns the random source for the placeholder indicators, or nil when
// no explicit seed was configured (the engine then seeds from time).
func (c *Config) Rand() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(c.Seed))
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Sources = slices.Clone(c.Sources)
	return &clone
}

// ProcessAndValidate populates cfg from the raw input, validating file paths,
// enums and numeric bounds. Commands that require sources pass
// requireSources; cache and server commands do not.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, requireSources bool) error {
	if requireSources && len(input.SourceArgs) == 0 {
		return fmt.Errorf("at least one source file is required")
	}
	for _, src := range input.SourceArgs {
		if err := validateSourcePath(src); err != nil {
			return err
		}
	}
	cfg.Sources = slices.Clone(input.SourceArgs)
	cfg.Measure = input.Measure

	cfg.PreviewLimit = input.Limit
	if cfg.PreviewLimit <= 0 {
		cfg.PreviewLimit = DefaultPreviewLimit
	}
	if cfg.PreviewLimit > MaxPreviewLimit {
		return fmt.Errorf("limit cannot exceed %d rows", MaxPreviewLimit)
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 1 {
		cfg.Precision = 1
	}
	if cfg.Precision > 2 {
		cfg.Precision = 2
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode %q (text, csv, json)", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	cfg.Seed = input.Seed
	cfg.AnomalyHead = input.Head
	if cfg.AnomalyHead <= 0 {
		cfg.AnomalyHead = DefaultAnomalyHead
	}
	cfg.Width = input.Width
	cfg.UseColors = parseBoolish(input.Color, true)

	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend %q (sqlite, mysql, postgresql, none)", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect

	return nil
}

// validateSourcePath checks that a source file exists and carries a supported
// spreadsheet extension.
func validateSourcePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("source %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("source %q is a directory", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(supportedExtensions, ext) {
		return fmt.Errorf("source %q: unsupported extension %q (want %s)", path, ext, strings.Join(supportedExtensions, ", "))
	}
	return nil
}

// parseBoolish maps the yes/no/true/false/1/0 flag values to a bool.
func parseBoolish(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
