package cmd

import (
	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/internal/outwriter"
	"github.com/spf13/cobra"
)

// summaryCmd prints a one-screen digest of the merged dataset.
var summaryCmd = &cobra.Command{
	Use:   "summary <source>...",
	Short: "Print a one-screen digest of the merged dataset.",
	Long: `Run the full analysis pass and condense it into a digest.

Covers the merged row count, source provenance, column roles, per-measure
statistics, the top anomalies and a set of suggested follow-up questions.

This is the same digest served to AI agents over the MCP server.

Examples:
  # Digest two exports
  finsight summary q1.csv q2.xlsx

  # Show more top anomalies
  finsight summary ledger.csv --head 10

  # Full structured digest
  finsight summary ledger.csv --output json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sourcesSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ds, err := loadDataset()
		if err != nil {
			contract.LogFatal("Cannot load sources", err)
		}
		result, err := core.RunAnalysis(ds, core.Options{
			Measure:     cfg.Measure,
			Rand:        cfg.Rand(),
			AnomalyHead: cfg.AnomalyHead,
		})
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
		if err := outwriter.NewOutWriter().WriteSummary(result.Summary, cfg); err != nil {
			contract.LogFatal("Cannot write summary", err)
		}
	},
}
