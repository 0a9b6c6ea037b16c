package cmd

import (
	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/internal/outwriter"
	"github.com/spf13/cobra"
)

// reportCmd renders an executive-style text report.
var reportCmd = &cobra.Command{
	Use:   "report <source>...",
	Short: "Render an executive-style report of the analysis.",
	Long: `Run the full analysis pass and render it as a narrative report.

Combines health scores with their labels, key measure statistics,
flagged outliers and recommended actions into one printable page.

Examples:
  # Report on a quarterly export
  finsight report q1.csv

  # Reproducible sampled indicators
  finsight report q1.csv --seed 42

  # Save the report to a file
  finsight report q1.csv --output-file report.txt`,
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
		if err := outwriter.NewOutWriter().WriteReport(result.Summary, result.Health, cfg); err != nil {
			contract.LogFatal("Cannot write report", err)
		}
	},
}
