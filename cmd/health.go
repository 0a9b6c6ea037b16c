package cmd

import (
	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/internal/outwriter"
	"github.com/spf13/cobra"
)

// healthCmd computes the four financial health indicators.
var healthCmd = &cobra.Command{
	Use:   "health <source>...",
	Short: "Score the dataset on four financial health indicators.",
	Long: `Compute health scores from the merged dataset's numeric columns.

Indicators:
- Revenue Stability: how steady the measure values are over time
- Cost Efficiency: how tight the spread of values is
- Cashflow Health and Churn Risk: sampled indicators, pin with --seed

Scores are percentages capped at 100. Labels (Strong, Healthy, Watch,
Weak) make the numbers scannable at a glance.

Examples:
  # Score a single export
  finsight health ledger.csv

  # Reproducible sampled indicators
  finsight health ledger.csv --seed 42

  # Export scores for dashboards
  finsight health ledger.csv --output csv --output-file health.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sourcesSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ds, err := loadDataset()
		if err != nil {
			contract.LogFatal("Cannot load sources", err)
		}
		roles := core.InferRoles(ds)
		scores, err := core.ScoreHealth(ds, roles.MeasureColumns, cfg.Rand())
		if err != nil {
			contract.LogFatal("Cannot score health", err)
		}
		if err := outwriter.NewOutWriter().WriteHealth(scores, cfg); err != nil {
			contract.LogFatal("Cannot write health scores", err)
		}
	},
}
