package cmd

import (
	"fmt"

	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/internal/outwriter"
	"github.com/finsight/finsight/schema"
	"github.com/spf13/cobra"
)

// anomaliesUnavailable reports why anomaly detection cannot run over the
// inferred roles, or empty when it can. Absence of an optional role is a
// valid dataset state, not a failure.
func anomaliesUnavailable(roles schema.ColumnRoles, measure string) string {
	if roles.CategoryColumn == "" {
		return "Anomaly detection unavailable: the dataset has no category column"
	}
	if measure == "" {
		return "Anomaly detection unavailable: the dataset has no measure columns"
	}
	return ""
}

// anomaliesCmd flags rows that deviate from their category group.
var anomaliesCmd = &cobra.Command{
	Use:   "anomalies <source>...",
	Short: "Flag rows that deviate sharply from their category group.",
	Long: `Group the measure column by category and flag outliers.

A row is anomalous when its value sits more than two standard deviations
from its group mean. Each flagged row reports the group mean and the
value-to-mean ratio so you can judge severity.

Requires a category column (category, type or expense_category) and at
least one numeric column.

Examples:
  # Flag outliers in the first numeric column
  finsight anomalies ledger.csv

  # Pick the measure explicitly
  finsight anomalies ledger.csv --measure amount

  # Feed flagged rows into another tool
  finsight anomalies ledger.csv --output json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sourcesSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ds, err := loadDataset()
		if err != nil {
			contract.LogFatal("Cannot load sources", err)
		}
		roles := core.InferRoles(ds)
		measure, err := core.SelectMeasure(roles, cfg.Measure)
		if err != nil {
			contract.LogFatal("Cannot select measure", err)
		}
		if msg := anomaliesUnavailable(roles, measure); msg != "" {
			fmt.Println(msg)
			return
		}
		anomalies, err := core.DetectAnomalies(ds, roles.CategoryColumn, measure)
		if err != nil {
			contract.LogFatal("Cannot detect anomalies", err)
		}
		if err := outwriter.NewOutWriter().WriteAnomalies(anomalies, cfg); err != nil {
			contract.LogFatal("Cannot write anomalies", err)
		}
	},
}
