package cmd

import (
	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/internal/outwriter"
	"github.com/spf13/cobra"
)

// overviewCmd previews the merged dataset and its inferred roles.
var overviewCmd = &cobra.Command{
	Use:   "overview <source>...",
	Short: "Preview the merged dataset and its inferred column roles.",
	Long: `Merge the given spreadsheet exports and show what the engine sees.

Displays:
- Merged row count and per-source provenance
- Every column with its inferred kind (numeric, date, text)
- The detected time, category and measure columns
- A preview of the first rows

Use this before any scoring command to confirm the inputs merged the
way you expect.

Examples:
  # Preview two quarterly exports
  finsight overview q1.csv q2.xlsx

  # Show more preview rows
  finsight overview ledger.csv --limit 50

  # Machine-readable column inventory
  finsight overview ledger.csv --output json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sourcesSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ds, err := loadDataset()
		if err != nil {
			contract.LogFatal("Cannot load sources", err)
		}
		roles := core.InferRoles(ds)
		if err := outwriter.NewOutWriter().WriteOverview(ds, roles, cfg); err != nil {
			contract.LogFatal("Cannot write overview", err)
		}
	},
}
