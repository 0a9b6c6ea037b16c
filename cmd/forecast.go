package cmd

import (
	"fmt"

	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/internal/outwriter"
	"github.com/finsight/finsight/schema"
	"github.com/spf13/cobra"
)

// forecastUnavailable reports why forecasting cannot run over the inferred
// roles, or empty when it can.
func forecastUnavailable(roles schema.ColumnRoles, measure string) string {
	if roles.TimeColumn == "" {
		return "Forecast unavailable: the dataset has no date column"
	}
	if measure == "" {
		return "Forecast unavailable: the dataset has no measure columns"
	}
	return ""
}

// forecastCmd projects the measure over the next six periods.
var forecastCmd = &cobra.Command{
	Use:   "forecast <source>...",
	Short: "Project the measure column over the next six periods.",
	Long: `Build a time series from the date and measure columns and project it.

The projection anchors on a three-point moving average of the most
recent values and compounds modest growth over six future periods,
spaced thirty days apart.

Requires a date column and a numeric measure with at least three
chronological points.

Examples:
  # Project the first numeric column
  finsight forecast ledger.csv

  # Project a specific measure
  finsight forecast ledger.csv --measure revenue

  # Chart-ready output
  finsight forecast ledger.csv --output csv --output-file forecast.csv`,
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
		if msg := forecastUnavailable(roles, measure); msg != "" {
			fmt.Println(msg)
			return
		}
		series, err := core.BuildSeries(ds, roles.TimeColumn, measure)
		if err != nil {
			contract.LogFatal("Cannot build time series", err)
		}
		points, err := core.Forecast(series)
		if err != nil {
			contract.LogFatal("Cannot forecast", err)
		}
		if err := outwriter.NewOutWriter().WriteForecast(points, measure, cfg); err != nil {
			contract.LogFatal("Cannot write forecast", err)
		}
	},
}
