package cmd

import (
	"fmt"
	"time"

	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/internal/parquet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportCmd writes the dataset and anomalies as Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export <source>...",
	Short: "Export the merged dataset and anomalies as Parquet files.",
	Long: `Flatten the merged dataset into long-form cells and write Parquet.

Two files are produced: one with every cell of the merged dataset
(row index, source, column, value) and one with the detected anomalies
stamped with the analysis time. Both load directly into DuckDB, Spark
or pandas.

Examples:
  # Export with default file names
  finsight export ledger.csv

  # Pick the output paths
  finsight export ledger.csv --dataset-file out/cells.parquet --anomalies-file out/flags.parquet`,
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

		datasetFile := viper.GetString("dataset-file")
		cells := parquet.FlattenDataset(ds)
		if err := parquet.WriteDatasetParquet(cells, datasetFile); err != nil {
			contract.LogFatal("Cannot write dataset parquet", err)
		}
		fmt.Printf("Wrote %d cells to %s\n", len(cells), datasetFile)

		if roles.CategoryColumn == "" || measure == "" {
			fmt.Println("Skipping anomaly export: no category column or no measure")
			return
		}
		anomalies, err := core.DetectAnomalies(ds, roles.CategoryColumn, measure)
		if err != nil {
			contract.LogFatal("Cannot detect anomalies", err)
		}
		anomaliesFile := viper.GetString("anomalies-file")
		rows := parquet.ConvertAnomalies(anomalies, time.Now().UTC())
		if err := parquet.WriteAnomaliesParquet(rows, anomaliesFile); err != nil {
			contract.LogFatal("Cannot write anomalies parquet", err)
		}
		fmt.Printf("Wrote %d anomalies to %s\n", len(rows), anomaliesFile)
	},
}
