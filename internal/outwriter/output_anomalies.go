package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAnomalies outputs the flagged records in detection order, dispatching
// on the configured output format. The engine imposes no severity order;
// rows appear grouped by category, row order within each group.
func (ow *OutWriter) WriteAnomalies(anomalies []schema.Anomaly, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, anomalies)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"category", "source", "measure", "value", "group_mean", "ratio", "label"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, a := range anomalies {
					row := []string{
						a.Category,
						a.Source,
						a.Measure,
						fmtFloat(a.Value),
						fmtFloat(a.GroupMean),
						fmtFloat(a.Ratio),
						contract.GetPlainAnomalyLabel(a.Ratio),
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnomalyTable(w, anomalies, cfg, fmtFloat)
		}, "table")
	}
}

func writeAnomalyTable(w io.Writer, anomalies []schema.Anomaly, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(anomalies) == 0 {
		_, err := fmt.Fprintln(w, "No anomalies detected.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Source", "Value", "Group Mean", "Ratio", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	cellWidth := getMaxTableCellWidth(cfg, 6)
	var data [][]string
	for _, a := range anomalies {
		label := contract.GetPlainAnomalyLabel(a.Ratio)
		if cfg.UseColors {
			label = contract.GetColorAnomalyLabel(a.Ratio)
		}
		data = append(data, []string{
			contract.TruncateText(a.Category, cellWidth),
			contract.TruncateText(a.Source, cellWidth),
			fmtFloat(a.Value),
			fmtFloat(a.GroupMean),
			fmtFloat(a.Ratio),
			label,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d anomalous rows (%s, 2-sigma rule)\n", len(anomalies), anomalies[0].Measure)
	return err
}
