package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummary outputs the collaborator summary, dispatching on the
// configured output format. CSV mode carries only the per-measure statistics;
// the full structure needs JSON.
func (ow *OutWriter) WriteSummary(summary schema.DatasetSummary, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"measure", "count", "mean", "std_dev", "min", "max"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, m := range summary.Measures {
					row := []string{
						m.Name,
						strconv.Itoa(m.Count),
						fmtFloat(m.Mean),
						fmtFloat(m.StdDev),
						fmtFloat(m.Min),
						fmtFloat(m.Max),
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
			return writeSummaryText(w, summary, fmtFloat)
		}, "summary")
	}
}

func writeSummaryText(w io.Writer, summary schema.DatasetSummary, fmtFloat func(float64) string) error {
	columns := make([]string, 0, len(summary.Columns))
	for _, c := range summary.Columns {
		columns = append(columns, fmt.Sprintf("%s (%s)", c.Name, c.Kind))
	}
	if _, err := fmt.Fprintf(w, "Dataset: %d rows from %s\n", summary.RowCount, strings.Join(summary.Sources, ", ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Columns: %s\n", strings.Join(columns, ", ")); err != nil {
		return err
	}
	if err := writeRoleLines(w, summary.Roles); err != nil {
		return err
	}

	if len(summary.Measures) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Measure", "Count", "Mean", "Std Dev", "Min", "Max"})
		table.Configure(func(tc *tablewriter.Config) {
			tc.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, m := range summary.Measures {
			data = append(data, []string{
				m.Name,
				strconv.Itoa(m.Count),
				fmtFloat(m.Mean),
				fmtFloat(m.StdDev),
				fmtFloat(m.Min),
				fmtFloat(m.Max),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if len(summary.TopAnomalies) == 0 {
		if _, err := fmt.Fprintln(w, "No anomalies in the summary window."); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Top anomalies (%d):\n", len(summary.TopAnomalies)); err != nil {
			return err
		}
		for _, a := range summary.TopAnomalies {
			line := fmt.Sprintf("  %s: %s=%s vs group mean %s (ratio %s)\n",
				a.Category, a.Measure, fmtFloat(a.Value), fmtFloat(a.GroupMean), fmtFloat(a.Ratio))
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, "\nSuggested questions:"); err != nil {
		return err
	}
	for _, q := range summary.SuggestedQuestions {
		if _, err := fmt.Fprintf(w, "  - %s\n", q); err != nil {
			return err
		}
	}
	return nil
}
