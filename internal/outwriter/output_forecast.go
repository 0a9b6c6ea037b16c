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

// forecastDateFormat is the display format for projected dates.
const forecastDateFormat = "2006-01-02"

// WriteForecast outputs the projected points for the given measure,
// dispatching on the configured output format.
func (ow *OutWriter) WriteForecast(points []schema.ForecastPoint, measure string, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, points)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"date", "forecast"}, func(cw *csv.Writer) error {
				for _, p := range points {
					if err := cw.Write([]string{p.Date.Format(forecastDateFormat), fmtFloat(p.Value)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeForecastTable(w, points, measure, fmtFloat)
		}, "table")
	}
}

func writeForecastTable(w io.Writer, points []schema.ForecastPoint, measure string, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Projected %s, %d periods of 30 days\n\n", measure, len(points)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Forecast"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range points {
		data = append(data, []string{p.Date.Format(forecastDateFormat), fmtFloat(p.Value)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
