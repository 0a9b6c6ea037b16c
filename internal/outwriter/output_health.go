package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// healthRow is the JSON shape of one health indicator.
type healthRow struct {
	Indicator schema.Indicator `json:"indicator"`
	Score     int              `json:"score"`
	Label     string           `json:"label"`
}

// WriteHealth outputs the four health indicators in display order,
// dispatching on the configured output format.
func (ow *OutWriter) WriteHealth(scores schema.HealthScore, cfg *contract.Config) error {
	rows := make([]healthRow, 0, len(schema.AllIndicators))
	for _, ind := range schema.AllIndicators {
		score := scores[ind]
		rows = append(rows, healthRow{Indicator: ind, Score: score, Label: contract.GetPlainHealthLabel(score)})
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"indicator", "score", "label"}, func(cw *csv.Writer) error {
				for _, r := range rows {
					if err := cw.Write([]string{string(r.Indicator), strconv.Itoa(r.Score), r.Label}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHealthTable(w, rows, cfg)
		}, "table")
	}
}

func writeHealthTable(w io.Writer, rows []healthRow, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Indicator", "Score", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		label := r.Label
		if cfg.UseColors {
			label = contract.GetColorHealthLabel(r.Score)
		}
		data = append(data, []string{string(r.Indicator), strconv.Itoa(r.Score) + "%", label})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
