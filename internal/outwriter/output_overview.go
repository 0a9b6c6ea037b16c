package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// overviewPayload is the JSON shape of the overview output.
type overviewPayload struct {
	RowCount int                          `json:"row_count"`
	Columns  []string                     `json:"columns"`
	Kinds    map[string]schema.ColumnKind `json:"kinds"`
	Roles    schema.ColumnRoles           `json:"roles"`
	Preview  []schema.Record              `json:"preview"`
}

// WriteOverview outputs the merged dataset preview and the inferred roles,
// dispatching on the configured output format.
func (ow *OutWriter) WriteOverview(ds *schema.Dataset, roles schema.ColumnRoles, cfg *contract.Config) error {
	limit := cfg.PreviewLimit
	if limit > ds.RowCount() {
		limit = ds.RowCount()
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, overviewPayload{
				RowCount: ds.RowCount(),
				Columns:  ds.Columns,
				Kinds:    ds.Kinds,
				Roles:    roles,
				Preview:  ds.Records[:limit],
			})
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOverviewCSV(w, ds, limit)
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOverviewTable(w, ds, roles, cfg, limit)
		}, "table")
	}
}

// writeOverviewCSV emits the preview rows with the provenance column first.
func writeOverviewCSV(w io.Writer, ds *schema.Dataset, limit int) error {
	header := append([]string{"source"}, ds.Columns...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i := range limit {
			rec := &ds.Records[i]
			row := make([]string, 0, len(header))
			row = append(row, rec.Source)
			for _, col := range ds.Columns {
				row = append(row, schema.FormatValue(rec.Cells[col]))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeOverviewTable(w io.Writer, ds *schema.Dataset, roles schema.ColumnRoles, cfg *contract.Config, limit int) error {
	if _, err := fmt.Fprintf(w, "Merged %d rows from %d sources\n", ds.RowCount(), len(ds.Sources)); err != nil {
		return err
	}
	if err := writeRoleLines(w, roles); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := append([]string{"Source"}, ds.Columns...)
	table.Header(headers)
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	cellWidth := getMaxTableCellWidth(cfg, len(headers))
	var data [][]string
	for i := range limit {
		rec := &ds.Records[i]
		row := make([]string, 0, len(headers))
		row = append(row, contract.TruncateText(rec.Source, cellWidth))
		for _, col := range ds.Columns {
			row = append(row, contract.TruncateText(schema.FormatValue(rec.Cells[col]), cellWidth))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if limit < ds.RowCount() {
		if _, err := fmt.Fprintf(w, "... %d more rows\n", ds.RowCount()-limit); err != nil {
			return err
		}
	}
	return nil
}

// writeRoleLines prints the role classification, marking absent roles as
// unavailable rather than hiding them.
func writeRoleLines(w io.Writer, roles schema.ColumnRoles) error {
	timeCol, categoryCol := roles.TimeColumn, roles.CategoryColumn
	if timeCol == "" {
		timeCol = "(none)"
	}
	if categoryCol == "" {
		categoryCol = "(none)"
	}
	measures := "(none)"
	if len(roles.MeasureColumns) > 0 {
		measures = strings.Join(roles.MeasureColumns, ", ")
	}
	_, err := fmt.Fprintf(w, "Time column: %s | Category column: %s | Measures: %s\n", timeCol, categoryCol, measures)
	return err
}
