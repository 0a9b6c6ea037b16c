// Package parquet exports merged datasets and anomaly lists to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/finsight/finsight/schema"
	"github.com/parquet-go/parquet-go"
)

// DatasetCell is one cell of the merged dataset in long form: one output row
// per (record, column) pair. A long layout keeps the Parquet schema static
// while the merged column set varies per upload.
type DatasetCell struct {
	// RowIndex is the record's position in the merged dataset
	RowIndex int64 `parquet:"row_index,snappy"`

	// Source is the provenance identifier of the record
	Source string `parquet:"source,snappy"`

	// Column is the merged column name
	Column string `parquet:"column,snappy"`

	// NumericValue is set for numeric cells (nullable)
	NumericValue *float64 `parquet:"numeric_value,optional,snappy"`

	// TextValue is set for text and date cells (nullable)
	TextValue *string `parquet:"text_value,optional,snappy"`
}

// AnomalyRow is one flagged record with its group statistics.
type AnomalyRow struct {
	Category  string  `parquet:"category,snappy"`
	Source    string  `parquet:"source,snappy"`
	Measure   string  `parquet:"measure,snappy"`
	Value     float64 `parquet:"value,snappy"`
	GroupMean float64 `parquet:"group_mean,snappy"`
	Ratio     float64 `parquet:"ratio,snappy"`

	// AnalysisTime is when the detection ran
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`
}

// FlattenDataset converts a merged dataset to long-form cells, preserving
// record order and column order within each record. Null cells are kept so
// the export reproduces the outer-join shape.
func FlattenDataset(ds *schema.Dataset) []DatasetCell {
	cells := make([]DatasetCell, 0, len(ds.Records)*len(ds.Columns))
	for i := range ds.Records {
		rec := &ds.Records[i]
		for _, col := range ds.Columns {
			cell := DatasetCell{RowIndex: int64(i), Source: rec.Source, Column: col}
			switch v := rec.Cells[col].(type) {
			case float64:
				cell.NumericValue = &v
			case string:
				cell.TextValue = &v
			}
			cells = append(cells, cell)
		}
	}
	return cells
}

// ConvertAnomalies maps engine anomalies to their Parquet rows.
func ConvertAnomalies(anomalies []schema.Anomaly, analysisTime time.Time) []AnomalyRow {
	rows := make([]AnomalyRow, 0, len(anomalies))
	for _, a := range anomalies {
		rows = append(rows, AnomalyRow{
			Category:     a.Category,
			Source:       a.Source,
			Measure:      a.Measure,
			Value:        a.Value,
			GroupMean:    a.GroupMean,
			Ratio:        a.Ratio,
			AnalysisTime: analysisTime,
		})
	}
	return rows
}

// WriteDatasetParquet writes the long-form dataset cells to a Parquet file.
func WriteDatasetParquet(cells []DatasetCell, outputPath string) error {
	return writeParquet(cells, outputPath)
}

// WriteAnomaliesParquet writes the anomaly rows to a Parquet file.
func WriteAnomaliesParquet(rows []AnomalyRow, outputPath string) error {
	return writeParquet(rows, outputPath)
}

// writeParquet writes any slice of tagged structs using schema inference
// from the struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}
