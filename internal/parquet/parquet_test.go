package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/finsight/finsight/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetCellStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sc := parquet.SchemaOf(new(DatasetCell))
	require.NotNil(t, sc)

	expectedColumns := []string{
		"row_index",
		"source",
		"column",
		"numeric_value",
		"text_value",
	}
	for _, colName := range expectedColumns {
		col, ok := sc.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestAnomalyRowStructTags(t *testing.T) {
	sc := parquet.SchemaOf(new(AnomalyRow))
	require.NotNil(t, sc)

	expectedColumns := []string{
		"category",
		"source",
		"measure",
		"value",
		"group_mean",
		"ratio",
		"analysis_time",
	}
	for _, colName := range expectedColumns {
		_, ok := sc.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestFlattenDataset(t *testing.T) {
	ds := &schema.Dataset{
		Columns: []string{"date", "amount"},
		Kinds: map[string]schema.ColumnKind{
			"date":   schema.KindDate,
			"amount": schema.KindNumeric,
		},
		Records: []schema.Record{
			{Source: "q1.csv", Cells: map[string]any{"date": "2024-01-01", "amount": 100.0}},
			{Source: "q2.csv", Cells: map[string]any{"date": "2024-02-01", "amount": nil}},
		},
	}

	cells := FlattenDataset(ds)
	require.Len(t, cells, 4)

	assert.Equal(t, int64(0), cells[0].RowIndex)
	assert.Equal(t, "date", cells[0].Column)
	require.NotNil(t, cells[0].TextValue)
	assert.Equal(t, "2024-01-01", *cells[0].TextValue)

	require.NotNil(t, cells[1].NumericValue)
	assert.Equal(t, 100.0, *cells[1].NumericValue)

	// Null cells keep the outer-join shape: both value fields nil.
	assert.Nil(t, cells[3].NumericValue)
	assert.Nil(t, cells[3].TextValue)
	assert.Equal(t, "q2.csv", cells[3].Source)
}

func TestWriteDatasetParquetRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "dataset.parquet")

	v := 42.5
	s := "Rent"
	cells := []DatasetCell{
		{RowIndex: 0, Source: "a.csv", Column: "amount", NumericValue: &v},
		{RowIndex: 0, Source: "a.csv", Column: "category", TextValue: &s},
		{RowIndex: 1, Source: "a.csv", Column: "amount"},
	}

	require.NoError(t, WriteDatasetParquet(cells, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[DatasetCell](file)
	defer reader.Close()

	readData := make([]DatasetCell, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(cells), n)

	require.NotNil(t, readData[0].NumericValue)
	assert.Equal(t, 42.5, *readData[0].NumericValue)
	require.NotNil(t, readData[1].TextValue)
	assert.Equal(t, "Rent", *readData[1].TextValue)
	assert.Nil(t, readData[2].NumericValue)
	assert.Nil(t, readData[2].TextValue)
}

func TestConvertAnomalies(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	anomalies := []schema.Anomaly{
		{Category: "A", Source: "q1.csv", Measure: "amount", Value: 500, GroupMean: 166.67, Ratio: 3},
	}

	rows := ConvertAnomalies(anomalies, now)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Category)
	assert.Equal(t, 500.0, rows[0].Value)
	assert.Equal(t, now, rows[0].AnalysisTime)
}

func TestWriteAnomaliesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "anomalies.parquet")
	rows := ConvertAnomalies([]schema.Anomaly{
		{Category: "A", Source: "q1.csv", Measure: "amount", Value: 500, GroupMean: 166.67, Ratio: 3},
		{Category: "B", Source: "q2.csv", Measure: "amount", Value: -20, GroupMean: 10, Ratio: -2},
	}, time.Now().UTC())

	require.NoError(t, WriteAnomaliesParquet(rows, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
