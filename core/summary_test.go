package core

import (
	"testing"

	"github.com/finsight/finsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureStatistics(t *testing.T) {
	ds := measureDataset("amount", []float64{10, 20, 30, 40})
	stats := MeasureStatistics(ds, "amount")

	assert.Equal(t, "amount", stats.Name)
	assert.Equal(t, 4, stats.Count)
	assert.InDelta(t, 25, stats.Mean, 0.001)
	assert.InDelta(t, 12.91, stats.StdDev, 0.01)
	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 40.0, stats.Max)
}

func TestMeasureStatisticsEmpty(t *testing.T) {
	ds := measureDataset("amount", nil)
	stats := MeasureStatistics(ds, "amount")

	assert.Equal(t, 0, stats.Count)
	assert.Zero(t, stats.Mean)
	assert.Zero(t, stats.Min)
	assert.Zero(t, stats.Max)
}

func TestSummarize(t *testing.T) {
	ds := measureDataset("amount", []float64{10, 20, 30})
	ds.Sources = []string{"a.csv"}
	roles := InferRoles(ds)

	anomalies := make([]schema.Anomaly, 8)
	for i := range anomalies {
		anomalies[i] = schema.Anomaly{Category: "A", Measure: "amount", Value: float64(i)}
	}

	summary := Summarize(ds, roles, anomalies, 0)

	assert.Equal(t, 3, summary.RowCount)
	assert.Equal(t, []string{"a.csv"}, summary.Sources)
	require.Len(t, summary.Columns, 1)
	assert.Equal(t, schema.KindNumeric, summary.Columns[0].Kind)
	require.Len(t, summary.Measures, 1)
	assert.Equal(t, "amount", summary.Measures[0].Name)

	// head <= 0 falls back to the default anomaly head.
	assert.Len(t, summary.TopAnomalies, DefaultAnomalyHead)
	assert.Len(t, summary.SuggestedQuestions, 5)
}

func TestSummarizeHeadShorterThanList(t *testing.T) {
	ds := measureDataset("amount", []float64{10})
	anomalies := []schema.Anomaly{{Category: "A"}, {Category: "B"}}

	summary := Summarize(ds, InferRoles(ds), anomalies, 10)
	assert.Len(t, summary.TopAnomalies, 2)
}

func TestSuggestedQuestionsIsolated(t *testing.T) {
	qs := SuggestedQuestions()
	require.NotEmpty(t, qs)

	// Mutating the returned slice must not leak into later calls.
	qs[0] = "tampered"
	assert.NotEqual(t, "tampered", SuggestedQuestions()[0])
}
