package core

import (
	"testing"
	"time"

	"github.com/finsight/finsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlySeries(values []float64) []schema.TimePoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make([]schema.TimePoint, len(values))
	for i, v := range values {
		series[i] = schema.TimePoint{Date: start.AddDate(0, i, 0), Value: v}
	}
	return series
}

// TestForecastProjection checks the full projection shape: the anchor is the
// mean of the last three observations and each of the six points compounds 2%
// per 30-day step.
func TestForecastProjection(t *testing.T) {
	series := monthlySeries([]float64{100, 102, 104, 106, 108, 110})

	points, err := Forecast(series)
	require.NoError(t, err)
	require.Len(t, points, 6)

	// Anchor is mean(106, 108, 110) = 108.
	lastDate := series[len(series)-1].Date
	for i, p := range points {
		step := i + 1
		assert.InDelta(t, 108*(1+0.02*float64(step)), p.Value, 0.001)
		assert.Equal(t, lastDate.AddDate(0, 0, 30*step), p.Date)
	}

	// Values are strictly increasing off a positive anchor.
	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].Value, points[i-1].Value)
	}
}

func TestForecastDeterministic(t *testing.T) {
	series := monthlySeries([]float64{50, 60, 70, 80})

	first, err := Forecast(series)
	require.NoError(t, err)
	second, err := Forecast(series)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestForecastInsufficientData(t *testing.T) {
	series := monthlySeries([]float64{100, 200})

	_, err := Forecast(series)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Points)
	assert.Equal(t, 3, insufficient.Needed)
}

func TestForecastUnsortedInput(t *testing.T) {
	series := monthlySeries([]float64{100, 102, 104})
	series[2].Date = series[0].Date.AddDate(0, 0, -1)

	_, err := Forecast(series)
	var unsorted *UnsortedInputError
	require.ErrorAs(t, err, &unsorted)
	assert.Equal(t, 2, unsorted.Index)
}

// TestBuildSeries covers extraction and sorting: unparseable dates and
// non-numeric measures are skipped, and the result is ascending by date.
func TestBuildSeries(t *testing.T) {
	records := []schema.Record{
		{Source: "a.csv", Cells: map[string]any{"date": "2024-03-01", "amount": 300.0}},
		{Source: "a.csv", Cells: map[string]any{"date": "2024-01-01", "amount": 100.0}},
		{Source: "a.csv", Cells: map[string]any{"date": "not a date", "amount": 999.0}},
		{Source: "a.csv", Cells: map[string]any{"date": "2024-02-01", "amount": "oops"}},
		{Source: "a.csv", Cells: map[string]any{"date": "2024-02-01", "amount": 200.0}},
	}
	ds := &schema.Dataset{
		Columns: []string{"date", "amount"},
		Kinds: map[string]schema.ColumnKind{
			"date":   schema.KindDate,
			"amount": schema.KindNumeric,
		},
		Records: records,
	}

	series, err := BuildSeries(ds, "date", "amount")
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, []float64{100, 200, 300}, []float64{series[0].Value, series[1].Value, series[2].Value})
}

func TestBuildSeriesMissingColumns(t *testing.T) {
	ds := &schema.Dataset{Columns: []string{"date"}, Kinds: map[string]schema.ColumnKind{"date": schema.KindDate}}

	var missing *MissingColumnError
	_, err := BuildSeries(ds, "nope", "amount")
	require.ErrorAs(t, err, &missing)

	_, err = BuildSeries(ds, "date", "amount")
	require.ErrorAs(t, err, &missing)
}

// TestBuildSeriesThenForecast wires the two halves together over a merged
// dataset shape, mirroring how the analysis pass uses them.
func TestBuildSeriesThenForecast(t *testing.T) {
	values := []float64{100, 102, 104, 106, 108, 110}
	records := make([]schema.Record, len(values))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		records[i] = schema.Record{
			Source: "a.csv",
			Cells: map[string]any{
				"date":   start.AddDate(0, i, 0).Format("2006-01-02"),
				"amount": v,
			},
		}
	}
	ds := &schema.Dataset{
		Columns: []string{"date", "amount"},
		Kinds: map[string]schema.ColumnKind{
			"date":   schema.KindDate,
			"amount": schema.KindNumeric,
		},
		Records: records,
	}

	series, err := BuildSeries(ds, "date", "amount")
	require.NoError(t, err)
	points, err := Forecast(series)
	require.NoError(t, err)
	require.Len(t, points, 6)
	assert.InDelta(t, 108*1.02, points[0].Value, 0.001)
}
