package core

import (
	"sort"

	"github.com/finsight/finsight/schema"
)

// Forecast shape: a fixed horizon of 30-day steps compounding at a flat 2%
// per period from the smoothed anchor. Not a fitted trend.
const (
	forecastHorizon  = 6
	forecastWindow   = 3
	forecastGrowth   = 0.02
	forecastStepDays = 30
)

// Forecast projects forecastHorizon future points from an ascending
// (date, value) series. The series is smoothed with a 3-point moving average,
// the last defined smoothed value anchors the projection, and each step i
// (1..6) lands 30*i days after the last observed date with value
// anchor*(1+0.02*i). Identical input always yields an identical forecast.
//
// Fails with InsufficientDataError when the smoothed series would be empty
// (fewer than 3 input points) and with UnsortedInputError on a date decrease;
// sorting is the caller's responsibility, see BuildSeries.
func Forecast(series []schema.TimePoint) ([]schema.ForecastPoint, error) {
	if len(series) < forecastWindow {
		return nil, &InsufficientDataError{Points: len(series), Needed: forecastWindow}
	}
	values := make([]float64, len(series))
	for i, p := range series {
		if i > 0 && p.Date.Before(series[i-1].Date) {
			return nil, &UnsortedInputError{Index: i}
		}
		values[i] = p.Value
	}

	smoothed := movingAverage(values, forecastWindow)
	anchor := smoothed[len(smoothed)-1]
	lastDate := series[len(series)-1].Date

	points := make([]schema.ForecastPoint, 0, forecastHorizon)
	for i := 1; i <= forecastHorizon; i++ {
		points = append(points, schema.ForecastPoint{
			Date:  lastDate.AddDate(0, 0, forecastStepDays*i),
			Value: anchor * (1 + forecastGrowth*float64(i)),
		})
	}
	return points, nil
}

// BuildSeries extracts the (date, value) series for one measure from the
// dataset and sorts it ascending by date, ready for Forecast. Rows whose date
// cell does not parse or whose measure cell is not numeric are skipped.
func BuildSeries(ds *schema.Dataset, timeColumn, measureColumn string) ([]schema.TimePoint, error) {
	if !ds.HasColumn(timeColumn) {
		return nil, &MissingColumnError{Column: timeColumn}
	}
	if !ds.HasColumn(measureColumn) {
		return nil, &MissingColumnError{Column: measureColumn}
	}

	series := make([]schema.TimePoint, 0, len(ds.Records))
	for i := range ds.Records {
		rec := &ds.Records[i]
		raw, ok := rec.Cells[timeColumn].(string)
		if !ok {
			continue
		}
		date, ok := parseDate(raw)
		if !ok {
			continue
		}
		value, ok := rec.Cells[measureColumn].(float64)
		if !ok {
			continue
		}
		series = append(series, schema.TimePoint{Date: date, Value: value})
	}
	sort.SliceStable(series, func(a, b int) bool { return series[a].Date.Before(series[b].Date) })
	return series, nil
}
