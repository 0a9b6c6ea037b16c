package core

import (
	"math"

	"github.com/finsight/finsight/schema"
)

// mean returns the arithmetic mean of values, or 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev returns the sample standard deviation (n-1 denominator).
// Fewer than two values have no dispersion, so the result is 0.
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// movingAverage returns the defined entries of a simple moving average with
// the given window: entry i is the mean of values[i..i+window-1]. Leading
// positions with fewer than window preceding points are dropped, so the
// result has len(values)-window+1 entries (nil when the input is shorter
// than the window).
func movingAverage(values []float64, window int) []float64 {
	if window < 1 || len(values) < window {
		return nil
	}
	out := make([]float64, 0, len(values)-window+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// numericColumnValues collects the non-null values of a numeric column in row
// order. Cells that are not float64 (nulls, stray text) are skipped.
func numericColumnValues(ds *schema.Dataset, column string) []float64 {
	values := make([]float64, 0, len(ds.Records))
	for i := range ds.Records {
		if v, ok := ds.Records[i].Cells[column].(float64); ok {
			values = append(values, v)
		}
	}
	return values
}
