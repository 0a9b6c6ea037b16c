package core

import (
	"errors"
	"math/rand"

	"github.com/finsight/finsight/schema"
)

// ErrNoMeasures is returned when health scores are requested for a dataset
// without a single numeric column. Callers treat this as "unavailable", not
// as a failed analysis.
var ErrNoMeasures = errors.New("dataset has no measure columns")

// Bounds for the two placeholder indicators. Both are stand-ins for future
// real computations; the upper bound is exclusive.
const (
	cashflowMin, cashflowMax = 65, 90
	churnMin, churnMax       = 40, 70
)

// Divisors that map measure dispersion and magnitude onto the 0-100 scale.
const (
	stabilityDivisor  = 1000.0
	efficiencyDivisor = 2000.0
)

// ScoreHealth reduces the measure columns into the four fixed indicators.
//
// Revenue Stability and Cost Efficiency are derived from per-measure sample
// standard deviations and means, truncated to integer and capped at 100.
// The lower bound is deliberately NOT clamped: under extreme variance or
// magnitude a score goes negative, and the presentation layer clamps for
// display. Cashflow Health and Churn Risk are bounded pseudo-indicators drawn
// from the injected rng so tests can pin them with a fixed seed.
func ScoreHealth(ds *schema.Dataset, measures []string, rng *rand.Rand) (schema.HealthScore, error) {
	if len(measures) == 0 {
		return nil, ErrNoMeasures
	}

	stdDevs := make([]float64, 0, len(measures))
	means := make([]float64, 0, len(measures))
	for _, m := range measures {
		values := numericColumnValues(ds, m)
		if len(values) == 0 {
			continue
		}
		stdDevs = append(stdDevs, sampleStdDev(values))
		means = append(means, mean(values))
	}

	return schema.HealthScore{
		schema.RevenueStability: capAt100(100 - mean(stdDevs)/stabilityDivisor),
		schema.CostEfficiency:   capAt100(100 - mean(means)/efficiencyDivisor),
		schema.CashflowHealth:   cashflowMin + rng.Intn(cashflowMax-cashflowMin),
		schema.ChurnRisk:        churnMin + rng.Intn(churnMax-churnMin),
	}, nil
}

// capAt100 truncates toward zero, then caps on the upper side only.
func capAt100(v float64) int {
	n := int(v)
	if n > 100 {
		return 100
	}
	return n
}
