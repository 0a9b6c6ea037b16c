package core

import (
	"math"

	"github.com/finsight/finsight/schema"
)

// anomalySigma is the outlier threshold in group standard deviations. A
// single-pass 2-sigma rule stays explainable on small ad-hoc financial
// extracts where a fitted model would overfit.
const anomalySigma = 2.0

// DetectAnomalies groups the records by category value, computes per-group
// mean and sample standard deviation of the target measure, and flags every
// record farther than anomalySigma deviations from its group mean.
//
// Boundary rules, both deliberate:
//   - a group with zero dispersion never flags, regardless of its spread
//     from other groups;
//   - a group whose mean is exactly 0 is skipped entirely, because the
//     deviation ratio observed/mean is undefined there.
//
// Rows with a null category or a non-numeric measure cell do not participate.
// Results follow grouping order (first-seen category) then row order within
// the group; callers wanting a severity order sort explicitly. An empty
// result is success, not an error.
func DetectAnomalies(ds *schema.Dataset, categoryColumn, measureColumn string) ([]schema.Anomaly, error) {
	if !ds.HasColumn(categoryColumn) {
		return nil, &MissingColumnError{Column: categoryColumn}
	}
	if !ds.HasColumn(measureColumn) {
		return nil, &MissingColumnError{Column: measureColumn}
	}

	type entry struct {
		source string
		value  float64
	}
	groups := make(map[string][]entry)
	var order []string
	for i := range ds.Records {
		rec := &ds.Records[i]
		category := rec.Cells[categoryColumn]
		if category == nil {
			continue
		}
		value, ok := rec.Cells[measureColumn].(float64)
		if !ok {
			continue
		}
		key := schema.FormatValue(category)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], entry{source: rec.Source, value: value})
	}

	var anomalies []schema.Anomaly
	for _, key := range order {
		entries := groups[key]
		values := make([]float64, len(entries))
		for i, e := range entries {
			values[i] = e.value
		}
		groupMean := mean(values)
		groupStd := sampleStdDev(values)
		if groupStd <= 0 || groupMean == 0 {
			continue
		}
		for _, e := range entries {
			if math.Abs(e.value-groupMean) > anomalySigma*groupStd {
				anomalies = append(anomalies, schema.Anomaly{
					Category:  key,
					Source:    e.source,
					Measure:   measureColumn,
					Value:     e.value,
					GroupMean: round2(groupMean),
					Ratio:     round2(e.value / groupMean),
				})
			}
		}
	}
	return anomalies, nil
}
