package core

import (
	"math"
	"slices"

	"github.com/finsight/finsight/schema"
)

// DefaultAnomalyHead is how many anomalies the summary carries by default.
const DefaultAnomalyHead = 5

// suggestedQuestions are the canned prompts surfaced alongside the summary
// for the templated responder. Static on purpose.
var suggestedQuestions = []string{
	"Why did expenses spike recently?",
	"Is revenue growth slowing?",
	"Which category shows the highest risk?",
	"How healthy is our cashflow?",
	"What should management focus on next quarter?",
}

// SuggestedQuestions returns the canned analysis prompts.
func SuggestedQuestions() []string {
	return slices.Clone(suggestedQuestions)
}

// MeasureStatistics computes descriptive statistics over the non-null values
// of one measure column.
func MeasureStatistics(ds *schema.Dataset, measure string) schema.MeasureStats {
	values := numericColumnValues(ds, measure)
	stats := schema.MeasureStats{Name: measure, Count: len(values)}
	if len(values) == 0 {
		return stats
	}
	stats.Mean = mean(values)
	stats.StdDev = sampleStdDev(values)
	stats.Min = math.Inf(1)
	stats.Max = math.Inf(-1)
	for _, v := range values {
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
	}
	return stats
}

// Summarize assembles the structured summary consumed by the presentation
// layer and the collaborator surface: row count, provenance, column
// descriptors, role classification, per-measure statistics and the head of
// the anomaly list. head <= 0 selects DefaultAnomalyHead.
func Summarize(ds *schema.Dataset, roles schema.ColumnRoles, anomalies []schema.Anomaly, head int) schema.DatasetSummary {
	if head <= 0 {
		head = DefaultAnomalyHead
	}

	columns := make([]schema.ColumnInfo, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		columns = append(columns, schema.ColumnInfo{Name: col, Kind: ds.Kinds[col]})
	}

	measures := make([]schema.MeasureStats, 0, len(roles.MeasureColumns))
	for _, m := range roles.MeasureColumns {
		measures = append(measures, MeasureStatistics(ds, m))
	}

	top := anomalies
	if len(top) > head {
		top = top[:head]
	}

	return schema.DatasetSummary{
		RowCount:           ds.RowCount(),
		Sources:            slices.Clone(ds.Sources),
		Columns:            columns,
		Roles:              roles,
		Measures:           measures,
		TopAnomalies:       slices.Clone(top),
		SuggestedQuestions: SuggestedQuestions(),
	}
}
