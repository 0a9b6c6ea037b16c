// Package schema has models, constants and shared helpers for all parts of finsight.
package schema

import (
	"fmt"
	"strconv"
	"time"
)

// Record is one row of a tabular source after the merge. Cell values are
// float64 for numeric cells, string for everything else, and nil when the
// originating source did not carry the column. Source names the originating
// source (provenance).
type Record struct {
	Source string         `json:"source"`
	Cells  map[string]any `json:"cells"`
}

// Dataset is the merged, immutable view over all ingested sources.
// Columns preserves first-seen column order across sources; Kinds holds the
// inferred scalar kind per column. Downstream components never mutate a
// Dataset, they derive fresh values from it.
type Dataset struct {
	Columns []string              `json:"columns"`
	Kinds   map[string]ColumnKind `json:"kinds"`
	Records []Record              `json:"records"`
	Sources []string              `json:"sources"`
}

// RowCount returns the number of merged records.
func (d *Dataset) RowCount() int {
	return len(d.Records)
}

// HasColumn reports whether the merged schema carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.Kinds[name]
	return ok
}

// ColumnRoles is the semantic classification of the merged schema.
// Empty strings and an empty measure list are valid; absence of a role
// disables the dependent feature instead of failing.
type ColumnRoles struct {
	TimeColumn     string   `json:"time_column,omitempty"`
	CategoryColumn string   `json:"category_column,omitempty"`
	MeasureColumns []string `json:"measure_columns,omitempty"`
}

// HealthScore maps each health indicator to its score. The two formula-based
// indicators are capped at 100 but deliberately not floored at 0.
type HealthScore map[Indicator]int

// Anomaly is one record flagged by the 2-sigma rule, together with the group
// statistics that flagged it. GroupMean and Ratio are rounded to 2 decimals.
type Anomaly struct {
	Category  string  `json:"category"`
	Source    string  `json:"source"`
	Measure   string  `json:"measure"`
	Value     float64 `json:"value"`
	GroupMean float64 `json:"group_mean"`
	Ratio     float64 `json:"ratio"`
}

// TimePoint is one observed (date, value) pair of a measure's time series.
type TimePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ForecastPoint is one projected (date, value) pair.
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ColumnInfo describes one merged column for summary consumers.
type ColumnInfo struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// MeasureStats holds descriptive statistics for one measure column.
// Count is the number of non-null values the statistics were computed over.
type MeasureStats struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// DatasetSummary is the structured summary handed to the presentation layer
// and to the canned-response collaborator. The engine never interprets it.
type DatasetSummary struct {
	RowCount           int            `json:"row_count"`
	Sources            []string       `json:"sources"`
	Columns            []ColumnInfo   `json:"columns"`
	Roles              ColumnRoles    `json:"roles"`
	Measures           []MeasureStats `json:"measures"`
	TopAnomalies       []Anomaly      `json:"top_anomalies"`
	SuggestedQuestions []string       `json:"suggested_questions"`
}

// CacheStatus holds status information about the ingest cache.
type CacheStatus struct {
	Backend         DatabaseBackend `json:"backend"`
	Connected       bool            `json:"connected"`
	TotalEntries    int64           `json:"total_entries"`
	LastEntryTime   time.Time       `json:"last_entry_time"`
	OldestEntryTime time.Time       `json:"oldest_entry_time"`
	TableSizeBytes  int64           `json:"table_size_bytes"`
}

// FormatValue renders a cell value the way tables and category keys need it:
// numerics without a trailing ".0", nil as the empty string.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
