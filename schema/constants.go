package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// ColumnKind represents the inferred scalar kind of a column.
	ColumnKind string

	// Indicator represents one of the fixed health indicators.
	Indicator string

	// DatabaseBackend represents the database backend for the ingest cache.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All column kinds inferred during ingestion.
const (
	KindNumeric ColumnKind = "numeric"
	KindDate    ColumnKind = "date"
	KindText    ColumnKind = "text"
)

// The fixed set of health indicators.
const (
	RevenueStability Indicator = "Revenue Stability"
	CostEfficiency   Indicator = "Cost Efficiency"
	CashflowHealth   Indicator = "Cashflow Health"
	ChurnRisk        Indicator = "Churn Risk"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllIndicators lists the health indicators in display order.
var AllIndicators = []Indicator{RevenueStability, CostEfficiency, CashflowHealth, ChurnRisk}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// CategoryColumnNames is the fixed set of names that select the category
// column. Matching is exact on the lower-cased column name.
var CategoryColumnNames = map[string]struct{}{
	"category":         {},
	"type":             {},
	"expense_category": {},
}
