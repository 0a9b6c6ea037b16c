package core

import (
	"strings"

	"github.com/finsight/finsight/schema"
)

// InferRoles classifies the merged columns into semantic roles using an
// ordered rule list over the column descriptors (name, inferred kind):
//
//   - time column: first column whose name contains "date", case-insensitive.
//     Name match only; there is no fallback to kind-based detection.
//   - category column: first column whose lower-cased name exactly equals one
//     of the fixed category names (category, type, expense_category).
//   - measure columns: every numeric column, in column order.
//
// Ties break by column position (first match wins) so the result is stable
// across runs on the same schema. Every role is optional: a missing role
// disables the dependent feature, it never fails.
func InferRoles(ds *schema.Dataset) schema.ColumnRoles {
	var roles schema.ColumnRoles
	for _, col := range ds.Columns {
		lower := strings.ToLower(col)
		if roles.TimeColumn == "" && strings.Contains(lower, "date") {
			roles.TimeColumn = col
		}
		if roles.CategoryColumn == "" {
			if _, ok := schema.CategoryColumnNames[lower]; ok {
				roles.CategoryColumn = col
			}
		}
		if ds.Kinds[col] == schema.KindNumeric {
			roles.MeasureColumns = append(roles.MeasureColumns, col)
		}
	}
	return roles
}
