package core

import (
	"testing"

	"github.com/finsight/finsight/schema"
	"github.com/stretchr/testify/assert"
)

func kindsDataset(columns []string, kinds map[string]schema.ColumnKind) *schema.Dataset {
	return &schema.Dataset{Columns: columns, Kinds: kinds}
}

// TestInferRoles checks the ordered role rules: first "date" name match wins
// the time role, first known category name wins the category role, and every
// numeric column is a measure in column order.
func TestInferRoles(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		kinds    map[string]schema.ColumnKind
		expected schema.ColumnRoles
	}{
		{
			name:    "typical ledger",
			columns: []string{"Date", "Category", "Amount", "Balance"},
			kinds: map[string]schema.ColumnKind{
				"Date":     schema.KindDate,
				"Category": schema.KindText,
				"Amount":   schema.KindNumeric,
				"Balance":  schema.KindNumeric,
			},
			expected: schema.ColumnRoles{
				TimeColumn:     "Date",
				CategoryColumn: "Category",
				MeasureColumns: []string{"Amount", "Balance"},
			},
		},
		{
			name:    "substring and case-insensitive time match",
			columns: []string{"posting_DATE", "update_date"},
			kinds: map[string]schema.ColumnKind{
				"posting_DATE": schema.KindText,
				"update_date":  schema.KindDate,
			},
			expected: schema.ColumnRoles{TimeColumn: "posting_DATE"},
		},
		{
			name:    "category matches exact names only",
			columns: []string{"category_code", "Expense_Category"},
			kinds: map[string]schema.ColumnKind{
				"category_code":    schema.KindText,
				"Expense_Category": schema.KindText,
			},
			expected: schema.ColumnRoles{CategoryColumn: "Expense_Category"},
		},
		{
			name:     "no roles at all",
			columns:  []string{"note"},
			kinds:    map[string]schema.ColumnKind{"note": schema.KindText},
			expected: schema.ColumnRoles{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles := InferRoles(kindsDataset(tt.columns, tt.kinds))
			assert.Equal(t, tt.expected, roles)
		})
	}
}

// TestInferRolesDeterministic runs inference repeatedly over the same schema
// and expects identical results every time.
func TestInferRolesDeterministic(t *testing.T) {
	ds := kindsDataset(
		[]string{"date", "type", "amount"},
		map[string]schema.ColumnKind{
			"date":   schema.KindDate,
			"type":   schema.KindText,
			"amount": schema.KindNumeric,
		},
	)

	first := InferRoles(ds)
	for range 10 {
		assert.Equal(t, first, InferRoles(ds))
	}
}
