package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/finsight/finsight/schema"
	"github.com/xuri/excelize/v2"
)

// Source is one tabular input before the merge: a header plus raw rows, all
// cells still strings. Name is the identifier stamped on every merged row as
// provenance.
type Source struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// dateLayouts are tried in order when coercing text cells to dates and when
// building forecast series. First parse wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/06",
	"02-01-2006",
	"Jan 2, 2006",
}

// ReadSource parses a single spreadsheet export into a Source, dispatching on
// the file extension. CSV and XLSX are supported. The source identifier is
// the file's base name, matching what the merged rows carry as provenance.
func ReadSource(path string) (*Source, error) {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVSource(name, path)
	case ".xlsx", ".xls":
		return readXLSXSource(name, path)
	default:
		return nil, &IngestionError{Source: name, Err: fmt.Errorf("unsupported file type %q", filepath.Ext(path))}
	}
}

// ReadSources parses every path in order. The first malformed source aborts
// the batch; a partial ingest would break the merge row-count invariant.
func ReadSources(paths []string) ([]*Source, error) {
	sources := make([]*Source, 0, len(paths))
	for _, p := range paths {
		src, err := ReadSource(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func readCSVSource(name, path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IngestionError{Source: name, Err: err}
	}
	defer func() { _ = f.Close() }()

	// The csv reader enforces rectangular rows; ragged input surfaces as a
	// parse error and is reported as a malformed source.
	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &IngestionError{Source: name, Err: err}
	}
	return buildSource(name, rows)
}

func readXLSXSource(name, path string) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &IngestionError{Source: name, Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &IngestionError{Source: name, Err: errors.New("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &IngestionError{Source: name, Err: err}
	}
	return buildSource(name, rows)
}

// buildSource validates the header and normalizes row widths. The csv reader
// already rejects ragged input, so short rows can only come from spreadsheets
// dropping trailing blank cells; those are padded with empty cells. Rows wider
// than the header are malformed.
func buildSource(name string, rows [][]string) (*Source, error) {
	if len(rows) == 0 {
		return nil, &IngestionError{Source: name, Err: errors.New("missing header row")}
	}
	header := make([]string, len(rows[0]))
	seen := make(map[string]struct{}, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, &IngestionError{Source: name, Err: fmt.Errorf("header cell %d is empty", i+1)}
		}
		if _, dup := seen[h]; dup {
			return nil, &IngestionError{Source: name, Err: fmt.Errorf("duplicate column %q", h)}
		}
		seen[h] = struct{}{}
		header[i] = h
	}

	data := make([][]string, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if len(row) > len(header) {
			return nil, &IngestionError{Source: name, Err: fmt.Errorf("row %d has %d cells, header has %d", n+2, len(row), len(header))}
		}
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		data = append(data, row)
	}
	return &Source{Name: name, Header: header, Rows: data}, nil
}

// Merge concatenates all sources into one Dataset: column union in first-seen
// order, source order then within-source row order preserved, every record
// stamped with its source identifier. Columns absent in a source are null for
// that source's records. Precondition: sources is non-empty (short-circuiting
// an empty upload is the caller's job).
func Merge(sources []*Source) (*schema.Dataset, error) {
	if len(sources) == 0 {
		return nil, errors.New("merge requires at least one source")
	}

	var columns []string
	known := make(map[string]struct{})
	var names []string
	for _, src := range sources {
		names = append(names, src.Name)
		for _, col := range src.Header {
			if _, ok := known[col]; !ok {
				known[col] = struct{}{}
				columns = append(columns, col)
			}
		}
	}

	records := make([]schema.Record, 0, totalRows(sources))
	for _, src := range sources {
		for _, row := range src.Rows {
			cells := make(map[string]any, len(src.Header))
			for i, col := range src.Header {
				cells[col] = coerceCell(row[i])
			}
			records = append(records, schema.Record{Source: src.Name, Cells: cells})
		}
	}

	return &schema.Dataset{
		Columns: columns,
		Kinds:   inferKinds(columns, records),
		Records: records,
		Sources: names,
	}, nil
}

func totalRows(sources []*Source) int {
	var n int
	for _, src := range sources {
		n += len(src.Rows)
	}
	return n
}

// coerceCell maps a raw cell to its scalar: empty to nil, numeric-looking
// text to float64, everything else stays text.
func coerceCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}

// inferKinds classifies each merged column: numeric when every non-null cell
// is numeric, date when every non-null cell parses as a date, text otherwise.
// A column with no values at all is text.
func inferKinds(columns []string, records []schema.Record) map[string]schema.ColumnKind {
	kinds := make(map[string]schema.ColumnKind, len(columns))
	for _, col := range columns {
		numeric, date := true, true
		var seen bool
		for i := range records {
			v := records[i].Cells[col]
			if v == nil {
				continue
			}
			seen = true
			switch t := v.(type) {
			case float64:
				date = false
			case string:
				numeric = false
				if _, ok := parseDate(t); !ok {
					date = false
				}
			default:
				numeric, date = false, false
			}
			if !numeric && !date {
				break
			}
		}
		switch {
		case seen && numeric:
			kinds[col] = schema.KindNumeric
		case seen && date:
			kinds[col] = schema.KindDate
		default:
			kinds[col] = schema.KindText
		}
	}
	return kinds
}

// parseDate tries the known layouts in order.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
