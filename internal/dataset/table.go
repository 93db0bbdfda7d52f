package dataset

import (
	"fmt"

	"github.com/sells-group/acs-demographics/internal/acs"
)

// Record is one row of a table, keyed by column name. Values are strings, int64, float64
// or nil for missing data.
type Record map[string]any

// Table is an ordered sequence of records with a fixed column order.
type Table struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// TableFromRows builds a table from an API response. Columns listed in numeric are coerced
// with acs.ParseValue; all others (names, geography codes) stay strings.
func TableFromRows(rows *acs.Rows, numeric map[string]bool) *Table {
	t := &Table{}
	if rows == nil {
		return t
	}
	t.Columns = append(t.Columns, rows.Header...)
	t.Records = make([]Record, 0, len(rows.Data))
	for _, raw := range rows.Data {
		rec := make(Record, len(rows.Header))
		for i, col := range rows.Header {
			if i >= len(raw) {
				rec[col] = nil
				continue
			}
			if numeric[col] {
				rec[col] = acs.ParseValue(raw[i])
			} else {
				rec[col] = raw[i]
			}
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

// Rename returns a copy with columns renamed per m. Mapping entries for columns the table
// does not have are ignored, so renaming an already-renamed table is a no-op. A target that
// is already taken, by an unrenamed column or an earlier rename, gets the source column
// appended ("Total (B01001_001E)") so no values are overwritten.
func (t *Table) Rename(m VariableNameMapping) *Table {
	out := &Table{
		Columns: make([]string, len(t.Columns)),
		Records: make([]Record, len(t.Records)),
	}

	used := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		if to, ok := m[col]; !ok || to == "" {
			used[col] = true
		}
	}

	names := make(map[string]string, len(t.Columns))
	for i, col := range t.Columns {
		name := col
		if to, ok := m[col]; ok && to != "" {
			name = to
			if used[name] {
				name = fmt.Sprintf("%s (%s)", to, col)
			}
			used[name] = true
		}
		names[col] = name
		out.Columns[i] = name
	}
	for i, rec := range t.Records {
		renamed := make(Record, len(rec))
		for k, v := range rec {
			if to, ok := names[k]; ok {
				renamed[to] = v
				continue
			}
			renamed[k] = v
		}
		out.Records[i] = renamed
	}
	return out
}
