// Package report renders collected demographic tables as text, JSON, CSV or XLSX.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/acs-demographics/internal/dataset"
)

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatCSV, FormatXLSX}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, 0, len(Formats()))
	for _, known := range Formats() {
		names = append(names, string(known))
	}
	return "", eris.Errorf("report: unsupported format %q (valid: %s)", s, strings.Join(names, ", "))
}

// Write renders result to w. Tables are written in name order.
func Write(w io.Writer, format Format, result dataset.QueryResult) error {
	switch format {
	case FormatTable:
		return writeText(w, result)
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		return writeCSV(w, result)
	case FormatXLSX:
		return writeXLSX(w, result)
	default:
		return eris.Errorf("report: unsupported format %q", format)
	}
}

// WriteFile renders result to path, creating or truncating it.
func WriteFile(path string, format Format, result dataset.QueryResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create output file %s", path)
	}
	if err := Write(f, format, result); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "report: close output file %s", path)
}

// TableNames returns the result's table names, sorted.
func TableNames(result dataset.QueryResult) []string {
	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatValue renders a record value as text. Missing values render empty.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func writeText(out io.Writer, result dataset.QueryResult) error {
	for i, name := range TableNames(result) {
		table := tableOf(result, name)
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return eris.Wrap(err, "report: write table")
			}
		}
		if _, err := fmt.Fprintf(out, "%s (%d rows)\n", name, table.Len()); err != nil {
			return eris.Wrap(err, "report: write table")
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, strings.Join(table.Columns, "\t"))
		rules := make([]string, len(table.Columns))
		for j, col := range table.Columns {
			rules[j] = strings.Repeat("-", len(col))
		}
		_, _ = fmt.Fprintln(w, strings.Join(rules, "\t"))
		for _, rec := range table.Records {
			_, _ = fmt.Fprintln(w, strings.Join(recordStrings(table.Columns, rec), "\t"))
		}
		if err := w.Flush(); err != nil {
			return eris.Wrap(err, "report: write table")
		}
	}
	return nil
}

type jsonTable struct {
	Columns []string         `json:"columns"`
	Records []dataset.Record `json:"records"`
}

func writeJSON(w io.Writer, result dataset.QueryResult) error {
	out := make(map[string]jsonTable, len(result))
	for name, table := range result {
		jt := jsonTable{Columns: []string{}, Records: []dataset.Record{}}
		if table != nil {
			if table.Columns != nil {
				jt.Columns = table.Columns
			}
			if table.Records != nil {
				jt.Records = table.Records
			}
		}
		out[name] = jt
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(out), "report: encode json")
}

// writeCSV writes one header plus rows per table. Multiple tables are separated by a blank line.
func writeCSV(w io.Writer, result dataset.QueryResult) error {
	cw := csv.NewWriter(w)
	for i, name := range TableNames(result) {
		table := tableOf(result, name)
		if i > 0 {
			cw.Flush()
			if _, err := fmt.Fprintln(w); err != nil {
				return eris.Wrap(err, "report: write CSV separator")
			}
		}
		if err := cw.Write(table.Columns); err != nil {
			return eris.Wrap(err, "report: write CSV header")
		}
		for _, rec := range table.Records {
			if err := cw.Write(recordStrings(table.Columns, rec)); err != nil {
				return eris.Wrap(err, "report: write CSV row")
			}
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush CSV")
}

// writeXLSX writes one sheet per table. Numbers are stored as numeric cells.
func writeXLSX(w io.Writer, result dataset.QueryResult) error {
	f := xlsx.NewFile()
	for _, name := range TableNames(result) {
		table := tableOf(result, name)
		sheet, err := f.AddSheet(sheetName(name))
		if err != nil {
			return eris.Wrapf(err, "report: add sheet %q", name)
		}

		header := sheet.AddRow()
		for _, col := range table.Columns {
			header.AddCell().SetString(col)
		}
		for _, rec := range table.Records {
			row := sheet.AddRow()
			for _, col := range table.Columns {
				cell := row.AddCell()
				switch v := rec[col].(type) {
				case nil:
				case int64:
					cell.SetInt64(v)
				case float64:
					cell.SetFloat(v)
				default:
					cell.SetString(FormatValue(v))
				}
			}
		}
	}
	if len(f.Sheets) == 0 {
		if _, err := f.AddSheet("Empty"); err != nil {
			return eris.Wrap(err, "report: add sheet")
		}
	}
	return eris.Wrap(f.Write(w), "report: write xlsx")
}

// sheetName fits a table name into Excel's 31-character sheet name limit.
func sheetName(name string) string {
	name = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ").Replace(name)
	if r := []rune(name); len(r) > 31 {
		return string(r[:31])
	}
	return name
}

func tableOf(result dataset.QueryResult, name string) *dataset.Table {
	if t := result[name]; t != nil {
		return t
	}
	return &dataset.Table{}
}

func recordStrings(columns []string, rec dataset.Record) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = FormatValue(rec[col])
	}
	return row
}
