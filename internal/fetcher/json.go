package fetcher

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// DecodeJSONObject decodes a single JSON object from a reader.
func DecodeJSONObject[T any](r io.Reader) (*T, error) {
	var obj T
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return nil, eris.Wrap(err, "json: decode object")
	}
	return &obj, nil
}

// DecodeJSONRows decodes the array-of-arrays shape the Census Data API returns:
// [["NAME","B01003_001E","state"],["Colorado","5770790","08"]].
// JSON nulls decode to empty strings; numbers are kept in their literal form.
func DecodeJSONRows(r io.Reader) ([][]string, error) {
	var raw [][]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, eris.Wrap(err, "json: decode rows")
	}

	rows := make([][]string, len(raw))
	for i, rec := range raw {
		row := make([]string, len(rec))
		for j, cell := range rec {
			row[j] = cellString(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

func cellString(cell json.RawMessage) string {
	var s string
	if err := json.Unmarshal(cell, &s); err == nil {
		return s
	}
	if string(cell) == "null" {
		return ""
	}
	return string(cell)
}
