package acs

import (
	"strconv"
	"strings"
)

// annotationValues are the sentinel estimates the ACS API uses in place of real numbers
// (too few samples, not applicable, top-coded median, ...). They are treated as missing.
var annotationValues = map[int64]bool{
	-111111111: true,
	-222222222: true,
	-333333333: true,
	-555555555: true,
	-666666666: true,
	-888888888: true,
	-999999999: true,
}

// ParseValue converts a raw API cell into int64, float64, nil (missing) or, if it is not
// numeric, the trimmed string.
func ParseValue(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if annotationValues[n] {
			return nil
		}
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f == float64(int64(f)) && annotationValues[int64(f)] {
			return nil
		}
		return f
	}
	return s
}
