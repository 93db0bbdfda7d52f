package geography

import (
	"strconv"
	"strings"
)

// DefaultStateFIPS is Colorado.
const DefaultStateFIPS = "08"

// NormalizeStateFIPS normalizes a state FIPS code to 2 digits with zero-padding.
func NormalizeStateFIPS(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if len(code) == 1 {
		return "0" + code
	}
	return code
}

// ValidStateFIPS reports whether code is a 1-2 digit state FIPS code in the range 01-78.
func ValidStateFIPS(code string) bool {
	code = NormalizeStateFIPS(code)
	if len(code) != 2 || code[0] < '0' || code[0] > '9' || code[1] < '0' || code[1] > '9' {
		return false
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 78
}
