// Package geography defines the geographic aggregation levels demographic data can be
// collected for, plus state FIPS helpers.
package geography

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Type is a geographic aggregation level.
type Type int

const (
	Zip5 Type = iota + 1 // 5-digit ZIP code tabulation areas
	Zip9                 // ZIP+4
	County
	DenverMetro
	State
)

// All returns every geography type in declaration order.
func All() []Type {
	return []Type{Zip5, Zip9, County, DenverMetro, State}
}

// String returns the human-readable geography name.
func (t Type) String() string {
	switch t {
	case Zip5:
		return "Zip5"
	case Zip9:
		return "Zip9"
	case County:
		return "County"
	case DenverMetro:
		return "Denver Metro"
	case State:
		return "State"
	default:
		return "unknown"
	}
}

// Parse converts a name like "zip5", "County" or "denver-metro" into a Type.
func Parse(s string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)

	switch key {
	case "zip5", "zip", "zcta":
		return Zip5, nil
	case "zip9":
		return Zip9, nil
	case "county":
		return County, nil
	case "denvermetro", "metro":
		return DenverMetro, nil
	case "state":
		return State, nil
	default:
		return 0, eris.Errorf("unknown geography: %q (valid: %s)", s, strings.Join(Names(), ", "))
	}
}

// Names returns the display names of all geography types.
func Names() []string {
	all := All()
	out := make([]string, len(all))
	for i, t := range all {
		out[i] = t.String()
	}
	return out
}
