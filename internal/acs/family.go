// Package acs is a client for the American Community Survey endpoints of the Census Data API.
package acs

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ErrInvalidDataset is returned when a dataset identifier is not a known ACS family.
var ErrInvalidDataset = eris.New("invalid dataset")

// Family identifies an ACS survey product, e.g. the 5-year detailed tables or the 1-year
// data profiles.
type Family string

const (
	ACS5   Family = "acs5"
	ACS3   Family = "acs3"
	ACS1   Family = "acs1"
	ACS5DP Family = "acs5dp"
	ACS3DP Family = "acs3dp"
	ACS1DP Family = "acs1dp"
	ACS5ST Family = "acs5st"
)

// families is ordered; the order shows up in error messages.
var families = []struct {
	family Family
	path   string
}{
	{ACS5, "acs/acs5"},
	{ACS3, "acs/acs3"},
	{ACS1, "acs/acs1"},
	{ACS5DP, "acs/acs5/profile"},
	{ACS3DP, "acs/acs3/profile"},
	{ACS1DP, "acs/acs1/profile"},
	{ACS5ST, "acs/acs5/subject"},
}

// FamilyIDs returns every valid dataset identifier.
func FamilyIDs() []string {
	out := make([]string, len(families))
	for i, f := range families {
		out[i] = string(f.family)
	}
	return out
}

// ResolveFamily maps a dataset identifier such as "acs5dp" to its Family.
func ResolveFamily(id string) (Family, error) {
	for _, f := range families {
		if string(f.family) == id {
			return f.family, nil
		}
	}
	return "", eris.Wrapf(ErrInvalidDataset, "acs: %q is not one of %s", id, strings.Join(FamilyIDs(), ", "))
}

// Path returns the API path below the year segment, e.g. "acs/acs5/profile".
func (f Family) Path() string {
	for _, e := range families {
		if e.family == f {
			return e.path
		}
	}
	return ""
}

// String implements fmt.Stringer.
func (f Family) String() string { return string(f) }
