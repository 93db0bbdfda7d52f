package dataset

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/acs-demographics/internal/geography"
)

// Config carries everything one collection needs. It is built per query and not mutated.
type Config struct {
	APIKey    string
	Year      int
	Dataset   string // ACS family identifier, e.g. "acs5"
	StateFIPS string // defaults to geography.DefaultStateFIPS
	Variables VariableSelection
}

// State returns the normalized state FIPS code the query is scoped to.
func (c Config) State() string {
	if c.StateFIPS == "" {
		return geography.DefaultStateFIPS
	}
	return geography.NormalizeStateFIPS(c.StateFIPS)
}

// Validate checks the fields that do not depend on the dataset implementation.
func (c Config) Validate() error {
	if c.Year < 2005 {
		return eris.Wrapf(ErrInvalidConfig, "dataset: year %d is before the first ACS release (2005)", c.Year)
	}
	if !geography.ValidStateFIPS(c.State()) {
		return eris.Wrapf(ErrInvalidConfig, "dataset: state FIPS %q is not valid", c.StateFIPS)
	}
	if c.Variables.Len() == 0 {
		return eris.Wrap(ErrInvalidConfig, "dataset: no variables selected")
	}
	return nil
}
