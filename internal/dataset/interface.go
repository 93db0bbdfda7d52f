// Package dataset defines the demographic dataset contract and its ACS-backed implementations.
package dataset

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/acs-demographics/internal/acs"
	"github.com/sells-group/acs-demographics/internal/geography"
)

var (
	// ErrInvalidDataset is returned for dataset identifiers that are not ACS families.
	ErrInvalidDataset = acs.ErrInvalidDataset

	// ErrUnsupportedGeography is returned when a dataset cannot be collected for a geography.
	ErrUnsupportedGeography = eris.New("unsupported geography")

	// ErrInvalidConfig is returned for configuration that cannot produce a valid query.
	ErrInvalidConfig = eris.New("invalid config")
)

// QueryResult maps a logical table name to its table.
type QueryResult map[string]*Table

// DataSet is implemented by every demographic dataset.
type DataSet interface {
	// Name returns the registry identifier (e.g., "population").
	Name() string

	// TableName returns the key CollectData stores its table under.
	TableName() string

	// Geographies returns the geography types CollectData supports.
	Geographies() []geography.Type

	// CollectData queries the upstream API once and returns the reshaped table.
	// Configuration problems fail before any request is made.
	CollectData(ctx context.Context, geo geography.Type, cfg Config) (QueryResult, error)
}
