package dataset

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/acs-demographics/internal/acs"
	"github.com/sells-group/acs-demographics/internal/geography"
)

// PopulationTableName is the key population results are stored under.
const PopulationTableName = "Population Demos"

// PopulationData collects ACS population, race/ethnicity and income variables for ZIP code
// tabulation areas or a whole state.
type PopulationData struct {
	client *acs.Client
}

// NewPopulationData returns a PopulationData that queries through client.
func NewPopulationData(client *acs.Client) (*PopulationData, error) {
	if client == nil {
		return nil, eris.New("dataset: population requires an ACS client")
	}
	return &PopulationData{client: client}, nil
}

// Name implements DataSet.
func (d *PopulationData) Name() string { return "population" }

// TableName implements DataSet.
func (d *PopulationData) TableName() string { return PopulationTableName }

// Geographies implements DataSet.
func (d *PopulationData) Geographies() []geography.Type {
	return []geography.Type{geography.Zip5, geography.State}
}

// CollectData implements DataSet. Errors from the ACS request are returned unchanged so
// callers can inspect transport failures themselves.
func (d *PopulationData) CollectData(ctx context.Context, geo geography.Type, cfg Config) (QueryResult, error) {
	family, err := acs.ResolveFamily(cfg.Dataset)
	if err != nil {
		return nil, err
	}

	q, err := d.buildQuery(geo, family, cfg)
	if err != nil {
		return nil, err
	}

	log := zap.L().With(
		zap.String("dataset", d.Name()),
		zap.String("geography", geo.String()),
		zap.String("family", family.String()),
		zap.Int("year", cfg.Year),
	)
	log.Info("collecting ACS data", zap.Int("variables", cfg.Variables.Len()))

	rows, err := d.client.Get(ctx, q)
	if err != nil {
		return nil, err
	}

	numeric := make(map[string]bool, cfg.Variables.Len())
	for _, code := range cfg.Variables.Codes() {
		numeric[code] = true
	}

	table := TableFromRows(rows, numeric).Rename(DefaultNameMapping().Merge(cfg.Variables.Mapping()))
	log.Info("collected ACS data", zap.Int("rows", table.Len()))

	return QueryResult{PopulationTableName: table}, nil
}

// buildQuery validates cfg and shapes the request for geo.
func (d *PopulationData) buildQuery(geo geography.Type, family acs.Family, cfg Config) (acs.Query, error) {
	var scope acs.Scope
	switch geo {
	case geography.Zip5:
		scope = acs.ZCTAInState(cfg.State())
	case geography.State:
		scope = acs.StateScope(cfg.State())
	default:
		return acs.Query{}, eris.Wrapf(ErrUnsupportedGeography, "dataset: geography %q is not supported by %s (supported: %s)",
			geo.String(), d.Name(), strings.Join(geographyNames(d.Geographies()), ", "))
	}

	if err := cfg.Validate(); err != nil {
		return acs.Query{}, err
	}

	return acs.Query{
		Year:   cfg.Year,
		Family: family,
		Fields: RequestFields(cfg.Variables),
		Scope:  scope,
		Key:    cfg.APIKey,
	}, nil
}

// RequestFields returns the "get" list for a selection: NAME followed by every code.
func RequestFields(sel VariableSelection) []string {
	codes := sel.Codes()
	fields := make([]string, 0, len(codes)+1)
	fields = append(fields, acs.ColumnName)
	for _, c := range codes {
		if c == acs.ColumnName {
			continue
		}
		fields = append(fields, c)
	}
	return fields
}

func geographyNames(types []geography.Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}
