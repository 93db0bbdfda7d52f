package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/acs-demographics/internal/acs"
	"github.com/sells-group/acs-demographics/internal/config"
	"github.com/sells-group/acs-demographics/internal/dataset"
	"github.com/sells-group/acs-demographics/internal/geography"
	"github.com/sells-group/acs-demographics/internal/report"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect a demographic dataset for a geography",
	Long: `Collect a demographic dataset for one geography type and print or save it.

Variables come from --vars-file (a YAML list of codes or a code: label mapping),
repeated --var CODE[=Label] flags, and --catalog-prefix, which selects every estimate
in the year's variable catalog whose code starts with the prefix and labels it.

Examples:
  acs-demos collect --geography zip5 --var B01003_001E="Total Population"
  acs-demos collect --geography state --acs-dataset acs1 --year 2021 --vars-file vars.yaml --format csv --out co.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parseCollectOpts(cmd)
		if err != nil {
			return err
		}
		return runCollect(cmd.Context(), cfg, newACSClient(cfg), opts, os.Stdout)
	},
}

func init() {
	collectCmd.Flags().String("dataset-name", "population", "registered dataset to collect")
	collectCmd.Flags().StringP("geography", "g", "zip5", "geography type: "+strings.Join(geography.Names(), ", "))
	collectCmd.Flags().String("acs-dataset", "", "ACS dataset id (default from config acs.dataset): "+strings.Join(acs.FamilyIDs(), ", "))
	collectCmd.Flags().Int("year", 0, "survey year (default from config acs.year)")
	collectCmd.Flags().String("state", "", "state FIPS code (default from config acs.state_fips)")
	collectCmd.Flags().StringArray("var", nil, "variable CODE or CODE=Label (repeatable)")
	collectCmd.Flags().String("vars-file", "", "YAML file with a variable list or code: label mapping")
	collectCmd.Flags().StringSlice("catalog-prefix", nil, "select catalog estimates by code prefix (e.g., B01001_)")
	collectCmd.Flags().String("format", "", "output format: table, json, csv, xlsx (default from config output.format)")
	collectCmd.Flags().StringP("out", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(collectCmd)
}

// collectOpts holds the parsed flags of the collect command.
type collectOpts struct {
	DatasetName     string
	Geography       geography.Type
	ACSDataset      string
	Year            int
	State           string
	Vars            []string
	VarsFile        string
	CatalogPrefixes []string
	Format          string
	Out             string
}

func parseCollectOpts(cmd *cobra.Command) (collectOpts, error) {
	geoStr, _ := cmd.Flags().GetString("geography")
	geo, err := geography.Parse(geoStr)
	if err != nil {
		return collectOpts{}, eris.Wrap(err, "collect")
	}

	opts := collectOpts{Geography: geo}
	opts.DatasetName, _ = cmd.Flags().GetString("dataset-name")
	opts.ACSDataset, _ = cmd.Flags().GetString("acs-dataset")
	opts.Year, _ = cmd.Flags().GetInt("year")
	opts.State, _ = cmd.Flags().GetString("state")
	opts.Vars, _ = cmd.Flags().GetStringArray("var")
	opts.VarsFile, _ = cmd.Flags().GetString("vars-file")
	opts.CatalogPrefixes, _ = cmd.Flags().GetStringSlice("catalog-prefix")
	opts.Format, _ = cmd.Flags().GetString("format")
	opts.Out, _ = cmd.Flags().GetString("out")
	return opts, nil
}

// withDefaults fills unset options from configuration.
func (o collectOpts) withDefaults(c *config.Config) collectOpts {
	if o.ACSDataset == "" {
		o.ACSDataset = c.ACS.Dataset
	}
	if o.Year == 0 {
		o.Year = c.ACS.Year
	}
	if o.State == "" {
		o.State = c.ACS.StateFIPS
	}
	if o.Format == "" {
		o.Format = c.Output.Format
	}
	return o
}

func runCollect(ctx context.Context, c *config.Config, client *acs.Client, opts collectOpts, stdout io.Writer) error {
	opts = opts.withDefaults(c)
	runID := uuid.New().String()
	log := zap.L().With(zap.String("command", "collect"), zap.String("run_id", runID))

	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	reg, err := dataset.NewRegistry(client)
	if err != nil {
		return err
	}
	ds, err := reg.Get(opts.DatasetName)
	if err != nil {
		return err
	}

	sel, err := buildSelection(ctx, client, opts)
	if err != nil {
		return err
	}

	log.Info("collecting dataset",
		zap.String("dataset", ds.Name()),
		zap.String("geography", opts.Geography.String()),
		zap.String("acs_dataset", opts.ACSDataset),
		zap.Int("year", opts.Year),
		zap.Int("variables", sel.Len()),
	)

	result, err := ds.CollectData(ctx, opts.Geography, dataset.Config{
		APIKey:    c.ACS.APIKey,
		Year:      opts.Year,
		Dataset:   opts.ACSDataset,
		StateFIPS: opts.State,
		Variables: sel,
	})
	if err != nil {
		return eris.Wrapf(err, "collect %s", ds.Name())
	}

	for _, name := range report.TableNames(result) {
		log.Info("collected table", zap.String("table", name), zap.Int("rows", result[name].Len()))
	}

	if opts.Out != "" {
		if err := report.WriteFile(opts.Out, format, result); err != nil {
			return err
		}
		log.Info("wrote output", zap.String("path", opts.Out), zap.String("format", string(format)))
		return nil
	}
	if format == report.FormatXLSX {
		return eris.New("collect: xlsx output requires --out")
	}
	return report.Write(stdout, format, result)
}

// buildSelection merges the variables file, --var flags and catalog prefixes, in that order.
func buildSelection(ctx context.Context, client *acs.Client, opts collectOpts) (dataset.VariableSelection, error) {
	var sel dataset.VariableSelection

	if opts.VarsFile != "" {
		data, err := os.ReadFile(opts.VarsFile)
		if err != nil {
			return sel, eris.Wrapf(err, "collect: read vars file %s", opts.VarsFile)
		}
		sel, err = dataset.ParseVariablesYAML(data)
		if err != nil {
			return sel, eris.Wrapf(err, "collect: parse vars file %s", opts.VarsFile)
		}
	}

	if len(opts.Vars) > 0 {
		args, err := dataset.ParseVariableArgs(opts.Vars)
		if err != nil {
			return sel, err
		}
		sel = mergeSelection(sel, args)
	}

	if len(opts.CatalogPrefixes) > 0 {
		family, err := acs.ResolveFamily(opts.ACSDataset)
		if err != nil {
			return sel, err
		}
		catalog, err := client.Variables(ctx, opts.Year, family)
		if err != nil {
			return sel, eris.Wrap(err, "collect: load variable catalog")
		}
		codes := catalog.Filter(acs.Filter{Prefixes: opts.CatalogPrefixes, EstimatesOnly: true})
		if len(codes) == 0 {
			return sel, eris.Errorf("collect: no catalog variables match %v", opts.CatalogPrefixes)
		}
		labels := catalog.Mapping(codes)
		for _, code := range codes {
			sel = sel.Add(code, labels[code])
		}
	}

	if sel.Len() == 0 {
		return sel, eris.Wrap(dataset.ErrInvalidConfig, "collect: no variables (use --var, --vars-file or --catalog-prefix)")
	}
	return sel, nil
}

// mergeSelection appends other to sel. Labels from other win.
func mergeSelection(sel, other dataset.VariableSelection) dataset.VariableSelection {
	mapping := other.Mapping()
	for _, code := range other.Codes() {
		sel = sel.Add(code, mapping[code])
	}
	return sel
}
