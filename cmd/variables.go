package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/acs-demographics/internal/acs"
	"github.com/sells-group/acs-demographics/internal/config"
)

var variablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "List variables from an ACS dataset catalog",
	Long: `List the variables a dataset publishes for a year, filtered by code prefix.

Puerto Rico tables (groups ending in PR) are skipped unless --include-pr is set.
The output can be fed back to collect with --format yaml and --vars-file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parseVariablesOpts(cmd)
		if err != nil {
			return err
		}
		return runVariables(cmd.Context(), newACSClient(cfg), opts.withDefaults(cfg), os.Stdout)
	},
}

func init() {
	variablesCmd.Flags().String("acs-dataset", "", "ACS dataset id (default from config acs.dataset)")
	variablesCmd.Flags().Int("year", 0, "survey year (default from config acs.year)")
	variablesCmd.Flags().StringSlice("prefix", nil, "code prefixes to keep (e.g., B01001_,B19013_)")
	variablesCmd.Flags().Bool("include-pr", false, "include Puerto Rico tables")
	variablesCmd.Flags().Bool("estimates-only", true, "drop margins of error and annotation codes")
	variablesCmd.Flags().String("format", "table", "output format: table, csv, json, yaml")
	rootCmd.AddCommand(variablesCmd)
}

type variablesOpts struct {
	ACSDataset    string
	Year          int
	Prefixes      []string
	IncludePR     bool
	EstimatesOnly bool
	Format        string
}

func parseVariablesOpts(cmd *cobra.Command) (variablesOpts, error) {
	var opts variablesOpts
	opts.ACSDataset, _ = cmd.Flags().GetString("acs-dataset")
	opts.Year, _ = cmd.Flags().GetInt("year")
	opts.Prefixes, _ = cmd.Flags().GetStringSlice("prefix")
	opts.IncludePR, _ = cmd.Flags().GetBool("include-pr")
	opts.EstimatesOnly, _ = cmd.Flags().GetBool("estimates-only")
	opts.Format, _ = cmd.Flags().GetString("format")
	return opts, nil
}

func (o variablesOpts) withDefaults(c *config.Config) variablesOpts {
	if o.ACSDataset == "" {
		o.ACSDataset = c.ACS.Dataset
	}
	if o.Year == 0 {
		o.Year = c.ACS.Year
	}
	return o
}

// variableRow is one listed catalog entry.
type variableRow struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	Concept string `json:"concept"`
}

func runVariables(ctx context.Context, client *acs.Client, opts variablesOpts, out io.Writer) error {
	family, err := acs.ResolveFamily(opts.ACSDataset)
	if err != nil {
		return err
	}

	catalog, err := client.Variables(ctx, opts.Year, family)
	if err != nil {
		return eris.Wrap(err, "variables: load catalog")
	}

	codes := catalog.Filter(acs.Filter{
		Prefixes:          opts.Prefixes,
		IncludePuertoRico: opts.IncludePR,
		EstimatesOnly:     opts.EstimatesOnly,
	})
	zap.L().Debug("filtered catalog",
		zap.String("acs_dataset", string(family)),
		zap.Int("year", opts.Year),
		zap.Int("total", len(catalog)),
		zap.Int("matched", len(codes)),
	)

	labels := catalog.Mapping(codes)
	rows := make([]variableRow, len(codes))
	for i, code := range codes {
		rows[i] = variableRow{
			Code:    code,
			Label:   labels[code],
			Concept: acs.CleanConcept(catalog[code].Concept),
		}
	}

	return writeVariables(out, opts.Format, rows)
}

func writeVariables(out io.Writer, format string, rows []variableRow) error {
	switch format {
	case "table":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "CODE\tLABEL\tCONCEPT")
		_, _ = fmt.Fprintln(w, "----\t-----\t-------")
		for _, r := range rows {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.Code, r.Label, r.Concept)
		}
		return eris.Wrap(w.Flush(), "variables: write table")
	case "csv":
		cw := csv.NewWriter(out)
		if err := cw.Write([]string{"code", "label", "concept"}); err != nil {
			return eris.Wrap(err, "variables: write CSV header")
		}
		for _, r := range rows {
			if err := cw.Write([]string{r.Code, r.Label, r.Concept}); err != nil {
				return eris.Wrap(err, "variables: write CSV row")
			}
		}
		cw.Flush()
		return eris.Wrap(cw.Error(), "variables: flush CSV")
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(rows), "variables: encode json")
	case "yaml":
		// An ordered code: label mapping, readable by collect --vars-file.
		doc := &yaml.Node{Kind: yaml.MappingNode}
		for _, r := range rows {
			doc.Content = append(doc.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: r.Code},
				&yaml.Node{Kind: yaml.ScalarNode, Value: r.Label},
			)
		}
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(doc); err != nil {
			return eris.Wrap(err, "variables: encode yaml")
		}
		return eris.Wrap(enc.Close(), "variables: encode yaml")
	default:
		return eris.Errorf("variables: unsupported format %q", format)
	}
}
