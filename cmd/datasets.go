package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/acs-demographics/internal/acs"
	"github.com/sells-group/acs-demographics/internal/dataset"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List registered datasets and ACS dataset ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := dataset.NewRegistry(newACSClient(cfg))
		if err != nil {
			return err
		}
		formatDatasets(os.Stdout, reg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}

// formatDatasets writes registered datasets followed by the ACS families they can query.
func formatDatasets(out io.Writer, reg *dataset.Registry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTABLE\tGEOGRAPHIES")
	_, _ = fmt.Fprintln(w, "----\t-----\t-----------")
	for _, ds := range reg.All() {
		geos := make([]string, 0, len(ds.Geographies()))
		for _, g := range ds.Geographies() {
			geos = append(geos, g.String())
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", ds.Name(), ds.TableName(), strings.Join(geos, ", "))
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ACS DATASET\tPATH")
	_, _ = fmt.Fprintln(w, "-----------\t----")
	for _, id := range acs.FamilyIDs() {
		family, err := acs.ResolveFamily(id)
		if err != nil {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", id, family.Path())
	}
	_ = w.Flush()
}
