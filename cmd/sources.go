package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"data-extractor/feature/pipeline"

	"github.com/spf13/cobra"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List supported source kinds and their parameters",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tFAMILY\tREQUIRED\tHEADERS")
		for _, k := range pipeline.Kinds() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k.Name, k.Family, strings.Join(k.Required, ", "), k.Headers)
		}
		_ = w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(sourcesCmd)
}
