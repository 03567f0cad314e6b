package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	queryFile           string
	queryClassification string
)

var modelQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find member sets by classification",
	Long: `Find member sets whose classification matches a pattern.

A plain word (letters, digits, underscore) matches any classification
containing it. Anything else is used as a regular expression.

Examples:
  fers model query -f portal.json -c column
  fers model query -f portal.json -c '^column_(left|right)$'`,
	RunE: runModelQuery,
}

func init() {
	modelCmd.AddCommand(modelQueryCmd)

	modelQueryCmd.Flags().StringVarP(&queryFile, "file", "f", "", "Path to model document [required]")
	modelQueryCmd.Flags().StringVarP(&queryClassification, "classification", "c", "", "Classification word or pattern [required]")
	modelQueryCmd.MarkFlagRequired("file")
	modelQueryCmd.MarkFlagRequired("classification")
}

func runModelQuery(cmd *cobra.Command, args []string) error {
	m, err := loadModel(queryFile)
	if err != nil {
		return err
	}
	sets, err := m.MemberSetsByClassification(queryClassification)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %d member set(s) match %q\n\n", len(sets), queryClassification)
	if len(sets) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Set\tClassification\tMember\tStart\tEnd\tSection\tLength (m)\n")
	fmt.Fprintf(w, "  ───\t──────────────\t──────\t─────\t───\t───────\t──────────\n")
	for _, set := range sets {
		for _, mem := range set.Members {
			fmt.Fprintf(w, "  %d\t%s\t%d\t%d\t%d\t%s\t%.3f\n",
				set.ID, set.Classification, mem.ID, mem.StartNode.ID, mem.EndNode.ID, mem.Section.Name, mem.Length())
		}
	}
	w.Flush()
	fmt.Println()
	return nil
}
