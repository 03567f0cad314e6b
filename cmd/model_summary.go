package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gofers/internal/diagram"
	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/spf13/cobra"
)

var (
	summaryFile          string
	summaryMaterialIndex string
)

var modelSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print an overview of a model document",
	Long: `Print the member sets, shared entities and load data of a model.

With --material-index, the section/material pairs of the model are matched
against an external material table, a JSON list of {"name", "index"}
entries. Materials without an entry are reported and skipped.

Examples:
  fers model summary -f portal.json
  fers model summary -f portal.yaml --material-index materials.json`,
	RunE: runModelSummary,
}

func init() {
	modelCmd.AddCommand(modelSummaryCmd)

	modelSummaryCmd.Flags().StringVarP(&summaryFile, "file", "f", "", "Path to model document [required]")
	modelSummaryCmd.MarkFlagRequired("file")
	modelSummaryCmd.Flags().StringVar(&summaryMaterialIndex, "material-index", "", "JSON material table to reconcile against")
}

func runModelSummary(cmd *cobra.Command, args []string) error {
	m, err := loadModel(summaryFile)
	if err != nil {
		return err
	}
	s := m.Summary()

	fmt.Println()
	fmt.Print(diagram.DrawSummaryBox("MODEL SUMMARY", []string{
		fmt.Sprintf("Member sets:        %d", len(s.MemberSets)),
		fmt.Sprintf("Members:            %d", m.NumberOfElements()),
		fmt.Sprintf("Nodes:              %d", m.NumberOfNodes()),
		fmt.Sprintf("Load cases:         %d", len(s.LoadCases)),
		fmt.Sprintf("Load combinations:  %d", len(s.LoadCombinations)),
		fmt.Sprintf("Imperfection cases: %d", len(m.ImperfectionCases)),
	}))
	fmt.Println()

	fmt.Println("MEMBER SETS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tClassification\tMembers\tLength (m)\n")
	fmt.Fprintf(w, "  ──\t──────────────\t───────\t──────────\n")
	for _, set := range m.MemberSets {
		fmt.Fprintf(w, "  %d\t%s\t%d\t%.3f\n", set.ID, orDash(set.Classification), len(set.Members), set.Length())
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SECTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tMaterial\tA (m²)\tIy (m⁴)\tIz (m⁴)\n")
	fmt.Fprintf(w, "  ────\t────────\t──────\t───────\t───────\n")
	for _, sec := range m.UniqueSections() {
		fmt.Fprintf(w, "  %s\t%s\t%.4e\t%.4e\t%.4e\n", sec.Name, sec.Material.Name, sec.Area, sec.IY, sec.IZ)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("NODAL SUPPORTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tDisplacement\tRotation\tNodes\n")
	fmt.Fprintf(w, "  ──\t────────────\t────────\t─────\n")
	for _, d := range m.NodalSupportDetails() {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", d.Support.ID,
			conditionString(d.Support.Displacement), conditionString(d.Support.Rotation), joinInts(d.NodeIDs))
	}
	w.Flush()
	fmt.Println()

	if hinges := m.UniqueMemberHinges(); len(hinges) > 0 {
		fmt.Println("MEMBER HINGES:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  ID\tType\tReleased\n")
		fmt.Fprintf(w, "  ──\t────\t────────\n")
		for _, h := range hinges {
			fmt.Fprintf(w, "  %d\t%s\t%s\n", h.ID, orDash(h.Type), releaseString(h))
		}
		w.Flush()
		fmt.Println()
	}

	fmt.Println("LOAD CASES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tName\tNodal loads\tLine loads\n")
	fmt.Fprintf(w, "  ──\t────\t───────────\t──────────\n")
	for _, lc := range m.LoadCases {
		fmt.Fprintf(w, "  %d\t%s\t%d\t%d\n", lc.ID, lc.Name, len(lc.NodalLoads), len(lc.LineLoads))
	}
	w.Flush()
	fmt.Println()

	if len(m.LoadCombinations) > 0 {
		fmt.Println("LOAD COMBINATIONS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  ID\tName\tSituation\tFactors\n")
		fmt.Fprintf(w, "  ──\t────\t─────────\t───────\n")
		for _, c := range m.LoadCombinations {
			var parts []string
			for _, f := range c.Factors {
				parts = append(parts, fmt.Sprintf("%g·%s", f.Factor, f.LoadCase.Name))
			}
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", c.ID, c.Name, orDash(c.Situation), strings.Join(parts, " + "))
		}
		w.Flush()
		fmt.Printf("  Situations: %s\n", strings.Join(m.UniqueSituations(), ", "))
		fmt.Println()
	}

	if summaryMaterialIndex != "" {
		data, err := os.ReadFile(summaryMaterialIndex)
		if err != nil {
			return err
		}
		var index []model.IndexedMaterial
		if err := json.Unmarshal(data, &index); err != nil {
			return fmt.Errorf("material index %s: %w", summaryMaterialIndex, err)
		}
		combos, unmatched := m.SectionMaterialCombinations(index, logger)

		fmt.Println("SECTION / MATERIAL INDEX:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Section\tMaterial\tIndex\n")
		fmt.Fprintf(w, "  ───────\t────────\t─────\n")
		for _, c := range combos {
			fmt.Fprintf(w, "  %s\t%s\t%d\n", c.Section, c.Material, c.MaterialIndex)
		}
		w.Flush()
		if len(unmatched) > 0 {
			fmt.Printf("  ⚠ Unmatched materials: %s\n", strings.Join(unmatched, ", "))
		}
		fmt.Println()
	}
	return nil
}

func conditionString(c model.Conditions) string {
	one := func(c model.Condition) string {
		switch c.Kind {
		case model.Fixed:
			return "F"
		case model.Spring:
			return fmt.Sprintf("k=%g", c.Stiffness)
		}
		return "-"
	}
	return fmt.Sprintf("%s/%s/%s", one(c.X), one(c.Y), one(c.Z))
}

func releaseString(h *model.MemberHinge) string {
	var out []string
	for _, r := range []struct {
		name string
		rel  model.Release
	}{{"Vx", h.Vx}, {"Vy", h.Vy}, {"Vz", h.Vz}, {"Mx", h.Mx}, {"My", h.My}, {"Mz", h.Mz}} {
		if r.rel.Released {
			out = append(out, r.name)
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, " ")
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
