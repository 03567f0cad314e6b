package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gofers/internal/diagram"
	"github.com/alexiusacademia/gofers/internal/section"
	"github.com/spf13/cobra"
)

var (
	sectionPropsFile   string
	sectionPropsDepths []float64
	sectionPropsOutput string
)

var sectionPropsCmd = &cobra.Command{
	Use:   "props",
	Short: "Show geometric and model properties of a section",
	Long: `Calculate the geometric properties of a polygonal section and the
values written to a model document (SI units).

Examples:
  fers section props --file t-beam.json
  fers section props -f t-beam.json --depth 50 --depth 250 -o t-beam.svg`,
	RunE: runSectionProps,
}

func init() {
	sectionCmd.AddCommand(sectionPropsCmd)

	sectionPropsCmd.Flags().StringVarP(&sectionPropsFile, "file", "f", "", "Path to section JSON file [required]")
	sectionPropsCmd.MarkFlagRequired("file")

	sectionPropsCmd.Flags().Float64SliceVar(&sectionPropsDepths, "depth", nil, "Report the width at this depth from the top (mm)")
	sectionPropsCmd.Flags().StringVarP(&sectionPropsOutput, "output", "o", "", "Export section drawing to file (png, svg, pdf)")
}

func runSectionProps(cmd *cobra.Command, args []string) error {
	sec, err := section.LoadFromFile(sectionPropsFile)
	if err != nil {
		return fmt.Errorf("loading section: %w", err)
	}
	props := sec.CalculateProperties()
	ms, err := sec.ToModelSection()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SECTION PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Printf("  Section: %s\n", sec.Name)
	if sec.Description != "" {
		fmt.Printf("  Description: %s\n", sec.Description)
	}
	fmt.Println()

	fmt.Println("SECTION GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Width (max):\t%.0f mm\n", props.Width)
	fmt.Fprintf(w, "  Height:\t%.0f mm\n", props.Height)
	fmt.Fprintf(w, "  Gross Area:\t%.0f mm²\n", props.Area)
	fmt.Fprintf(w, "  Centroid (x, y):\t(%.1f, %.1f) mm\n", props.CentroidX, props.CentroidY)
	fmt.Fprintf(w, "  Iy (horizontal axis):\t%.4e mm⁴\n", props.IY)
	fmt.Fprintf(w, "  Iz (vertical axis):\t%.4e mm⁴\n", props.IZ)
	fmt.Fprintf(w, "  J (approx.):\t%.4e mm⁴\n", props.J)
	fmt.Fprintf(w, "  Vertices:\t%d points\n", len(sec.Vertices))
	w.Flush()
	fmt.Println()

	if len(sectionPropsDepths) > 0 {
		fmt.Println("WIDTH AT DEPTH:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Depth (mm)\tWidth (mm)\n")
		fmt.Fprintf(w, "  ──────────\t──────────\n")
		for _, d := range sectionPropsDepths {
			fmt.Fprintf(w, "  %.1f\t%.1f\n", d, sec.WidthAtDepth(d))
		}
		w.Flush()
		fmt.Println()
	}

	fmt.Println("MODEL SECTION (SI):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Material:\t%s\n", ms.Material.Name)
	fmt.Fprintf(w, "  E:\t%.4e Pa\n", ms.Material.ElasticModulus)
	fmt.Fprintf(w, "  G:\t%.4e Pa\n", ms.Material.ShearModulus)
	fmt.Fprintf(w, "  Density:\t%.0f kg/m³\n", ms.Material.Density)
	fmt.Fprintf(w, "  A:\t%.6e m²\n", ms.Area)
	fmt.Fprintf(w, "  Iy:\t%.6e m⁴\n", ms.IY)
	fmt.Fprintf(w, "  Iz:\t%.6e m⁴\n", ms.IZ)
	fmt.Fprintf(w, "  J:\t%.6e m⁴\n", ms.J)
	fmt.Fprintf(w, "  h x b:\t%.3f x %.3f m\n", ms.H, ms.B)
	w.Flush()
	fmt.Println()

	if sectionPropsOutput != "" {
		if err := diagram.ExportSectionDiagram(sec, sectionPropsOutput); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Printf("Diagram exported to: %s\n", sectionPropsOutput)
	}
	return nil
}
