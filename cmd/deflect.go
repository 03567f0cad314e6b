package cmd

import (
	"errors"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gofers/internal/deflection"
	"github.com/alexiusacademia/gofers/internal/diagram"
	"github.com/alexiusacademia/gofers/internal/export"
	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	deflectFile    string
	deflectResults string
	deflectCase    string
	deflectSet     int
	deflectMember  int
	deflectPoints  int
	deflectASCII   bool
	deflectOutput  string
	deflectScale   float64
)

var deflectCmd = &cobra.Command{
	Use:   "deflect",
	Short: "Reconstruct deflected member shapes from nodal results",
	Long: `Reconstruct the deflected shape of members from the nodal displacements
and rotations computed by the analysis engine.

Global results are transformed into each member's local axes and
interpolated along the member with cubic Hermite shape functions.

When the requested name is a load combination without results of its own,
its result is superposed from the load case results (first-order only).

Examples:
  fers deflect -f portal.json -r results.json --case Dead
  fers deflect -f portal.json -r results.json --case "NSCP 1: 1.4D" --set 3 --ascii
  fers deflect -f portal.json -r results.json --case Wind -o wind.png --scale 200`,
	RunE: runDeflect,
}

func init() {
	rootCmd.AddCommand(deflectCmd)

	deflectCmd.Flags().StringVarP(&deflectFile, "file", "f", "", "Path to model document [required]")
	deflectCmd.Flags().StringVarP(&deflectResults, "results", "r", "", "Engine result file (default: results in the model document)")
	deflectCmd.Flags().StringVarP(&deflectCase, "case", "c", "", "Load case or combination name [required]")
	deflectCmd.MarkFlagRequired("file")
	deflectCmd.MarkFlagRequired("case")

	deflectCmd.Flags().IntVar(&deflectSet, "set", 0, "Only this member set id")
	deflectCmd.Flags().IntVar(&deflectMember, "member", 0, "Only this member id")
	deflectCmd.Flags().IntVarP(&deflectPoints, "points", "n", 0, "Sample points per member (default from config)")

	// Diagram options
	deflectCmd.Flags().BoolVar(&deflectASCII, "ascii", false, "Show terminal deflection charts")
	deflectCmd.Flags().StringVarP(&deflectOutput, "output", "o", "", "Export deflected shape to file (png, svg, pdf)")
	deflectCmd.Flags().Float64Var(&deflectScale, "scale", 0, "Deflection magnification for the image (default from config)")
}

func runDeflect(cmd *cobra.Command, args []string) error {
	m, err := loadModel(deflectFile)
	if err != nil {
		return err
	}
	if deflectResults != "" {
		if err := export.LoadResultsFile(deflectResults, m); err != nil {
			return err
		}
	}
	res, err := caseResult(m, deflectCase)
	if err != nil {
		return err
	}

	points := deflectPoints
	if points == 0 {
		points = cfg.Deflection.SamplePoints
	}
	groups, err := deflectedShapes(m, res, deflectSet, deflectMember, points)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     DEFLECTED SHAPES - %s\n", res.Name)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	var all []*deflection.Shape
	for _, g := range groups {
		fmt.Printf("MEMBER SET %d (%s):\n", g.set.ID, orDash(g.set.Classification))
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Member\tLength (m)\tmax |δy| (mm)\tmax |δz| (mm)\tL/δ\n")
		fmt.Fprintf(w, "  ──────\t──────────\t─────────────\t─────────────\t───\n")
		for _, s := range g.shapes {
			dy, dz := s.MaxTransverse()
			ratio := "-"
			if d := math.Max(dy, dz); d > 0 {
				ratio = fmt.Sprintf("%.0f", s.Member.Length()/d)
			}
			fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%.3f\t%s\n", s.Member.ID, s.Member.Length(), dy*1000, dz*1000, ratio)
		}
		w.Flush()
		fmt.Println()

		if deflectASCII {
			fmt.Println(diagram.DrawDeflectionChart(fmt.Sprintf("Set %d / %s", g.set.ID, res.Name), g.shapes, 10))
		}
		all = append(all, g.shapes...)
	}

	if deflectOutput != "" {
		scale := deflectScale
		if scale == 0 {
			scale = cfg.Deflection.Scale
		}
		opts := diagram.Options{
			Title:    res.Name,
			Plane:    cfg.Diagram.Plane,
			WidthIn:  cfg.Diagram.WidthIn,
			HeightIn: cfg.Diagram.HeightIn,
		}
		if err := diagram.ExportModelDiagram(m, all, scale, opts, deflectOutput); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Printf("Diagram exported to: %s\n", deflectOutput)
	}
	return nil
}

type shapeGroup struct {
	set    *model.MemberSet
	shapes []*deflection.Shape
}

// caseResult looks name up in the results, falling back to superposing a
// load combination of that name.
func caseResult(m *model.Model, name string) (*model.CaseResult, error) {
	res, err := m.Results.Case(name)
	if err == nil {
		return res, nil
	}
	combo, ok := m.LoadCombinationByName(name)
	if !ok || !errors.Is(err, model.ErrResultsNotFound) {
		return nil, err
	}
	res, err = m.Results.Superpose(combo)
	if err != nil {
		return nil, err
	}
	logger.Info("combination result superposed from load cases", zap.String("combination", name))
	return res, nil
}

func deflectedShapes(m *model.Model, res *model.CaseResult, setID, memberID, points int) ([]shapeGroup, error) {
	var groups []shapeGroup
	for _, set := range m.MemberSets {
		if setID != 0 && set.ID != setID {
			continue
		}
		if memberID != 0 {
			for _, mem := range set.Members {
				if mem.ID != memberID {
					continue
				}
				s, err := deflection.ForMember(mem, res, points)
				if err != nil {
					return nil, err
				}
				return []shapeGroup{{set: set, shapes: []*deflection.Shape{s}}}, nil
			}
			continue
		}
		shapes, err := deflection.ForMemberSet(set, res, points)
		if err != nil {
			return nil, err
		}
		groups = append(groups, shapeGroup{set: set, shapes: shapes})
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no members selected (set %d, member %d)", setID, memberID)
	}
	return groups, nil
}
