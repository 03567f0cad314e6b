package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofers/internal/deflection"
	"github.com/alexiusacademia/gofers/internal/diagram"
	"github.com/alexiusacademia/gofers/internal/export"
	"github.com/spf13/cobra"
)

var (
	plotFile    string
	plotResults string
	plotCase    string
	plotPlane   string
	plotOutput  string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Draw a model projection",
	Long: `Draw the members of a model projected on a global plane, with supported
nodes marked and node ids labelled. With --case, the deflected shape of
every member is overlaid.

Examples:
  fers plot -f portal.json -o portal.png
  fers plot -f hall.yaml --plane xy -o plan.svg
  fers plot -f portal.json -r results.json --case Dead -o dead.png`,
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVarP(&plotFile, "file", "f", "", "Path to model document [required]")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "Image file (png, svg, pdf) [required]")
	plotCmd.MarkFlagRequired("file")
	plotCmd.MarkFlagRequired("output")

	plotCmd.Flags().StringVar(&plotPlane, "plane", "", "Projection plane: xy, xz or yz (default from config)")
	plotCmd.Flags().StringVarP(&plotResults, "results", "r", "", "Engine result file")
	plotCmd.Flags().StringVarP(&plotCase, "case", "c", "", "Overlay the deflected shape of this case")
}

func runPlot(cmd *cobra.Command, args []string) error {
	m, err := loadModel(plotFile)
	if err != nil {
		return err
	}

	var shapes []*deflection.Shape
	title := "Frame Model"
	if plotCase != "" {
		if plotResults != "" {
			if err := export.LoadResultsFile(plotResults, m); err != nil {
				return err
			}
		}
		res, err := caseResult(m, plotCase)
		if err != nil {
			return err
		}
		groups, err := deflectedShapes(m, res, 0, 0, cfg.Deflection.SamplePoints)
		if err != nil {
			return err
		}
		for _, g := range groups {
			shapes = append(shapes, g.shapes...)
		}
		title = res.Name
	}

	plane := plotPlane
	if plane == "" {
		plane = cfg.Diagram.Plane
	}
	opts := diagram.Options{Title: title, Plane: plane, WidthIn: cfg.Diagram.WidthIn, HeightIn: cfg.Diagram.HeightIn}
	if err := diagram.ExportModelDiagram(m, shapes, cfg.Deflection.Scale, opts, plotOutput); err != nil {
		return err
	}
	fmt.Printf("Diagram exported to: %s\n", plotOutput)
	return nil
}
