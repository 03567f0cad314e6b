package cmd

import (
	"github.com/spf13/cobra"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Polygonal cross-section properties",
	Long: `Compute properties of solid cross-sections defined in JSON files and
assign them to the member sets of a model.

The outline is a simple polygon in mm. Exactly one of fc (concrete) or
fy (steel), in MPa, selects the NSCP material preset.

Subcommands:
  props   - Area, centroid, second moments and torsion constant
  assign  - Use the section for member sets matching a classification

Example JSON file structure:
{
  "name": "T-Beam 600x500",
  "fc": 28,
  "vertices": [
    {"x": 0, "y": 0},
    {"x": 300, "y": 0},
    {"x": 300, "y": 400},
    {"x": 600, "y": 400},
    {"x": 600, "y": 500},
    {"x": 0, "y": 500}
  ]
}`,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
}
