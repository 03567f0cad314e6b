package cmd

import (
	"github.com/alexiusacademia/gofers/internal/geometry"
	"github.com/alexiusacademia/gofers/internal/transform"
	"github.com/spf13/cobra"
)

var (
	translateFile   string
	translateOutput string
	translateDX     float64
	translateDY     float64
	translateDZ     float64
)

var modelTranslateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Move every node of a model by a vector",
	Long: `Create a translated copy of a model.

Every node, member and member set gets a new id. Sections, materials,
supports and hinges are shared. Reference nodes and reference members are
re-pointed at their translated counterparts.

Example:
  fers model translate -f portal.json --dy 6 -o portal-moved.json`,
	RunE: runModelTranslate,
}

func init() {
	modelCmd.AddCommand(modelTranslateCmd)

	modelTranslateCmd.Flags().StringVarP(&translateFile, "file", "f", "", "Path to model document [required]")
	modelTranslateCmd.Flags().StringVarP(&translateOutput, "output", "o", "", "Output document [required]")
	modelTranslateCmd.MarkFlagRequired("file")
	modelTranslateCmd.MarkFlagRequired("output")

	modelTranslateCmd.Flags().Float64Var(&translateDX, "dx", 0, "Translation along X (m)")
	modelTranslateCmd.Flags().Float64Var(&translateDY, "dy", 0, "Translation along Y (m)")
	modelTranslateCmd.Flags().Float64Var(&translateDZ, "dz", 0, "Translation along Z (m)")
}

func runModelTranslate(cmd *cobra.Command, args []string) error {
	m, err := loadModel(translateFile)
	if err != nil {
		return err
	}
	moved, err := transform.New(logger).Translate(m, geometry.Vec{X: translateDX, Y: translateDY, Z: translateDZ})
	if err != nil {
		return err
	}
	return saveModel(translateOutput, moved)
}
