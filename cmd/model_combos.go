package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/alexiusacademia/gofers/internal/nscp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	combosFile   string
	combosOutput string

	// Load case names per load type
	combosDead       []string
	combosLive       []string
	combosRoof       []string
	combosWind       []string
	combosEarthquake []string
	combosRain       []string

	combosSimplified bool
)

var modelCombosCmd = &cobra.Command{
	Use:   "combos",
	Short: "Add NSCP load combinations to a model",
	Long: `Create load combinations from NSCP 2015 Section 203.3.1 templates.

Assign the model's load cases to load types by name. A load type with no
case drops out of every template; templates that reduce to the same
factors are created once.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Dead and wind cases of the example portal
  fers model combos -f portal.json --dead Dead --wind Wind -o portal-uls.json

  # Gravity only (1.4D and 1.2D+1.6L)
  fers model combos -f hall.yaml --dead Dead --live Live --simplified -o hall-uls.yaml`,
	RunE: runModelCombos,
}

func init() {
	modelCmd.AddCommand(modelCombosCmd)

	modelCombosCmd.Flags().StringVarP(&combosFile, "file", "f", "", "Path to model document [required]")
	modelCombosCmd.Flags().StringVarP(&combosOutput, "output", "o", "", "Output document [required]")
	modelCombosCmd.MarkFlagRequired("file")
	modelCombosCmd.MarkFlagRequired("output")

	// Load case flags
	modelCombosCmd.Flags().StringSliceVarP(&combosDead, "dead", "d", nil, "Dead load case names")
	modelCombosCmd.Flags().StringSliceVarP(&combosLive, "live", "l", nil, "Live load case names")
	modelCombosCmd.Flags().StringSliceVarP(&combosRoof, "roof", "r", nil, "Roof live load case names")
	modelCombosCmd.Flags().StringSliceVarP(&combosWind, "wind", "w", nil, "Wind load case names")
	modelCombosCmd.Flags().StringSliceVarP(&combosEarthquake, "earthquake", "e", nil, "Earthquake load case names")
	modelCombosCmd.Flags().StringSliceVarP(&combosRain, "rain", "R", nil, "Rain load case names")

	// Options
	modelCombosCmd.Flags().BoolVarP(&combosSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func runModelCombos(cmd *cobra.Command, args []string) error {
	m, err := loadModel(combosFile)
	if err != nil {
		return err
	}

	cases := make(map[nscp.LoadType][]*model.LoadCase)
	for t, names := range map[nscp.LoadType][]string{
		nscp.Dead:       combosDead,
		nscp.Live:       combosLive,
		nscp.Roof:       combosRoof,
		nscp.Wind:       combosWind,
		nscp.Earthquake: combosEarthquake,
		nscp.Rain:       combosRain,
	} {
		for _, name := range names {
			lc, ok := m.LoadCaseByName(name)
			if !ok {
				return fmt.Errorf("load case %q (%s) not found in %s", name, t, combosFile)
			}
			cases[t] = append(cases[t], lc)
		}
	}

	// Select which combinations to use
	templates := nscp.LoadCombinations
	if combosSimplified {
		templates = nscp.SimplifiedCombinations
	}

	created, err := nscp.Apply(m, templates, cases)
	if err != nil {
		return err
	}
	logger.Info("load combinations created", zap.Int("count", len(created)))

	// Print header
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 LOAD COMBINATIONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("LOAD CASES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, t := range nscp.LoadTypes {
		if len(cases[t]) == 0 {
			continue
		}
		var names []string
		for _, lc := range cases[t] {
			names = append(names, lc.Name)
		}
		fmt.Fprintf(w, "  %s:\t%s\n", t, strings.Join(names, ", "))
	}
	w.Flush()
	fmt.Println()

	fmt.Println("LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tCombination\tFactors\n")
	fmt.Fprintf(w, "  ──\t───────────\t───────\n")
	for _, c := range created {
		var parts []string
		for _, f := range c.Factors {
			parts = append(parts, fmt.Sprintf("%g·%s", f.Factor, f.LoadCase.Name))
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\n", c.ID, c.Name, strings.Join(parts, " + "))
	}
	w.Flush()
	fmt.Println()

	return saveModel(combosOutput, m)
}
